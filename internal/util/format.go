package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders amounts with a fixed number of decimals using the
// separators of a locale.
type Formatter struct {
	printer   *message.Printer
	precision int
}

// NewFormatter creates a formatter for the given BCP 47 locale.
func NewFormatter(locale string, precision int) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	if precision < 0 {
		precision = 0
	}
	return &Formatter{
		printer:   message.NewPrinter(tag),
		precision: precision,
	}, nil
}

// Number formats v, e.g. "2.25" for English and "2,25" for Russian.
func (f *Formatter) Number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	// Avoid printing "-0.00" for values that round to zero
	if math.Abs(v) < math.Pow(10, -float64(f.precision))/2 {
		v = 0
	}
	return f.printer.Sprint(number.Decimal(v, number.Scale(f.precision)))
}

// ParseNumber parses a user-entered amount. Both "." and "," are accepted
// as the decimal separator; NaN and infinities are rejected.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid number %q: must be finite", s)
	}
	return v, nil
}
