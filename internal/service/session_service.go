package service

import (
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/amterp/calcus/internal/calc"
	calcerr "github.com/amterp/calcus/internal/errors"
	"github.com/amterp/calcus/internal/id"
	"github.com/amterp/calcus/internal/model"
	"github.com/amterp/calcus/internal/table"
)

// ChangeType names what a session mutation did.
type ChangeType string

const (
	ChangeStepAdded    ChangeType = "step_added"
	ChangeStepRemoved  ChangeType = "step_removed"
	ChangeStepUpdated  ChangeType = "step_updated"
	ChangeColorAdded   ChangeType = "color_added"
	ChangeColorRemoved ChangeType = "color_removed"
	ChangeColorRenamed ChangeType = "color_renamed"
	ChangeInput        ChangeType = "input_changed"
	ChangeRecalculated ChangeType = "recalculated"
	ChangeSettings     ChangeType = "settings_applied"
	ChangeReset        ChangeType = "reset"
)

// Change describes one committed mutation.
type Change struct {
	Type         ChangeType    `json:"type"`
	StepID       string        `json:"step_id,omitempty"`
	ColorID      string        `json:"color_id,omitempty"`
	Revision     uint64        `json:"revision"`
	Recalculated bool          `json:"recalculated"`
	Duration     time.Duration `json:"-"` // Time spent recalculating, 0 if not recalculated
}

// Subscriber receives change notifications.
// Calls happen after the session lock is released, so a subscriber may
// read the session (e.g. take a Snapshot) but must not block for long.
type Subscriber interface {
	OnSessionChange(change Change)
}

// SessionService is the entry point for every read and edit of one
// in-memory calculation session. All methods are safe for concurrent use.
type SessionService struct {
	mu       sync.Mutex
	table    *table.Table
	engine   *calc.Engine
	settings model.Settings
	revision uint64
	newID    func(kind id.Kind) string
	logger   *slog.Logger

	subMu       sync.RWMutex
	subscribers []Subscriber
}

// Option configures a SessionService.
type Option func(*SessionService)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *SessionService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator overrides ID generation for the tables the service creates.
func WithIDGenerator(fn func(kind id.Kind) string) Option {
	return func(s *SessionService) {
		s.newID = fn
	}
}

// NewSessionService creates a session holding only the summary row.
// A nil settings value means defaults.
func NewSessionService(settings *model.Settings, opts ...Option) *SessionService {
	if settings == nil {
		settings = model.DefaultSettings()
	}
	s := &SessionService{
		engine:   calc.NewEngine(),
		settings: *settings,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.settings.FillDefaults()
	s.table = s.newTable()
	return s
}

func (s *SessionService) newTable() *table.Table {
	settings := s.settings
	return table.New(
		table.WithSummaryName(settings.SummaryName),
		table.WithColorLabel(settings.ColorLabel),
		table.WithIDGenerator(s.newID),
	)
}

// Subscribe registers a subscriber for change notifications.
func (s *SessionService) Subscribe(sub Subscriber) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, sub)
}

func (s *SessionService) notify(change Change) {
	s.subMu.RLock()
	subs := make([]Subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.subMu.RUnlock()

	for _, sub := range subs {
		sub.OnSessionChange(change)
	}
}

// commit stamps a change with the next revision. Caller holds s.mu.
func (s *SessionService) commit(change Change) Change {
	s.revision++
	change.Revision = s.revision
	return change
}

// recalculate runs the engine. Caller holds s.mu.
func (s *SessionService) recalculate() (time.Duration, error) {
	start := time.Now()
	err := s.engine.Recalculate(s.table)
	elapsed := time.Since(start)
	if err != nil {
		s.logger.Error("recalculation failed", "error", err)
		return elapsed, err
	}
	s.logger.Debug("recalculated",
		"steps", s.table.StepCount(),
		"colors", s.table.ColorCount(),
		"duration", elapsed)
	return elapsed, nil
}

// ============================================================================
// Steps
// ============================================================================

// AddStep appends a step. Returns nil without error when kind is refill
// and a refill step already exists. Only adding the refill step triggers
// recalculation.
func (s *SessionService) AddStep(target float64, kind model.StepKind) (*model.StepView, error) {
	if err := checkFinite("target", target); err != nil {
		return nil, err
	}

	view, change, err := s.addStep(target, kind)
	if view != nil {
		s.notify(change)
	}
	return view, err
}

func (s *SessionService) addStep(target float64, kind model.StepKind) (*model.StepView, Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	step := s.table.AddStep(target, kind)
	if step == nil {
		return nil, Change{}, nil
	}

	change := Change{Type: ChangeStepAdded, StepID: step.ID}
	var err error
	if step.IsRefill() {
		change.Duration, err = s.recalculate()
		change.Recalculated = err == nil
	}

	view := model.NewStepView(step)
	return &view, s.commit(change), err
}

// RemoveStep removes a step by ID. Returns false if no such step exists.
func (s *SessionService) RemoveStep(stepID string) bool {
	change, ok := s.removeStep(func() *model.Step {
		step := s.table.Step(stepID)
		s.table.RemoveStep(step)
		return step
	})
	if ok {
		s.notify(change)
	}
	return ok
}

// RemoveLastStep removes the highest-order step. Returns false if there
// are no steps.
func (s *SessionService) RemoveLastStep() bool {
	change, ok := s.removeStep(func() *model.Step {
		return s.table.RemoveLastStep()
	})
	if ok {
		s.notify(change)
	}
	return ok
}

func (s *SessionService) removeStep(remove func() *model.Step) (Change, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := remove()
	if removed == nil {
		return Change{}, false
	}
	return s.commit(Change{Type: ChangeStepRemoved, StepID: removed.ID}), true
}

// SetStepTarget changes a step's decrease amount or refill volume and
// recalculates.
func (s *SessionService) SetStepTarget(stepID string, target float64) error {
	if err := checkFinite("target", target); err != nil {
		return err
	}

	change, err := s.setStepTarget(stepID, target)
	if err != nil {
		return err
	}
	s.notify(change)
	return nil
}

func (s *SessionService) setStepTarget(stepID string, target float64) (Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	step := s.table.Step(stepID)
	if step == nil {
		return Change{}, calcerr.StepNotFound(stepID)
	}
	step.Target = target

	duration, err := s.recalculate()
	if err != nil {
		return Change{}, err
	}
	return s.commit(Change{
		Type:         ChangeStepUpdated,
		StepID:       stepID,
		Recalculated: true,
		Duration:     duration,
	}), nil
}

// ============================================================================
// Colors
// ============================================================================

// AddColor appends a pigment row. An empty name gets a generated label.
func (s *SessionService) AddColor(name string) model.ColorView {
	view, change := s.addColor(strings.TrimSpace(name))
	s.notify(change)
	return view
}

func (s *SessionService) addColor(name string) (model.ColorView, Change) {
	s.mu.Lock()
	defer s.mu.Unlock()

	color := s.table.AddColor(name)
	view := model.NewColorView(color, s.table.Steps())
	return view, s.commit(Change{Type: ChangeColorAdded, ColorID: color.ID})
}

// RemoveColor removes a pigment row. Returns false for unknown IDs and
// for the summary row.
func (s *SessionService) RemoveColor(colorID string) bool {
	change, ok := s.removeColor(colorID)
	if ok {
		s.notify(change)
	}
	return ok
}

func (s *SessionService) removeColor(colorID string) (Change, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	color := s.table.Color(colorID)
	if color == nil || color.IsSummary {
		return Change{}, false
	}
	s.table.RemoveColor(color)
	return s.commit(Change{Type: ChangeColorRemoved, ColorID: colorID}), true
}

// RenameColor renames a pigment row.
func (s *SessionService) RenameColor(colorID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return calcerr.InvalidField("name", "must not be blank")
	}

	change, err := s.renameColor(colorID, name)
	if err != nil {
		return err
	}
	s.notify(change)
	return nil
}

func (s *SessionService) renameColor(colorID, name string) (Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	color := s.table.Color(colorID)
	if color == nil {
		return Change{}, calcerr.ColorNotFound(colorID)
	}
	if color.IsSummary {
		return Change{}, calcerr.InvalidField("color", "the summary row cannot be renamed")
	}
	color.Name = name
	return s.commit(Change{Type: ChangeColorRenamed, ColorID: colorID}), nil
}

// ============================================================================
// Inputs and recalculation
// ============================================================================

// SetInput sets the user-entered amount of a pigment at a default step
// and recalculates. Summary cells and refill cells are computed and
// cannot be edited.
func (s *SessionService) SetInput(colorID, stepID string, value float64) error {
	if err := checkFinite("input", value); err != nil {
		return err
	}

	change, err := s.setInput(colorID, stepID, value)
	if err != nil {
		return err
	}
	s.notify(change)
	return nil
}

func (s *SessionService) setInput(colorID, stepID string, value float64) (Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	color := s.table.Color(colorID)
	if color == nil {
		return Change{}, calcerr.ColorNotFound(colorID)
	}
	step := s.table.Step(stepID)
	if step == nil {
		return Change{}, calcerr.StepNotFound(stepID)
	}
	if color.IsSummary {
		return Change{}, calcerr.ReadOnlyCell("summary row values are computed")
	}
	if step.IsRefill() {
		return Change{}, calcerr.ReadOnlyCell("refill step values are computed")
	}
	cell := color.Cell(stepID)
	if cell == nil {
		return Change{}, calcerr.CellNotFound(colorID, stepID)
	}

	cell.Input = value
	duration, err := s.recalculate()
	if err != nil {
		return Change{}, err
	}
	return s.commit(Change{
		Type:         ChangeInput,
		StepID:       stepID,
		ColorID:      colorID,
		Recalculated: true,
		Duration:     duration,
	}), nil
}

// Recalculate recomputes every derived value.
func (s *SessionService) Recalculate() error {
	change, err := s.recalculateAll()
	if err != nil {
		return err
	}
	s.notify(change)
	return nil
}

func (s *SessionService) recalculateAll() (Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	duration, err := s.recalculate()
	if err != nil {
		return Change{}, err
	}
	return s.commit(Change{Type: ChangeRecalculated, Recalculated: true, Duration: duration}), nil
}

// Reset discards all steps and colors, leaving only the summary row.
// The revision counter keeps increasing.
func (s *SessionService) Reset() {
	s.mu.Lock()
	s.table = s.newTable()
	change := s.commit(Change{Type: ChangeReset})
	s.mu.Unlock()

	s.logger.Info("session reset", "revision", change.Revision)
	s.notify(change)
}

// ============================================================================
// Settings
// ============================================================================

// Settings returns a copy of the settings in effect.
func (s *SessionService) Settings() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// DefaultTarget returns the target used for steps added without one.
func (s *SessionService) DefaultTarget() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.DefaultDecrease
}

// ApplySettings replaces the settings. The summary row takes the new
// summary name; existing pigment names are kept and only later generated
// labels use the new format.
func (s *SessionService) ApplySettings(settings *model.Settings) error {
	next := *settings
	next.FillDefaults()
	if err := next.Validate(); err != nil {
		return calcerr.InvalidField("settings", err.Error())
	}

	s.mu.Lock()
	s.settings = next
	s.table.SetColorLabel(s.settings.ColorLabel)
	s.table.SetSummaryName(s.settings.SummaryName)
	change := s.commit(Change{Type: ChangeSettings})
	s.mu.Unlock()

	s.notify(change)
	return nil
}

// ============================================================================
// Reads
// ============================================================================

// Snapshot returns a deep copy of the session.
func (s *SessionService) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	steps := s.table.Steps()
	snap := model.Snapshot{
		Revision: s.revision,
		Steps:    make([]model.StepView, 0, len(steps)),
	}
	for _, step := range steps {
		snap.Steps = append(snap.Steps, model.NewStepView(step))
	}

	colors := s.table.Colors()
	snap.Colors = make([]model.ColorView, 0, len(colors))
	for _, color := range colors {
		snap.Colors = append(snap.Colors, model.NewColorView(color, steps))
	}
	return snap
}

// Revision returns the number of committed changes.
func (s *SessionService) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

func checkFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return calcerr.InvalidField(field, "must be a finite number")
	}
	return nil
}
