package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amterp/calcus/internal/grid"
	"github.com/amterp/calcus/internal/service"
)

func TestRenderGrid(t *testing.T) {
	session := service.NewSessionService(nil)
	if err := populate(session, []colorSpec{{Name: "Red", Inputs: []float64{2}}}, []float64{1}, nil); err != nil {
		t.Fatalf("populate failed: %v", err)
	}
	snap := session.Snapshot()

	out := RenderGrid(grid.Build(&snap, grid.Options{}))

	for _, want := range []string{"Pigment", "Step #1", "Result", "Red", "Total:", "2.00", "1.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected rendered grid to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderGrid_EmptySession(t *testing.T) {
	snap := service.NewSessionService(nil).Snapshot()

	out := RenderGrid(grid.Build(&snap, grid.Options{}))

	if !strings.Contains(out, "Total:") {
		t.Errorf("Expected summary row in empty grid, got:\n%s", out)
	}
}

func TestIsTerminal_RegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	defer f.Close()

	if isTerminal(f) {
		t.Error("Expected a regular file not to be a terminal")
	}
}
