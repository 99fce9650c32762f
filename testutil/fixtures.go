package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amterp/calcus/internal/model"
	"github.com/amterp/calcus/internal/service"
)

// SampleSession returns a session with Red=3 and Blue=5 at one default
// step (target 2) followed by a refill of 3.
func SampleSession(t *testing.T) *service.SessionService {
	t.Helper()

	svc := service.NewSessionService(nil)
	red := svc.AddColor("Red")
	blue := svc.AddColor("Blue")
	step, err := svc.AddStep(2, model.StepDefault)
	if err != nil {
		t.Fatalf("AddStep failed: %v", err)
	}
	if err := svc.SetInput(red.ID, step.ID, 3); err != nil {
		t.Fatalf("SetInput failed: %v", err)
	}
	if err := svc.SetInput(blue.ID, step.ID, 5); err != nil {
		t.Fatalf("SetInput failed: %v", err)
	}
	if _, err := svc.AddStep(3, model.StepRefill); err != nil {
		t.Fatalf("AddStep failed: %v", err)
	}
	return svc
}

// TempSettingsFile writes content to config.toml in a fresh temp directory
// and returns its path. Empty content returns the path without creating
// the file.
func TempSettingsFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	if content == "" {
		return path
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}
	return path
}
