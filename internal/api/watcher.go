package api

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/amterp/calcus/internal/model"
	"github.com/amterp/calcus/internal/store"
	"github.com/fsnotify/fsnotify"
)

// SettingsChangeType indicates what happened to the settings file.
type SettingsChangeType string

const (
	SettingsCreated  SettingsChangeType = "created"
	SettingsModified SettingsChangeType = "modified"
	SettingsDeleted  SettingsChangeType = "deleted"
)

// SettingsChange is a settings reload notification. Settings is nil and
// Error set when the file could not be loaded.
type SettingsChange struct {
	Type     SettingsChangeType `json:"type"`
	Path     string             `json:"path"`
	Settings *model.Settings    `json:"settings,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// SettingsSubscriber receives settings reload notifications.
type SettingsSubscriber interface {
	OnSettingsChange(change SettingsChange)
}

// debounceDelay coalesces the bursts of events editors produce on save.
const debounceDelay = 100 * time.Millisecond

// SettingsWatcher watches the settings file and notifies subscribers with
// the reloaded settings. It watches the parent directory, since editors
// often replace the file instead of writing it in place.
type SettingsWatcher struct {
	watcher     *fsnotify.Watcher
	store       store.SettingsStore
	path        string
	logger      *slog.Logger
	mu          sync.RWMutex
	subscribers []SettingsSubscriber
	timer       *time.Timer
	pending     SettingsChangeType
	debounceMu  sync.Mutex
	stopCh      chan struct{}
	stopped     bool // Once stopped, cannot restart
	running     bool
}

// NewSettingsWatcher creates a watcher for the store's settings file.
func NewSettingsWatcher(settingsStore store.SettingsStore, logger *slog.Logger) (*SettingsWatcher, error) {
	if settingsStore.Path() == "" {
		return nil, fmt.Errorf("settings path is unknown")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SettingsWatcher{
		watcher: watcher,
		store:   settingsStore,
		path:    filepath.Clean(settingsStore.Path()),
		logger:  logger,
		stopCh:  make(chan struct{}),
	}, nil
}

// Subscribe adds a subscriber to receive settings notifications.
func (sw *SettingsWatcher) Subscribe(sub SettingsSubscriber) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	sw.subscribers = append(sw.subscribers, sub)
}

// Start begins watching. The settings directory must exist.
func (sw *SettingsWatcher) Start() error {
	sw.mu.Lock()
	if sw.running {
		sw.mu.Unlock()
		return nil
	}
	if sw.stopped {
		sw.mu.Unlock()
		return fmt.Errorf("settings watcher cannot be restarted after stop")
	}
	sw.running = true
	sw.mu.Unlock()

	if err := sw.watcher.Add(filepath.Dir(sw.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(sw.path), err)
	}

	go sw.run()
	return nil
}

// Stop stops watching for changes.
func (sw *SettingsWatcher) Stop() error {
	sw.mu.Lock()
	if !sw.running || sw.stopped {
		sw.mu.Unlock()
		return nil
	}
	sw.running = false
	sw.stopped = true
	sw.mu.Unlock()

	// Cancel the pending debounce timer so it cannot fire after stop
	sw.debounceMu.Lock()
	if sw.timer != nil {
		sw.timer.Stop()
		sw.timer = nil
	}
	sw.debounceMu.Unlock()

	close(sw.stopCh)
	return sw.watcher.Close()
}

func (sw *SettingsWatcher) run() {
	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			sw.handleEvent(event)

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			sw.logger.Warn("settings watcher error", "error", err)

		case <-sw.stopCh:
			return
		}
	}
}

func (sw *SettingsWatcher) handleEvent(event fsnotify.Event) {
	changeType, ok := sw.classify(event)
	if !ok {
		return
	}

	sw.debounceMu.Lock()
	defer sw.debounceMu.Unlock()

	sw.pending = changeType
	if sw.timer != nil {
		sw.timer.Stop()
	}
	sw.timer = time.AfterFunc(debounceDelay, func() {
		sw.debounceMu.Lock()
		pending := sw.pending
		sw.timer = nil
		sw.debounceMu.Unlock()

		sw.emit(pending)
	})
}

// classify maps an event on the settings directory to a change of the
// settings file. Events for other files are ignored.
func (sw *SettingsWatcher) classify(event fsnotify.Event) (SettingsChangeType, bool) {
	if filepath.Clean(event.Name) != sw.path {
		return "", false
	}

	switch {
	case event.Op&fsnotify.Create != 0:
		return SettingsCreated, true
	case event.Op&fsnotify.Write != 0:
		return SettingsModified, true
	case event.Op&fsnotify.Remove != 0:
		return SettingsDeleted, true
	case event.Op&fsnotify.Rename != 0:
		return SettingsDeleted, true // Rename source is effectively deleted
	}
	return "", false
}

func (sw *SettingsWatcher) emit(changeType SettingsChangeType) {
	// Check if watcher was stopped (debounce timer may fire after Stop)
	sw.mu.RLock()
	if sw.stopped {
		sw.mu.RUnlock()
		return
	}
	subs := make([]SettingsSubscriber, len(sw.subscribers))
	copy(subs, sw.subscribers)
	sw.mu.RUnlock()

	change := sw.load(changeType)
	for _, sub := range subs {
		sub.OnSettingsChange(change)
	}
}

// load reads the settings file. A deleted file yields defaults.
func (sw *SettingsWatcher) load(changeType SettingsChangeType) SettingsChange {
	change := SettingsChange{Type: changeType, Path: sw.path}

	settings, err := sw.store.Load()
	if err != nil {
		sw.logger.Warn("failed to reload settings", "path", sw.path, "error", err)
		change.Error = err.Error()
		return change
	}

	sw.logger.Info("settings reloaded", "path", sw.path, "change", changeType)
	change.Settings = settings
	return change
}
