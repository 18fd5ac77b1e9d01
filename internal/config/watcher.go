package config

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the config file for changes and validates new configs
// before handing them to the daemon. Invalid files are reported and the
// previous config stays in effect.
type Watcher struct {
	watcher    *fsnotify.Watcher
	configPath string
	logger     *slog.Logger

	mu       sync.Mutex
	current  *Config
	onReload func(newConfig *Config)
	onError  func(err error)

	done    chan struct{}
	running bool
}

// NewWatcher creates a watcher for the config file at the default path.
func NewWatcher(initial *Config, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:    fw,
		configPath: configPath,
		logger:     logger,
		current:    initial,
		done:       make(chan struct{}),
	}, nil
}

// SetReloadCallback sets the callback invoked with each successfully
// validated new config.
func (w *Watcher) SetReloadCallback(cb func(newConfig *Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = cb
}

// SetErrorCallback sets the callback invoked when a changed file fails to
// load or validate.
func (w *Watcher) SetErrorCallback(cb func(err error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = cb
}

// Current returns the last valid configuration.
func (w *Watcher) Current() *Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Start begins watching. The directory is watched rather than the file
// itself, which survives editors that replace the file on save.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.configPath)); err != nil {
		return err
	}

	go w.watch()

	w.logger.Debug("config watcher started", "path", w.configPath)
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.done)
	_ = w.watcher.Close()
	w.logger.Debug("config watcher stopped")
}

// watch is the main watch loop.
func (w *Watcher) watch() {
	filename := filepath.Base(w.configPath)

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)
		}
	}
}

// reload loads and validates the changed file, then notifies.
func (w *Watcher) reload() {
	newConfig, err := LoadFile(w.configPath)
	if err != nil {
		w.logger.Warn("config file changed but validation failed", "error", err)
		w.mu.Lock()
		onError := w.onError
		w.mu.Unlock()
		if onError != nil {
			onError(err)
		}
		return
	}

	w.mu.Lock()
	w.current = newConfig
	onReload := w.onReload
	w.mu.Unlock()

	w.logger.Info("config reloaded", "path", w.configPath)
	if onReload != nil {
		onReload(newConfig)
	}
}
