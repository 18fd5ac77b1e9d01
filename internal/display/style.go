package display

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// StylePath returns the path to the user's widget stylesheet.
func StylePath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "battray", "style.css"), nil
}

// ApplyUserStyle loads the optional user stylesheet and applies it to the
// default display. The widget exposes battray-* CSS classes for it; a
// missing file just means the platform GTK theme applies unchanged.
func ApplyUserStyle(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	path, err := StylePath()
	if err != nil {
		logger.Warn("failed to get style path", "error", err)
		return
	}

	css, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("failed to read user stylesheet", "path", path, "error", err)
		}
		return
	}

	display := gdk.DisplayGetDefault()
	if display == nil {
		logger.Warn("no display available, cannot apply stylesheet")
		return
	}

	provider := gtk.NewCSSProvider()
	provider.LoadFromString(string(css))
	gtk.StyleContextAddProviderForDisplay(
		display,
		provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
	logger.Debug("applied user stylesheet", "path", path)
}
