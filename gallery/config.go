package gallery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config controls how the plugin displays its gallery.
type Config struct {
	ThumbnailSize ThumbnailSize `yaml:"thumbnail_size"`
	// VisibleOnLoad opens the gallery when the first items are set.
	VisibleOnLoad bool `yaml:"visible_on_load"`
	// HideOnClick closes the gallery after an item is picked.
	HideOnClick bool `yaml:"hide_on_click"`
}

// ErrNoConfig is returned by LoadConfig when none of the paths exist.
var ErrNoConfig = errors.New("no gallery config found")

func DefaultConfig() Config {
	return Config{
		ThumbnailSize: ThumbnailSize{Width: 200, Height: 100},
		VisibleOnLoad: false,
		HideOnClick:   true,
	}
}

func DefaultConfigPaths() []string {
	paths := []string{"./xgallery.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".xgallery.yaml"))
	}
	return paths
}

// LoadConfig reads the first existing file of paths. Fields missing from the
// file keep their DefaultConfig values.
func LoadConfig(paths ...string) (Config, error) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return DefaultConfig(), fmt.Errorf("read %s: %w", path, err)
		}

		config := DefaultConfig()
		if err := yaml.Unmarshal(data, &config); err != nil {
			return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
		}
		if config.ThumbnailSize.Width <= 0 || config.ThumbnailSize.Height <= 0 {
			return DefaultConfig(), fmt.Errorf("%s: thumbnail_size must be positive", path)
		}
		return config, nil
	}

	return DefaultConfig(), ErrNoConfig
}
