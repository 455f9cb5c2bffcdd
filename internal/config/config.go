// Package config loads the todolor configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// FileName is the configuration file name in the home directory.
	FileName = ".todolor.yaml"

	// StoreDirName is the default store directory name in the home directory.
	StoreDirName = ".todolor"

	// EnvDir overrides the configured store directory.
	EnvDir = "TODOLOR_DIR"
)

var (
	// ErrCorrupted is returned for an empty or unparsable configuration file.
	ErrCorrupted = errors.New("corrupted configuration file")

	// ErrNoPath is returned when the configuration has no store path.
	ErrNoPath = errors.New("configuration has no path entry")
)

// Config is the content of the configuration file.
type Config struct {
	// Path is the store directory.
	Path string `yaml:"path"`

	// Debug enables debug logging.
	Debug bool `yaml:"debug"`
}

// DefaultPath returns ~/.todolor.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, FileName), nil
}

// DefaultStoreDir returns ~/.todolor.
func DefaultStoreDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, StoreDirName), nil
}

// Default returns the configuration written on first run.
func Default() (*Config, error) {
	dir, err := DefaultStoreDir()
	if err != nil {
		return nil, err
	}
	return &Config{Path: dir}, nil
}

// Load reads the configuration at path. A missing file is created with
// Default() content and that content is returned.
//
// Older releases kept a KEY=VALUE file at ~/.todolor.conf. That file is not
// read; copy its PATH value into the path key of the YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err := Default()
		if err != nil {
			return nil, err
		}
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
		slog.Warn("configuration not found, initialized defaults", "path", path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes configuration content. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrCorrupted
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var cfg Config
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}

	cfg.Path = strings.TrimSpace(cfg.Path)
	if cfg.Path == "" {
		return nil, ErrNoPath
	}
	cfg.Path = expandHome(cfg.Path)
	return &cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// ResolveDir picks the store directory: flag, then $TODOLOR_DIR, then cfg.
func ResolveDir(flagDir string, cfg *Config) string {
	if flagDir != "" {
		return expandHome(flagDir)
	}
	if env := strings.TrimSpace(os.Getenv(EnvDir)); env != "" {
		return expandHome(env)
	}
	return cfg.Path
}

// EnsureStoreDir creates dir if it does not exist.
func EnsureStoreDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store directory %s: %w", dir, err)
	}
	return nil
}

// expandHome replaces a leading "~/" with the home directory.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
