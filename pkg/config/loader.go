package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound     = errors.New("configuration file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrEmptyFile        = errors.New("configuration file is empty")
	ErrInvalidJSON      = errors.New("invalid JSON syntax")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
)

// Load reads a Config from a YAML or JSON file. The format is detected
// from the file extension (.yaml/.yml for YAML, otherwise JSON).
func Load(path string) (*Config, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		return parseYAML(data, path)
	}
	return parseJSON(data, path)
}

// LoadDir loads every route file matching **/*.yaml or **/*.yml under
// dir and merges their route lists in lexical file order, so the
// tie-break order between equally specific routes is deterministic.
// Server and logging settings come from the first file that sets them.
func LoadDir(dir string) (*Config, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, dir)
		}
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	var files []string
	for _, pattern := range []string{"**/*.yaml", "**/*.yml"} {
		matches, err := doublestar.Glob(os.DirFS(dir), pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory %q: %w", dir, err)
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no route files found in %s", dir)
	}
	sort.Strings(files)

	merged := &Config{}
	for _, name := range files {
		cfg, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if merged.Server == (ServerConfig{}) {
			merged.Server = cfg.Server
		}
		if merged.Logging == (LoggingConfig{}) {
			merged.Logging = cfg.Logging
		}
		merged.Routes = append(merged.Routes, cfg.Routes...)
	}
	return merged, nil
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}
	return data, nil
}

func parseYAML(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w in %s: %v", ErrInvalidYAML, path, err)
	}
	return &cfg, nil
}

func parseJSON(data []byte, path string) (*Config, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w in %s", ErrInvalidJSON, path)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w in %s: %v", ErrInvalidJSON, path, err)
	}
	return &cfg, nil
}
