package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileNames are the configuration file names searched for, in priority order.
var FileNames = []string{"budgets.toml", "budgets.yaml", "budgets.yml", "budgets.json"}

// NotFoundMessage is shown when no configuration file exists up the tree.
const NotFoundMessage = "no budgets.toml found\nrun `sizebudget init` or pass --config path/to/budgets.toml"

// Find walks up from startDir looking for a configuration file. The boolean is
// false when the filesystem root is reached without a match.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the nearest configuration file.
func Discover(startDir string) (*Config, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}
