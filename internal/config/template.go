package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"sizebudget/internal/budget"
)

// DefaultFile is the starter configuration written by `sizebudget init`.
func DefaultFile(name string) File {
	return File{
		Project: Project{Name: name, Stats: []string{"dist/stats.json"}},
		Budgets: []Budget{
			{Type: string(budget.TypeInitial), MaximumWarning: "500kb", MaximumError: "1mb"},
			{Type: string(budget.TypeAnyComponentStyle), MaximumWarning: "4kb", MaximumError: "8kb"},
		},
	}
}

// Encode writes f as TOML.
func Encode(f File) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDefault creates budgets.toml in dir. An existing file is left alone
// unless force is set.
func WriteDefault(dir, name string, force bool) (string, error) {
	path := filepath.Join(dir, FileNames[0])
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%s already exists", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return path, fmt.Errorf("failed to stat %q: %w", path, err)
		}
	}
	data, err := Encode(DefaultFile(name))
	if err != nil {
		return path, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return path, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
