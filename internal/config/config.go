package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"sizebudget/internal/budget"
)

// ErrNoBudgets is returned for a configuration without any budget entry.
var ErrNoBudgets = errors.New("no budgets defined")

// File is the on-disk shape shared by every format.
type File struct {
	Project Project  `toml:"project" yaml:"project" json:"project"`
	Budgets []Budget `toml:"budget" yaml:"budgets" json:"budgets"`
}

// Project holds settings that are not budgets.
type Project struct {
	Name string `toml:"name,omitempty" yaml:"name,omitempty" json:"name,omitempty"`
	// Stats lists manifest paths, relative to the configuration file.
	Stats []string `toml:"stats,omitempty" yaml:"stats,omitempty" json:"stats,omitempty"`
}

// Budget is one rule as written by the user. Type is matched case-insensitively.
type Budget struct {
	Type           string `toml:"type" yaml:"type" json:"type" validate:"required,budgettype"`
	Name           string `toml:"name,omitempty" yaml:"name,omitempty" json:"name,omitempty" validate:"required_if=Type bundle"`
	Baseline       string `toml:"baseline,omitempty" yaml:"baseline,omitempty" json:"baseline,omitempty" validate:"omitempty,budgetbaseline"`
	MaximumWarning string `toml:"maximumWarning,omitempty" yaml:"maximumWarning,omitempty" json:"maximumWarning,omitempty" validate:"omitempty,budgetsize"`
	MaximumError   string `toml:"maximumError,omitempty" yaml:"maximumError,omitempty" json:"maximumError,omitempty" validate:"omitempty,budgetsize"`
	MinimumWarning string `toml:"minimumWarning,omitempty" yaml:"minimumWarning,omitempty" json:"minimumWarning,omitempty" validate:"omitempty,budgetsize"`
	MinimumError   string `toml:"minimumError,omitempty" yaml:"minimumError,omitempty" json:"minimumError,omitempty" validate:"omitempty,budgetsize"`
	Warning        string `toml:"warning,omitempty" yaml:"warning,omitempty" json:"warning,omitempty" validate:"omitempty,budgetsize"`
	Error          string `toml:"error,omitempty" yaml:"error,omitempty" json:"error,omitempty" validate:"omitempty,budgetsize"`
}

// Rule converts b into an evaluator rule.
func (b Budget) Rule() budget.Rule {
	return budget.Rule{
		Type:           budget.Type(b.Type),
		Name:           b.Name,
		Baseline:       b.Baseline,
		MaximumWarning: b.MaximumWarning,
		MaximumError:   b.MaximumError,
		MinimumWarning: b.MinimumWarning,
		MinimumError:   b.MinimumError,
		Warning:        b.Warning,
		Error:          b.Error,
	}
}

// Config is a loaded and validated configuration file.
type Config struct {
	Path  string
	Root  string
	File  File
	Rules []budget.Rule
}

// StatsPaths returns Project.Stats resolved against the configuration root.
func (c *Config) StatsPaths() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.File.Project.Stats))
	for _, p := range c.File.Project.Stats {
		p = filepath.FromSlash(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(c.Root, p)
		}
		out = append(out, p)
	}
	return out
}

// Load reads path, picking the decoder by extension (.toml when unknown), and
// validates every budget.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(data, &f)
	case ".json":
		err = decodeJSON(data, &f)
	default:
		err = decodeTOML(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	rules, err := Validate(&f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &Config{Path: abs, Root: filepath.Dir(abs), File: f, Rules: rules}, nil
}

func decodeTOML(data []byte, f *File) error {
	meta, err := toml.Decode(string(data), f)
	if err != nil {
		return fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if !meta.IsDefined("budget") {
		return fmt.Errorf("missing [[budget]]: %w", ErrNoBudgets)
	}
	return nil
}

func decodeYAML(data []byte, f *File) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

func decodeJSON(data []byte, f *File) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(f); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}
