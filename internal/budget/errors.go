package budget

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedSize is returned for expressions outside the size grammar.
	ErrMalformedSize = errors.New("malformed size expression")
	// ErrSizeOverflow is returned when an expression does not fit in int64 bytes.
	ErrSizeOverflow = errors.New("size out of range")
	// ErrMissingName is returned for bundle budgets without a name.
	ErrMissingName = errors.New("bundle budget requires a name")
	// ErrUnknownType is returned for budget types outside the closed set.
	ErrUnknownType = errors.New("unknown budget type")
)

// ConfigError reports a budget rule that cannot be evaluated.
type ConfigError struct {
	// Rule is the index of the rule in the evaluated list, -1 when unknown.
	Rule  int
	Type  Type
	Field string
	Expr  string
	Err   error
}

func newConfigError(rule Rule, field, expr string, err error) *ConfigError {
	return &ConfigError{Rule: -1, Type: rule.Type, Field: field, Expr: expr, Err: err}
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("budget")
	if e.Rule >= 0 {
		fmt.Fprintf(&b, "[%d]", e.Rule)
	}
	if e.Type != "" {
		fmt.Fprintf(&b, " (%s)", e.Type)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " %s", e.Field)
	}
	if e.Expr != "" {
		fmt.Fprintf(&b, " %q", e.Expr)
	}
	b.WriteString(": ")
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString("invalid configuration")
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ManifestIntegrityError reports a chunk file with no matching asset. It means
// the build manifest is inconsistent, not that a budget was exceeded.
type ManifestIntegrityError struct {
	Chunk string
	File  string
}

func (e *ManifestIntegrityError) Error() string {
	if e.Chunk == "" {
		return fmt.Sprintf("could not find asset for file: %s", e.File)
	}
	return fmt.Sprintf("could not find asset for file: %s (chunk %s)", e.File, e.Chunk)
}

// IsManifestIntegrity reports whether err (or anything it wraps) is a
// *ManifestIntegrityError.
func IsManifestIntegrity(err error) bool {
	var mi *ManifestIntegrityError
	return errors.As(err, &mi)
}

func withRuleIndex(err error, idx int) error {
	var ce *ConfigError
	if errors.As(err, &ce) && ce.Rule < 0 {
		ce.Rule = idx
	}
	return err
}
