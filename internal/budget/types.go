package budget

import (
	"fmt"
	"strings"
)

// Type selects how a budget aggregates the manifest.
type Type string

const (
	// TypeAll sums every non-map asset.
	TypeAll Type = "all"
	// TypeAllScript sums every script asset.
	TypeAllScript Type = "allScript"
	// TypeAny checks every non-map asset individually.
	TypeAny Type = "any"
	// TypeAnyScript checks every script asset individually.
	TypeAnyScript Type = "anyScript"
	// TypeAnyComponentStyle checks every stylesheet individually.
	TypeAnyComponentStyle Type = "anyComponentStyle"
	// TypeBundle sums the files of the chunk(s) carrying Rule.Name.
	TypeBundle Type = "bundle"
	// TypeInitial sums the files of all initial chunks.
	TypeInitial Type = "initial"
)

// Types lists every budget type in documentation order.
var Types = []Type{
	TypeAll,
	TypeAllScript,
	TypeAny,
	TypeAnyScript,
	TypeAnyComponentStyle,
	TypeBundle,
	TypeInitial,
}

// Valid reports whether t is one of the known types.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// ParseType matches s against the known types ignoring case.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	for _, known := range Types {
		if strings.EqualFold(s, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Rule is one configured budget. Empty strings mean "not set".
type Rule struct {
	Type     Type
	Name     string
	Baseline string

	MaximumWarning string
	MaximumError   string
	MinimumWarning string
	MinimumError   string
	// Warning and Error are symmetric: each yields a floor and a ceiling
	// around Baseline.
	Warning string
	Error   string
}

// Kind is the comparison direction of a threshold.
type Kind uint8

const (
	KindMax Kind = iota + 1
	KindMin
)

func (k Kind) String() string {
	switch k {
	case KindMax:
		return "maximum"
	case KindMin:
		return "minimum"
	default:
		return "unknown"
	}
}

// Direction tells ParseSize whether a delta is added to or subtracted from
// the baseline.
type Direction int8

const (
	Increase Direction = 1
	Decrease Direction = -1
)
