package budget

import (
	"iter"

	"sizebudget/internal/diag"
)

// Threshold is a concrete byte limit derived from a rule.
type Threshold struct {
	Limit    int64
	Kind     Kind
	Severity diag.Severity
}

type thresholdField struct {
	name string
	expr string
	dir  Direction
	kind Kind
	sev  diag.Severity
}

// thresholdFields lists the rule fields in derivation order. The symmetric
// fields appear twice: floor first, then ceiling.
func thresholdFields(r Rule) []thresholdField {
	return []thresholdField{
		{"maximumWarning", r.MaximumWarning, Increase, KindMax, diag.SevWarning},
		{"maximumError", r.MaximumError, Increase, KindMax, diag.SevError},
		{"minimumWarning", r.MinimumWarning, Decrease, KindMin, diag.SevWarning},
		{"minimumError", r.MinimumError, Decrease, KindMin, diag.SevError},
		{"warning", r.Warning, Decrease, KindMin, diag.SevWarning},
		{"warning", r.Warning, Increase, KindMax, diag.SevWarning},
		{"error", r.Error, Decrease, KindMin, diag.SevError},
		{"error", r.Error, Increase, KindMax, diag.SevError},
	}
}

// Thresholds lazily derives the thresholds implied by rule. Unset fields
// contribute nothing. A malformed expression yields a single *ConfigError and
// ends the sequence.
func Thresholds(rule Rule) iter.Seq2[Threshold, error] {
	return func(yield func(Threshold, error) bool) {
		for _, f := range thresholdFields(rule) {
			if f.expr == "" {
				continue
			}
			limit, err := ParseSize(f.expr, rule.Baseline, f.dir)
			if err != nil {
				yield(Threshold{}, newConfigError(rule, f.name, f.expr, err))
				return
			}
			if !yield(Threshold{Limit: limit, Kind: f.kind, Severity: f.sev}, nil) {
				return
			}
		}
	}
}

// ThresholdList collects Thresholds(rule) into a slice.
func ThresholdList(rule Rule) ([]Threshold, error) {
	var out []Threshold
	for th, err := range Thresholds(rule) {
		if err != nil {
			return nil, err
		}
		out = append(out, th)
	}
	return out, nil
}
