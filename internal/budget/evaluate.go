package budget

import (
	"errors"
	"iter"

	"sizebudget/internal/diag"
	"sizebudget/internal/manifest"
)

// Evaluate checks every rule against m and lazily yields violations in rule →
// threshold → size order. Equal-to-limit is never a violation.
//
// A rule that cannot be evaluated yields one (zero, *ConfigError) pair and no
// diagnostics; evaluation continues with the next rule. A
// *ManifestIntegrityError is yielded once and ends the sequence. The sequence
// is single-pass; call Evaluate again to restart.
func Evaluate(rules []Rule, m *manifest.Manifest) iter.Seq2[diag.Diagnostic, error] {
	return func(yield func(diag.Diagnostic, error) bool) {
		for i, rule := range rules {
			thresholds, sizes, err := prepare(rule, m)
			if err != nil {
				if !yield(diag.Diagnostic{}, withRuleIndex(err, i)) || IsManifestIntegrity(err) {
					return
				}
				continue
			}
			for _, th := range thresholds {
				for _, size := range sizes {
					d, violated := check(th, size)
					if violated && !yield(d, nil) {
						return
					}
				}
			}
		}
	}
}

// prepare materialises everything a rule needs before any of its diagnostics
// are produced.
func prepare(rule Rule, m *manifest.Manifest) ([]Threshold, []Size, error) {
	if !rule.Type.Valid() {
		return nil, nil, newConfigError(rule, "type", string(rule.Type), ErrUnknownType)
	}
	thresholds, err := ThresholdList(rule)
	if err != nil {
		return nil, nil, err
	}
	sizes, err := Calculate(rule, m)
	if err != nil {
		return nil, nil, err
	}
	return thresholds, sizes, nil
}

// CheckThresholds compares a single size against thresholds, in threshold order.
func CheckThresholds(thresholds []Threshold, size Size) iter.Seq[diag.Diagnostic] {
	return func(yield func(diag.Diagnostic) bool) {
		for _, th := range thresholds {
			d, violated := check(th, size)
			if violated && !yield(d) {
				return
			}
		}
	}
}

func check(th Threshold, size Size) (diag.Diagnostic, bool) {
	switch th.Kind {
	case KindMax:
		if size.Bytes <= th.Limit {
			return diag.Diagnostic{}, false
		}
		return diag.New(th.Severity, diag.BudgetMaximumExceeded, size.Label,
			maximumMessage(size.Label, th.Limit, size.Bytes)), true
	case KindMin:
		if size.Bytes >= th.Limit {
			return diag.Diagnostic{}, false
		}
		return diag.New(th.Severity, diag.BudgetMinimumNotMet, size.Label,
			minimumMessage(size.Label, th.Limit, size.Bytes)), true
	}
	return diag.Diagnostic{}, false
}

// Check drives Evaluate into r. Configuration errors are collected and
// returned together once every rule has run; a manifest integrity error is
// returned immediately.
func Check(rules []Rule, m *manifest.Manifest, r diag.Reporter) error {
	var errs []error
	for d, err := range Evaluate(rules, m) {
		if err != nil {
			if IsManifestIntegrity(err) {
				return err
			}
			errs = append(errs, err)
			continue
		}
		if r != nil {
			r.Report(d)
		}
	}
	return errors.Join(errs...)
}

// CheckAsset evaluates the anyComponentStyle rules against one file in
// isolation. Other rule types are ignored.
func CheckAsset(rules []Rule, name string, size int64, r diag.Reporter) error {
	style, _ := SplitComponentStyle(rules)
	if len(style) == 0 {
		return nil
	}
	return Check(style, manifest.SingleAsset(name, size), r)
}

// SplitComponentStyle separates per-stylesheet rules from the rest, keeping
// relative order in both halves.
func SplitComponentStyle(rules []Rule) (style, other []Rule) {
	for _, r := range rules {
		if r.Type == TypeAnyComponentStyle {
			style = append(style, r)
		} else {
			other = append(other, r)
		}
	}
	return style, other
}
