package budget

import "errors"

// Validate reports every problem in rule: unknown type, missing bundle name,
// malformed baseline or threshold expressions.
func Validate(rule Rule) error {
	var errs []error
	if !rule.Type.Valid() {
		errs = append(errs, newConfigError(rule, "type", string(rule.Type), ErrUnknownType))
	}
	if rule.Type == TypeBundle && rule.Name == "" {
		errs = append(errs, newConfigError(rule, "name", "", ErrMissingName))
	}
	if rule.Baseline != "" {
		if _, unit, err := parseValue(rule.Baseline); err != nil {
			errs = append(errs, newConfigError(rule, "baseline", rule.Baseline, err))
		} else if unit == "%" {
			errs = append(errs, newConfigError(rule, "baseline", rule.Baseline, ErrMalformedSize))
		}
	}
	seen := make(map[string]bool, 6)
	for _, f := range thresholdFields(rule) {
		if f.expr == "" || seen[f.name] {
			continue
		}
		seen[f.name] = true
		if _, err := ParseSize(f.expr, "", f.dir); err != nil {
			errs = append(errs, newConfigError(rule, f.name, f.expr, err))
		}
	}
	return errors.Join(errs...)
}

// ValidateAll validates every rule and tags errors with the rule index.
func ValidateAll(rules []Rule) error {
	var errs []error
	for i, r := range rules {
		if err := Validate(r); err != nil {
			errs = append(errs, tagJoined(err, i))
		}
	}
	return errors.Join(errs...)
}

func tagJoined(err error, idx int) error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			withRuleIndex(e, idx)
		}
		return err
	}
	return withRuleIndex(err, idx)
}
