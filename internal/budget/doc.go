// Package budget checks build output against size budgets.
//
// A budget Rule names an aggregation (its Type) and up to six threshold
// expressions. Evaluation is a pure function of (rules, manifest):
//
//   - ParseSize turns expressions like "150kb", "2mb", "5%" into byte counts,
//     optionally relative to the rule's Baseline.
//   - Thresholds expands a rule into (limit, kind, severity) records.
//   - Calculate aggregates the manifest into labelled sizes according to the
//     rule type.
//   - Evaluate cross-compares every size with every threshold and yields
//     diagnostics lazily, in rule → threshold → size order.
//
// Nothing here performs IO or keeps state between calls, so evaluations of
// independent (rules, manifest) pairs may run concurrently.
//
// # Errors
//
// Malformed configuration is reported as *ConfigError and only aborts the
// offending rule; the remaining rules are still evaluated. A chunk that lists a
// file with no asset is reported as *ManifestIntegrityError and ends the
// evaluation. Budget violations are never errors: they are diag.Diagnostic
// values with severity Warning or Error.
package budget
