// Package diag defines the diagnostic model produced by budget evaluation.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for budget violations.
//   - Offer light-weight utilities (Reporter, Bag) that let the evaluator emit
//     diagnostics without coupling to storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting beyond the single-line short
// form, and no IO. Rendering lives in internal/diagfmt, orchestration over
// several manifests lives in internal/pipeline.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Warning or Error, see severity.go.
//   - Code – compact numeric identifier (codes.go) with a stable string form.
//   - Label – the sized entity the diagnostic is about (chunk name, "initial",
//     "total", or an asset file name).
//   - Message – the full human readable sentence.
//
// Diagnostics are emitted in evaluation order (rule, threshold, size). Bag keeps
// that order; nothing in this package reorders items.
//
// A budget violation is data, never an error. Malformed configuration and
// inconsistent manifests are reported through ordinary Go errors by the
// producers and never end up in a Bag.
package diag
