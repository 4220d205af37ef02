// Package diagfmt renders budget diagnostics as pretty text, short lines,
// JSON or SARIF.
package diagfmt
