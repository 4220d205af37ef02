package diag

import (
	"fmt"
	"strings"
)

// FormatShortDiagnostics renders diagnostics into a stable, single-line-per-entry
// representation intended for CLI short output and golden files:
//
//	ERROR B1001 foo.js: Exceeded maximum budget for foo.js. ...
//
// Evaluation order is kept; the result has no trailing newline and is empty
// when diags is empty.
func FormatShortDiagnostics(diags []Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	var b strings.Builder
	for i, d := range diags {
		fmt.Fprintf(&b, "%s %s %s: %s", d.Severity, d.Code.ID(), d.Label, sanitizeMessage(d.Message))
		if i < len(diags)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", " ")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
