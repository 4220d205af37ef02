package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatShortDiagnostics(t *testing.T) {
	assert.Equal(t, "", FormatShortDiagnostics(nil))

	diags := []Diagnostic{
		New(SevError, BudgetMaximumExceeded, "foo.js", "Exceeded maximum budget for foo.js."),
		New(SevWarning, BudgetMinimumNotMet, "initial", "line one\nline two "),
	}
	want := "ERROR B1001 foo.js: Exceeded maximum budget for foo.js.\n" +
		"WARNING B1002 initial: line one line two"
	assert.Equal(t, want, FormatShortDiagnostics(diags))
}

func TestCodeAndSeverityStrings(t *testing.T) {
	assert.Equal(t, "B1001", BudgetMaximumExceeded.ID())
	assert.Equal(t, "Minimum budget not met", BudgetMinimumNotMet.Title())
	assert.Equal(t, "Unknown error", Code(4242).Title())
	assert.Equal(t, "WARNING", SevWarning.String())
	assert.Equal(t, "error", SevError.Label())
	assert.Equal(t, "UNKNOWN", Severity(0).String())

	sev, err := ParseSeverity("Error")
	assert.NoError(t, err)
	assert.Equal(t, SevError, sev)
	_, err = ParseSeverity("fatal")
	assert.Error(t, err)
}
