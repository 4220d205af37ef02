package diag

// Diagnostic is a single budget violation.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Label    string
	Message  string
}

func New(sev Severity, code Code, label, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Label:    label,
		Message:  msg,
	}
}

// IsError reports whether d fails the build.
func (d Diagnostic) IsError() bool {
	return d.Severity >= SevError
}
