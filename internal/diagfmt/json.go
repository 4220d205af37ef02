package diagfmt

import (
	"encoding/json"
	"io"
)

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Label    string `json:"label"`
	Message  string `json:"message"`
}

// ManifestJSON группирует диагностики одного манифеста
type ManifestJSON struct {
	Path        string           `json:"path"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Omitted     int              `json:"omitted,omitempty"`
	Errors      []string         `json:"errors,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Manifests []ManifestJSON `json:"manifests"`
	Errors    int            `json:"errors"`
	Warnings  int            `json:"warnings"`
	Failed    int            `json:"failed"`
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(reports []Report, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Manifests: make([]ManifestJSON, 0, len(reports))}
	for _, r := range reports {
		items, omitted := r.limited(opts.Max)
		m := ManifestJSON{
			Path:        formatPath(r.Path, opts.PathMode, opts.BaseDir),
			Diagnostics: make([]DiagnosticJSON, 0, len(items)),
			Omitted:     omitted,
			Errors:      errorText(r.Err),
		}
		for _, d := range items {
			m.Diagnostics = append(m.Diagnostics, DiagnosticJSON{
				Severity: d.Severity.String(),
				Code:     d.Code.ID(),
				Label:    d.Label,
				Message:  d.Message,
			})
		}
		m.Count = len(m.Diagnostics)
		out.Manifests = append(out.Manifests, m)
	}
	out.Errors, out.Warnings, out.Failed = Totals(reports)
	return out
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, reports []Report, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(reports, opts))
}
