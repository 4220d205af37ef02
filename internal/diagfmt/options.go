package diagfmt

import (
	"os"
	"path/filepath"

	"sizebudget/internal/diag"
)

// MessagePrefix is prepended to budget messages in human-readable output.
const MessagePrefix = "budgets: "

// Report is the outcome for one manifest: its diagnostics and, when the
// manifest could not be evaluated, the fatal error.
type Report struct {
	Path string
	Bag  *diag.Bag
	Err  error
}

func (r Report) items() []diag.Diagnostic {
	if r.Bag == nil {
		return nil
	}
	return r.Bag.Items()
}

// limited returns at most max diagnostics and how many were left out.
// max <= 0 means no limit. The Bag itself is never truncated.
func (r Report) limited(max int) ([]diag.Diagnostic, int) {
	items := r.items()
	if max <= 0 || len(items) <= max {
		return items, 0
	}
	return items[:max], len(items) - max
}

// PathMode specifies how manifest paths are displayed.
type PathMode uint8

const (
	// PathModeAuto shows paths relative to the base directory when they are inside it.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	BaseDir  string // для relative/auto, пусто - текущий каталог
	Width    int    // максимальная ширина сообщения, 0 - не ограничено
	Max      int    // диагностик на манифест, 0 - все
	Summary  bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode PathMode
	BaseDir  string
	Max      int // обрезка вывода на манифест, не Bag
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InformationURI string
	InvocationArgs []string
	PathMode       PathMode
	BaseDir        string
	Max            int
}

func formatPath(path string, mode PathMode, base string) string {
	if path == "" {
		return ""
	}
	if mode == PathModeBasename {
		return filepath.Base(path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if mode == PathModeAbsolute {
		return abs
	}
	if base == "" {
		if base, err = os.Getwd(); err != nil {
			return path
		}
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return abs
	}
	if mode == PathModeAuto && !filepath.IsLocal(rel) {
		return abs
	}
	return filepath.ToSlash(rel)
}

// Totals counts diagnostics and fatal errors across reports.
func Totals(reports []Report) (errs, warnings, failed int) {
	for _, r := range reports {
		if r.Bag != nil {
			errs += r.Bag.Count(diag.SevError)
			warnings += r.Bag.Count(diag.SevWarning)
		}
		if r.Err != nil {
			failed++
		}
	}
	return errs, warnings, failed
}

// errorText flattens joined errors into separate lines.
func errorText(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, errorText(e)...)
		}
		return out
	}
	if err == nil {
		return nil
	}
	return []string{err.Error()}
}

