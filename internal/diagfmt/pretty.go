package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sizebudget/internal/diag"
)

type palette struct {
	err, warn, code, path, dim *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow, color.Bold),
		code: color.New(color.Bold),
		path: color.New(color.FgCyan),
		dim:  color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.code, p.path, p.dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	if sev == diag.SevError {
		return p.err
	}
	return p.warn
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждого манифеста печатает заголовок с путём, затем
//
//	<sev>[<CODE>]: budgets: <Message>
//
// и фатальную ошибку манифеста, если она есть. Порядок диагностик сохраняется.
func Pretty(w io.Writer, reports []Report, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, r := range reports {
		items, omitted := r.limited(opts.Max)
		if len(items) == 0 && r.Err == nil {
			continue
		}
		if r.Path != "" {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, p.path.Sprint(formatPath(r.Path, opts.PathMode, opts.BaseDir)))
		}
		for _, d := range items {
			msg := MessagePrefix + d.Message
			if opts.Width > 0 {
				msg = runewidth.Truncate(msg, opts.Width, "…")
			}
			fmt.Fprintf(w, "%s%s: %s\n",
				p.severity(d.Severity).Sprint(d.Severity.Label()),
				p.code.Sprintf("[%s]", d.Code.ID()),
				msg)
		}
		if omitted > 0 {
			fmt.Fprintln(w, p.dim.Sprintf("note: output limited to %d diagnostics, %d more not shown", len(items), omitted))
		}
		for _, line := range errorText(r.Err) {
			fmt.Fprintf(w, "%s: %s\n", p.err.Sprint("error"), line)
		}
	}
	if opts.Summary {
		errs, warnings, failed := Totals(reports)
		fmt.Fprintln(w, p.dim.Sprint(summary(errs, warnings, failed)))
	}
}

func summary(errs, warnings, failed int) string {
	s := fmt.Sprintf("%d %s, %d %s", errs, plural(errs, "error"), warnings, plural(warnings, "warning"))
	if failed > 0 {
		s += fmt.Sprintf(", %d %s failed", failed, plural(failed, "manifest"))
	}
	return s
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
