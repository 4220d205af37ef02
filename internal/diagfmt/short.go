package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"sizebudget/internal/diag"
)

// Short prints one line per diagnostic, prefixed with the manifest path when
// it is known. Fatal errors are printed as "path: FATAL <error>".
func Short(w io.Writer, reports []Report, opts JSONOpts) {
	for _, r := range reports {
		prefix := ""
		if r.Path != "" {
			prefix = formatPath(r.Path, opts.PathMode, opts.BaseDir) + ": "
		}
		items, _ := r.limited(opts.Max)
		if out := diag.FormatShortDiagnostics(items); out != "" {
			for line := range strings.SplitSeq(out, "\n") {
				fmt.Fprintln(w, prefix+line)
			}
		}
		for _, line := range errorText(r.Err) {
			fmt.Fprintf(w, "%sFATAL %s\n", prefix, line)
		}
	}
}
