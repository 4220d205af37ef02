package diagfmt

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"sizebudget/internal/diag"
)

func sampleReports(base string) []Report {
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevWarning, diag.BudgetMaximumExceeded, "initial",
		"Exceeded maximum budget for initial. Budget 500 kB was exceeded by 12 kB with a total of 512 kB."))
	bag.Add(diag.New(diag.SevError, diag.BudgetMinimumNotMet, "total",
		"Failed to meet minimum budget for total. Budget 1 MB was not met by 512 kB with a total of 512 kB."))
	return []Report{
		{Path: filepath.Join(base, "dist", "stats.json"), Bag: bag},
		{Path: filepath.Join(base, "other", "stats.json"), Bag: diag.NewBag(0)},
		{Path: filepath.Join(base, "broken.json"), Bag: diag.NewBag(0), Err: errors.Join(
			errors.New("could not find asset for file: ghost.js"),
		)},
	}
}

// TestPrettyPlain проверяет вывод без цвета
func TestPrettyPlain(t *testing.T) {
	base := t.TempDir()
	var buf bytes.Buffer
	Pretty(&buf, sampleReports(base), PrettyOpts{PathMode: PathModeRelative, BaseDir: base, Summary: true})

	want := strings.Join([]string{
		"dist/stats.json",
		"warning[B1001]: budgets: Exceeded maximum budget for initial. Budget 500 kB was exceeded by 12 kB with a total of 512 kB.",
		"error[B1002]: budgets: Failed to meet minimum budget for total. Budget 1 MB was not met by 512 kB with a total of 512 kB.",
		"",
		"broken.json",
		"error: could not find asset for file: ghost.js",
		"1 error, 1 warning, 1 manifest failed",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyColorAndWidth(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, sampleReports(t.TempDir())[:1], PrettyOpts{Color: true, Width: 40, PathMode: PathModeBasename})
	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("expected ANSI escapes, got %q", out)
	}
	if !strings.Contains(out, "…") {
		t.Errorf("expected truncated message, got %q", out)
	}
	if strings.Contains(out, "with a total of") {
		t.Errorf("message was not truncated: %q", out)
	}
}

func TestPrettyLimitNote(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.New(diag.SevError, diag.BudgetMaximumExceeded, "a.js", "first"))
	bag.Add(diag.New(diag.SevError, diag.BudgetMaximumExceeded, "b.js", "second"))

	var buf bytes.Buffer
	Pretty(&buf, []Report{{Bag: bag}}, PrettyOpts{Max: 1, Summary: true})
	if bag.Len() != 2 {
		t.Fatalf("rendering must not truncate the bag, len=%d", bag.Len())
	}
	if !strings.Contains(buf.String(), "note: output limited to 1 diagnostics, 1 more not shown") {
		t.Errorf("missing limit note:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "second") {
		t.Errorf("capped diagnostic printed:\n%s", buf.String())
	}
	// сводка считается по всему Bag
	if !strings.Contains(buf.String(), "2 errors, 0 warnings") {
		t.Errorf("summary should count hidden diagnostics:\n%s", buf.String())
	}
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	base := t.TempDir()
	inside := filepath.Join(base, "dist", "stats.json")
	outside := filepath.Join(filepath.Dir(base), "elsewhere.json")

	tests := []struct {
		name string
		path string
		mode PathMode
		want string
	}{
		{"absolute", inside, PathModeAbsolute, inside},
		{"relative", inside, PathModeRelative, "dist/stats.json"},
		{"basename", inside, PathModeBasename, "stats.json"},
		{"auto inside", inside, PathModeAuto, "dist/stats.json"},
		{"auto outside", outside, PathModeAuto, outside},
		{"relative outside", outside, PathModeRelative, "../elsewhere.json"},
		{"empty", "", PathModeAuto, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatPath(tt.path, tt.mode, base); got != tt.want {
				t.Errorf("formatPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestShort(t *testing.T) {
	base := t.TempDir()
	var buf bytes.Buffer
	Short(&buf, sampleReports(base), JSONOpts{PathMode: PathModeRelative, BaseDir: base})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "dist/stats.json: WARNING B1001 initial: ") {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if lines[2] != "broken.json: FATAL could not find asset for file: ghost.js" {
		t.Errorf("unexpected fatal line %q", lines[2])
	}
}
