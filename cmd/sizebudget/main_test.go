package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sizebudget/internal/budget"
	"sizebudget/internal/diag"
	"sizebudget/internal/diagfmt"
	"sizebudget/internal/pipeline"
)

const testBudgets = `
[project]
name = "shop"
stats = ["dist/stats.json"]

[[budget]]
type = "initial"
maximumWarning = "1kb"
maximumError = "4kb"

[[budget]]
type = "anyComponentStyle"
maximumError = "100b"
`

const testStats = `{
  "chunks": [{"id": "main", "names": ["main"], "files": ["main.js"], "initial": true}],
  "assets": [{"name": "main.js", "size": 2048}, {"name": "main.js.map", "size": 99999}]
}`

func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "budgets.toml"), []byte(testBudgets), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dist"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dist", "stats.json"), []byte(testStats), 0o644))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCheckCommand(t *testing.T) {
	dir := setupProject(t)
	cfg := filepath.Join(dir, "budgets.toml")

	out, err := execute(t, "check", "--config", cfg, "--color", "off", "--ui", "off", "--format", "short", "--warnings-as-errors=false", "--no-warnings=false")
	require.NoError(t, err, out)
	assert.Contains(t, out, "WARNING B1001 initial: Exceeded maximum budget for initial. Budget 1 kB was exceeded by 1 kB with a total of 2 kB.")

	out, err = execute(t, "check", "--config", cfg, "--color", "off", "--ui", "off", "--format", "short", "--warnings-as-errors")
	assert.ErrorIs(t, err, errBudgetsFailed)
	assert.Contains(t, out, "ERROR B1001 initial:")
}

func TestCheckCommand_JSONAndMetrics(t *testing.T) {
	dir := setupProject(t)
	prom := filepath.Join(dir, "out.prom")

	out, err := execute(t, "check", "--config", filepath.Join(dir, "budgets.toml"),
		"--format", "json", "--ui", "off", "--warnings-as-errors=false",
		"--metrics-out", prom, filepath.Join(dir, "dist", "stats.json"))
	require.NoError(t, err, out)

	var payload diagfmt.DiagnosticsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Len(t, payload.Manifests, 1)
	assert.Equal(t, 1, payload.Warnings)
	assert.Equal(t, 0, payload.Errors)

	data, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(data), `sizebudget_size_bytes{label="initial"`)
	assert.Contains(t, string(data), `sizebudget_manifests_total{status="ok"} 1`)
}

func TestCheckCommand_MissingStats(t *testing.T) {
	dir := setupProject(t)
	out, err := execute(t, "check", "--config", filepath.Join(dir, "budgets.toml"),
		"--format", "short", "--ui", "off", "--metrics-out", "", filepath.Join(dir, "nope.json"))
	assert.ErrorIs(t, err, errBudgetsFailed)
	assert.Contains(t, out, "FATAL failed to read stats file")
}

func TestCheckCommand_MaxDiagnosticsKeepsErrors(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "budgets.toml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
[[budget]]
type = "any"
maximumWarning = "1kb"

[[budget]]
type = "all"
maximumError = "1kb"
`), 0o644))
	stats := filepath.Join(dir, "stats.json")
	require.NoError(t, os.WriteFile(stats, []byte(`{
  "chunks": [{"id": 0, "names": ["main"], "files": ["a.js", "b.js", "c.js"], "initial": true}],
  "assets": [{"name": "a.js", "size": 2048}, {"name": "b.js", "size": 2048}, {"name": "c.js", "size": 2048}]
}`), 0o644))
	t.Cleanup(func() {
		_ = rootCmd.PersistentFlags().Set("max-diagnostics", "100")
		_ = checkCmd.Flags().Set("no-warnings", "false")
	})

	// вывод обрезан предупреждениями, но ошибка всё равно валит проверку
	out, err := execute(t, "check", "--config", cfg, "--ui", "off", "--format", "short", "--max-diagnostics", "1", stats)
	assert.ErrorIs(t, err, errBudgetsFailed)
	assert.Equal(t, 1, strings.Count(out, "WARNING B1001"), out)
	assert.NotContains(t, out, "ERROR")

	out, err = execute(t, "check", "--config", cfg, "--ui", "off", "--format", "short", "--max-diagnostics", "1", "--no-warnings", stats)
	assert.ErrorIs(t, err, errBudgetsFailed)
	assert.Contains(t, out, "ERROR B1001 total:")
	assert.NotContains(t, out, "WARNING")
}

func TestRunCheckWithUI_QuitCancelsPipeline(t *testing.T) {
	origPipeline, origProgress := runPipeline, runProgress
	t.Cleanup(func() { runPipeline, runProgress = origPipeline, origProgress })

	runPipeline = func(ctx context.Context, req pipeline.Request) (pipeline.Result, error) {
		<-ctx.Done()
		return pipeline.Result{}, ctx.Err()
	}
	// пользователь закрыл вид до окончания проверки
	runProgress = func(ctx context.Context, model tea.Model) (tea.Model, error) {
		return model, nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := runCheckWithUI(context.Background(), "checking budgets", pipeline.Request{Sources: pipeline.FromPaths("a.json")})
		done <- err
	}()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorContains(t, err, "check interrupted")
	case <-time.After(5 * time.Second):
		t.Fatal("pipeline kept running after the progress view closed")
	}
}

func TestAssetCommand(t *testing.T) {
	dir := setupProject(t)
	css := filepath.Join(dir, "app.component.css")
	require.NoError(t, os.WriteFile(css, []byte(strings.Repeat("a", 150)), 0o644))

	out, err := execute(t, "asset", "--config", filepath.Join(dir, "budgets.toml"), "--format", "short", "--warnings-as-errors=false", css)
	assert.ErrorIs(t, err, errBudgetsFailed)
	assert.Contains(t, out, "ERROR B1001 "+filepath.ToSlash(css)+": Exceeded maximum budget for "+filepath.ToSlash(css)+". Budget 100 bytes was exceeded by 50 bytes with a total of 150 bytes.")

	_, err = execute(t, "asset", "--config", filepath.Join(dir, "budgets.toml"), dir)
	assert.ErrorContains(t, err, "is a directory")
}

func TestInitAndSizeCommands(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "web")
	out, err := execute(t, "init", "--quiet=false", "--name", "", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "created "+filepath.Join(dir, "budgets.toml"))

	data, err := os.ReadFile(filepath.Join(dir, "budgets.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `name = "web"`)

	_, err = execute(t, "init", "--force=false", dir)
	assert.ErrorContains(t, err, "already exists")

	out, err = execute(t, "size", "10%", "--baseline", "1mb", "--direction", "down")
	require.NoError(t, err)
	assert.Equal(t, "943718 (921.6 kB)\n", out)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version", "--format", "json", "--full=false", "--hash=false", "--date=false")
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "sizebudget", payload["tool"])
	assert.NotEmpty(t, payload["version"])
	assert.NotContains(t, payload, "git_commit")

	_, err = execute(t, "version", "--format", "xml")
	assert.ErrorContains(t, err, "unsupported format")
	versionFormat = "pretty"
}

func TestFlagParsers(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "ON": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := readUIMode("maybe")
	assert.Error(t, err)
	assert.True(t, shouldUseTUI(uiModeOn, 1))
	assert.False(t, shouldUseTUI(uiModeOff, 10))
	assert.False(t, shouldUseTUI(uiModeAuto, 1))

	for in, want := range map[string]colorMode{"auto": colorAuto, "always": colorOn, "never": colorOff} {
		got, err := readColorMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err = readColorMode("rainbow")
	assert.Error(t, err)

	dir, err := readDirection("down")
	require.NoError(t, err)
	assert.Equal(t, budget.Decrease, dir)
	_, err = readDirection("sideways")
	assert.Error(t, err)

	level, err := logLevel("debug", false)
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, level)
	level, err = logLevel("debug", true)
	require.NoError(t, err)
	assert.Equal(t, zerolog.ErrorLevel, level)
	_, err = logLevel("", false)
	assert.Error(t, err)
}

func TestRunSize(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runSize(&buf, "1.5mb", "", "up"))
	assert.Equal(t, "1572864 (1.5 MB)\n", buf.String())

	assert.ErrorIs(t, runSize(&buf, "1.5 megs", "", "up"), budget.ErrMalformedSize)
}

func TestResolveSources(t *testing.T) {
	sources, err := resolveSources(strings.NewReader(testStats), []string{"a.json", "-"})
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Nil(t, sources[0].Manifest)
	assert.Equal(t, "<stdin>", sources[1].Path)
	require.NotNil(t, sources[1].Manifest)
	assert.Equal(t, int64(2048+99999), sources[1].Manifest.TotalSize())

	_, err = resolveSources(strings.NewReader(testStats), []string{"-", "-"})
	assert.ErrorContains(t, err, "only once")
	_, err = resolveSources(strings.NewReader("{"), []string{"-"})
	assert.Error(t, err)
}

func TestFailed(t *testing.T) {
	warn := diag.NewBag(0)
	warn.Add(diag.New(diag.SevWarning, diag.BudgetMaximumExceeded, "x", "m"))
	assert.False(t, failed([]diagfmt.Report{{Bag: warn}, {Bag: nil}}))

	warn.Filter(diag.FilterOptions{WarningsAsErrors: true})
	assert.True(t, failed([]diagfmt.Report{{Bag: warn}}))
	assert.True(t, failed([]diagfmt.Report{{Err: os.ErrNotExist}}))
}

func TestPrintStageTimings(t *testing.T) {
	var timings pipeline.Timings
	timings.Set(pipeline.StageLoad, 1500*time.Microsecond)

	var buf bytes.Buffer
	printStageTimings(&buf, timings, 2*time.Millisecond)
	assert.Equal(t, "loaded 1.5 ms\ntotal 2.0 ms\n", buf.String())
	printStageTimings(nil, timings, 0)
}
