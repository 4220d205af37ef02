package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"sizebudget/internal/config"
	"sizebudget/internal/diag"
	"sizebudget/internal/diagfmt"
	"sizebudget/internal/manifest"
	"sizebudget/internal/metrics"
	"sizebudget/internal/pipeline"
	"sizebudget/internal/ui"
)

const stdinName = "-"

var checkCmd = &cobra.Command{
	Use:   "check [flags] [stats.json|stats.msgpack|-]...",
	Short: "Check build manifests against the configured budgets",
	Long: `Evaluate one or more build stats files against budgets.toml. Without
arguments the [project].stats paths from the configuration are used; "-" reads
JSON stats from standard input.`,
	RunE: runCheck,
}

func init() {
	addReportFlags(checkCmd)
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().String("ui", "auto", "progress UI mode (auto|on|off)")
	checkCmd.Flags().String("metrics-out", "", "write Prometheus textfile metrics to this path")
}

// addReportFlags registers the flags shared by commands that print diagnostics.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	cmd.Flags().Bool("no-warnings", false, "ignore warnings")
	cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	cmd.Flags().Bool("fullpath", false, "emit absolute paths in output")
	cmd.Flags().Int("width", 0, "truncate pretty messages to this many columns (0=no limit)")
}

type reportOptions struct {
	format   string
	filter   diag.FilterOptions
	useColor bool
	fullPath bool
	width    int
	quiet    bool
	maxDiag  int
}

func readReportOptions(cmd *cobra.Command) (reportOptions, error) {
	var opts reportOptions
	var err error
	if opts.format, err = cmd.Flags().GetString("format"); err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	opts.format = strings.ToLower(strings.TrimSpace(opts.format))
	switch opts.format {
	case "pretty", "json", "sarif", "short":
	default:
		return opts, fmt.Errorf("unknown format: %s", opts.format)
	}
	if opts.filter.IgnoreWarnings, err = cmd.Flags().GetBool("no-warnings"); err != nil {
		return opts, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if opts.filter.WarningsAsErrors, err = cmd.Flags().GetBool("warnings-as-errors"); err != nil {
		return opts, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if opts.filter.IgnoreWarnings && opts.filter.WarningsAsErrors {
		return opts, fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	if opts.fullPath, err = cmd.Flags().GetBool("fullpath"); err != nil {
		return opts, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if opts.width, err = cmd.Flags().GetInt("width"); err != nil {
		return opts, fmt.Errorf("failed to get width flag: %w", err)
	}
	if opts.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if opts.maxDiag, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if opts.useColor, err = colorEnabled(cmd, os.Stdout); err != nil {
		return opts, err
	}
	return opts, nil
}

// loadConfig reads --config or searches upwards from the working directory.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	cfg, ok, err := config.Discover(".")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s", config.NotFoundMessage)
	}
	log.Debug().Str("config", cfg.Path).Int("budgets", len(cfg.Rules)).Msg("loaded configuration")
	return cfg, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	start := time.Now()
	opts, err := readReportOptions(cmd)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	metricsOut, err := cmd.Flags().GetString("metrics-out")
	if err != nil {
		return fmt.Errorf("failed to get metrics-out flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	paths := args
	if len(paths) == 0 {
		paths = cfg.StatsPaths()
	}
	if len(paths) == 0 {
		return fmt.Errorf("no stats files given and [project].stats is empty in %s", cfg.Path)
	}
	sources, err := resolveSources(cmd.InOrStdin(), paths)
	if err != nil {
		return err
	}

	var mx *metrics.Metrics
	if metricsOut != "" {
		mx = metrics.New()
	}
	req := pipeline.Request{
		Sources: sources,
		Rules:   cfg.Rules,
		Jobs:    jobs,
		Metrics: mx,
		Logger:  log.Logger,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var res pipeline.Result
	if opts.format == "pretty" && !opts.quiet && shouldUseTUI(mode, len(sources)) {
		res, err = runCheckWithUI(ctx, "checking budgets", req)
	} else {
		res, err = runPipeline(ctx, req)
	}
	if err != nil {
		return err
	}

	// полный Bag: фильтр до обрезки вывода, код выхода по всем диагностикам
	reports := make([]diagfmt.Report, len(res.Manifests))
	for i, m := range res.Manifests {
		m.Bag.Filter(opts.filter)
		reports[i] = diagfmt.Report{Path: m.Path, Bag: m.Bag, Err: m.Err}
	}
	if err := renderReports(cmd.OutOrStdout(), reports, opts, cmd.CommandPath(), args); err != nil {
		return err
	}

	if mx != nil {
		if err := mx.WriteFile(metricsOut, time.Now()); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		log.Info().Str("path", metricsOut).Msg("metrics written")
	}
	if showTimings {
		printStageTimings(cmd.ErrOrStderr(), res.Timings, time.Since(start))
	}
	if failed(reports) {
		return errBudgetsFailed
	}
	return nil
}

// resolveSources decodes "-" from stdin up front; other paths are loaded by
// the pipeline workers.
func resolveSources(stdin io.Reader, paths []string) ([]pipeline.Source, error) {
	sources := make([]pipeline.Source, 0, len(paths))
	seenStdin := false
	for _, p := range paths {
		if p != stdinName {
			sources = append(sources, pipeline.Source{Path: p})
			continue
		}
		if seenStdin {
			return nil, fmt.Errorf("stdin can be read only once")
		}
		seenStdin = true
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		m, err := manifest.Decode(data, manifest.FormatJSON)
		if err != nil {
			return nil, fmt.Errorf("<stdin>: %w", err)
		}
		sources = append(sources, pipeline.Source{Path: "<stdin>", Manifest: m})
	}
	return sources, nil
}

func renderReports(out io.Writer, reports []diagfmt.Report, opts reportOptions, toolCmd string, args []string) error {
	pathMode := diagfmt.PathModeAuto
	if opts.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	switch opts.format {
	case "pretty":
		diagfmt.Pretty(out, reports, diagfmt.PrettyOpts{
			Color:    opts.useColor,
			PathMode: pathMode,
			Width:    opts.width,
			Max:      opts.maxDiag,
			Summary:  !opts.quiet,
		})
	case "short":
		diagfmt.Short(out, reports, diagfmt.JSONOpts{PathMode: pathMode, Max: opts.maxDiag})
	case "json":
		if err := diagfmt.JSON(out, reports, diagfmt.JSONOpts{PathMode: pathMode, Max: opts.maxDiag}); err != nil {
			return fmt.Errorf("failed to format JSON output: %w", err)
		}
	case "sarif":
		meta := diagfmt.SarifRunMeta{
			ToolName:       "sizebudget",
			ToolVersion:    strings.TrimSpace(collectVersionInfo().Version),
			InvocationArgs: append(strings.Fields(toolCmd), args...),
			PathMode:       pathMode,
			Max:            opts.maxDiag,
		}
		if err := diagfmt.Sarif(out, reports, meta); err != nil {
			return fmt.Errorf("failed to format SARIF output: %w", err)
		}
	}
	return nil
}

// failed reports whether the run should exit non-zero: any error diagnostic
// after filtering or any manifest that could not be evaluated.
func failed(reports []diagfmt.Report) bool {
	for _, r := range reports {
		if r.Err != nil || (r.Bag != nil && r.Bag.HasErrors()) {
			return true
		}
	}
	return false
}

type checkOutcome struct {
	result pipeline.Result
	err    error
}

// подменяются в тестах
var (
	runPipeline = pipeline.Run
	runProgress = func(ctx context.Context, model tea.Model) (tea.Model, error) {
		return tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx)).Run()
	}
)

// runCheckWithUI runs the pipeline behind the progress view. Closing the view
// (ctrl+c) cancels the pipeline.
func runCheckWithUI(ctx context.Context, title string, req pipeline.Request) (pipeline.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	files := make([]string, len(req.Sources))
	for i, src := range req.Sources {
		files[i] = src.Path
	}

	go func() {
		reqCopy := req
		reqCopy.Progress = pipeline.ChannelSink{Ch: events}
		res, err := runPipeline(ctx, reqCopy)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	_, uiErr := runProgress(ctx, ui.NewProgressModel(title, files, events))
	// вид закрывается сам только после закрытия events, иначе это прерывание
	cancel()
	// дочитываем события, если UI завершился раньше пайплайна
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		log.Warn().Err(uiErr).Msg("progress view failed")
	}
	if errors.Is(outcome.err, context.Canceled) {
		return outcome.result, fmt.Errorf("check interrupted: %w", outcome.err)
	}
	return outcome.result, outcome.err
}
