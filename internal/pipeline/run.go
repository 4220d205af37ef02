// Package pipeline evaluates budgets over many manifests concurrently.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"sizebudget/internal/budget"
	"sizebudget/internal/diag"
	"sizebudget/internal/manifest"
	"sizebudget/internal/metrics"
)

// Source is one manifest to evaluate. When Manifest is nil it is loaded from
// Path; otherwise Path is only a display name.
type Source struct {
	Path     string
	Manifest *manifest.Manifest
}

// FromPaths turns file paths into sources that are loaded on demand.
func FromPaths(paths ...string) []Source {
	out := make([]Source, len(paths))
	for i, p := range paths {
		out[i] = Source{Path: p}
	}
	return out
}

// Request configures a run.
type Request struct {
	Sources  []Source
	Rules    []budget.Rule
	Jobs     int
	Progress ProgressSink
	Metrics  *metrics.Metrics
	Logger   zerolog.Logger
}

// ManifestResult is the outcome for one source. Err is fatal for the manifest
// (load failure, inconsistent manifest, invalid rules); budget violations are
// only ever in Bag, which holds every one of them.
type ManifestResult struct {
	Path    string
	Bag     *diag.Bag
	Err     error
	Skipped bool
	Timings Timings
}

// Result aggregates a run.
type Result struct {
	Manifests []ManifestResult
	Timings   Timings
}

// Failed returns the number of manifests that ended with a fatal error.
func (r Result) Failed() int {
	n := 0
	for _, m := range r.Manifests {
		if m.Err != nil {
			n++
		}
	}
	return n
}

// Err joins every per-manifest fatal error, prefixed with the manifest path.
func (r Result) Err() error {
	var errs []error
	for _, m := range r.Manifests {
		if m.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", m.Path, m.Err))
		}
	}
	return errors.Join(errs...)
}

// Run evaluates req.Rules against every source with at most req.Jobs workers.
// Manifests are independent: a failing manifest does not stop the others.
// The returned error is non-nil only when ctx is cancelled; results are in
// source order either way.
func Run(ctx context.Context, req Request) (Result, error) {
	results := make([]ManifestResult, len(req.Sources))
	for i, src := range req.Sources {
		results[i] = ManifestResult{Path: src.Path, Bag: diag.NewBag(0), Skipped: true}
		emit(req.Progress, Event{File: src.Path, Stage: StageLoad, Status: StatusQueued})
	}
	if len(req.Sources) == 0 {
		return Result{Manifests: results}, nil
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(req.Sources)))

	for i, src := range req.Sources {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// индекс i уникален, мьютекс не нужен
			results[i] = process(req, src, results[i].Bag)
			return nil
		})
	}
	err := g.Wait()

	res := Result{Manifests: results}
	for _, m := range results {
		res.Timings.Merge(m.Timings)
	}
	status := StatusDone
	if err != nil {
		status = StatusError
	}
	emit(req.Progress, Event{Stage: StageEvaluate, Status: status, Err: err, Elapsed: time.Since(start)})
	req.Logger.Debug().
		Int("manifests", len(results)).
		Int("failed", res.Failed()).
		Dur("elapsed", time.Since(start)).
		Msg("run finished")
	return res, err
}

func process(req Request, src Source, bag *diag.Bag) ManifestResult {
	res := ManifestResult{Path: src.Path, Bag: bag}
	log := req.Logger.With().Str("manifest", src.Path).Logger()

	m := src.Manifest
	if m == nil {
		loaded, elapsed, err := timed(func() (*manifest.Manifest, error) { return manifest.Load(src.Path) }, req.Progress, src.Path, StageLoad)
		res.Timings.Set(StageLoad, elapsed)
		req.Metrics.ObserveStage(string(StageLoad), elapsed)
		if err != nil {
			log.Error().Err(err).Msg("failed to load manifest")
			res.Err = err
			req.Metrics.RecordManifest(true)
			return res
		}
		m = loaded
	}

	reporter := diag.MultiReporter{diag.BagReporter{Bag: bag}, req.Metrics.Reporter(src.Path)}
	_, elapsed, err := timed(func() (struct{}, error) {
		return struct{}{}, budget.Check(req.Rules, m, reporter)
	}, req.Progress, src.Path, StageEvaluate)
	res.Timings.Set(StageEvaluate, elapsed)
	req.Metrics.ObserveStage(string(StageEvaluate), elapsed)
	if req.Metrics != nil {
		recordSizes(req.Metrics, src.Path, req.Rules, m)
	}

	if err != nil {
		if budget.IsManifestIntegrity(err) {
			log.Error().Err(err).Msg("manifest is inconsistent")
		} else {
			log.Error().Err(err).Msg("invalid budget configuration")
		}
		res.Err = err
		req.Metrics.RecordManifest(true)
		return res
	}
	log.Debug().
		Int("diagnostics", bag.Len()).
		Dur("elapsed", res.Timings.Sum(Stages...)).
		Msg("manifest evaluated")
	req.Metrics.RecordManifest(false)
	return res
}

func timed[T any](fn func() (T, error), sink ProgressSink, file string, stage Stage) (T, time.Duration, error) {
	emit(sink, Event{File: file, Stage: stage, Status: StatusWorking})
	start := time.Now()
	v, err := fn()
	elapsed := time.Since(start)
	status := StatusDone
	if err != nil {
		status = StatusError
	}
	emit(sink, Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
	return v, elapsed, err
}

func recordSizes(mx *metrics.Metrics, path string, rules []budget.Rule, m *manifest.Manifest) {
	for _, rule := range rules {
		sizes, err := budget.Calculate(rule, m)
		if err != nil {
			continue
		}
		mx.RecordSizes(path, rule.Type, sizes)
	}
}
