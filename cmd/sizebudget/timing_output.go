package main

import (
	"fmt"
	"io"
	"time"

	"sizebudget/internal/pipeline"
)

func printStageTimings(out io.Writer, timings pipeline.Timings, total time.Duration) {
	if out == nil {
		return
	}
	if timings.Has(pipeline.StageLoad) {
		fmt.Fprintf(out, "loaded %.1f ms\n", toMillis(timings.Duration(pipeline.StageLoad)))
	}
	if timings.Has(pipeline.StageEvaluate) {
		fmt.Fprintf(out, "evaluated %.1f ms\n", toMillis(timings.Duration(pipeline.StageEvaluate)))
	}
	fmt.Fprintf(out, "total %.1f ms\n", toMillis(total))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
