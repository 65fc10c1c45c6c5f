package cmd

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/log"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// BenchResult is the timing of one worker count
type BenchResult struct {
	Workers  int
	Frames   int
	AvgFrame time.Duration
	RaysPerS float64
	Speedup  float64 // Relative to the first result
}

// Bench renders the scene repeatedly with an increasing number of workers.
func Bench(ctx *cli.Context) error {
	SetupLogging(ctx)

	sc, err := LoadScene(ctx)
	if err != nil {
		return err
	}

	frames := ctx.Int("frames")
	if frames <= 0 {
		frames = 1
	}

	maxWorkers := ctx.Int("max-workers")
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	logger.Noticef("benchmarking %s at %dx%d, %d frames per worker count", sc.Name, sc.Config.Width, sc.Config.Height, frames)
	results, err := runBench(context.Background(), sc, workerCounts(maxWorkers), frames)
	if err != nil {
		return err
	}

	displayBenchResults(results)
	return nil
}

// workerCounts returns the powers of two below max, followed by max
func workerCounts(max int) []int {
	var counts []int
	for n := 1; n < max; n *= 2 {
		counts = append(counts, n)
	}
	return append(counts, max)
}

func runBench(ctx context.Context, sc *scene.Scene, counts []int, frames int) ([]BenchResult, error) {
	results := make([]BenchResult, 0, len(counts))
	for _, workers := range counts {
		rt, err := renderer.NewRaytracer(sc, sc.Config.Width, sc.Config.Height, sc.TraceConfig(), workers, logger)
		if err != nil {
			return nil, err
		}

		var total time.Duration
		var rays int64
		for i := 0; i < frames; i++ {
			_, stats, err := rt.Render(ctx, sc.Camera, sc.Light)
			if err != nil {
				rt.Close()
				return nil, err
			}
			total += stats.RenderTime
			rays += stats.RaysCast
		}
		rt.Close()

		result := BenchResult{
			Workers:  workers,
			Frames:   frames,
			AvgFrame: total / time.Duration(frames),
		}
		if total > 0 {
			result.RaysPerS = float64(rays) / total.Seconds()
		}
		if len(results) > 0 && result.AvgFrame > 0 {
			result.Speedup = float64(results[0].AvgFrame) / float64(result.AvgFrame)
		} else {
			result.Speedup = 1
		}
		logger.Infof("%d workers: %v per frame", workers, result.AvgFrame)
		results = append(results, result)
	}
	return results, nil
}

func displayBenchResults(results []BenchResult) {
	if !log.IsEnabled(log.Notice, logModule) {
		return
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Workers", "Frames", "Avg frame", "Rays/s", "Speedup"})
	for _, r := range results {
		table.Append([]string{
			fmt.Sprintf("%d", r.Workers),
			fmt.Sprintf("%d", r.Frames),
			r.AvgFrame.Round(time.Microsecond).String(),
			fmt.Sprintf("%.0f", r.RaysPerS),
			fmt.Sprintf("%.2fx", r.Speedup),
		})
	}

	table.Render()
	logger.Noticef("benchmark results\n%s", buf.String())
}
