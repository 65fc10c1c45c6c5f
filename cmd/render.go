package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/df07/go-whitted-raytracer/pkg/log"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// LoadScene creates the scene named by the first argument, "default" when
// none is given, and applies the size, depth and worker flags
func LoadScene(ctx *cli.Context) (*scene.Scene, error) {
	if ctx.NArg() > 1 {
		return nil, errors.New("expected at most one scene argument")
	}
	name := ctx.Args().First()
	if name == "" {
		name = "default"
	}

	sc, err := scene.Create(context.Background(), name)
	if err != nil {
		return nil, err
	}

	if w := ctx.Int("width"); w > 0 {
		sc.Config.Width = w
	}
	if h := ctx.Int("height"); h > 0 {
		sc.Config.Height = h
	}
	if d := ctx.Int("depth"); d > 0 {
		sc.Config.MaxDepth = d
	}
	if n := ctx.Int("workers"); n > 0 {
		sc.Config.Workers = n
	}
	return sc, nil
}

// CameraControls reads the camera adjustment flags
func CameraControls(ctx *cli.Context) renderer.CameraControls {
	return renderer.CameraControls{
		Yaw:   float32(ctx.Float64("yaw")),
		Pitch: float32(ctx.Float64("pitch")),
		Zoom:  float32(ctx.Float64("zoom")),
		Pan:   float32(ctx.Float64("pan")),
	}
}

// RenderFrame renders a still frame to a PNG file.
func RenderFrame(ctx *cli.Context) error {
	SetupLogging(ctx)

	sc, err := LoadScene(ctx)
	if err != nil {
		return err
	}
	camera := sc.Camera
	camera.ApplyControls(CameraControls(ctx))

	rt, err := renderer.NewRaytracer(sc, sc.Config.Width, sc.Config.Height, sc.TraceConfig(), sc.Config.Workers, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	logger.Noticef("rendering %s at %dx%d", sc.Name, sc.Config.Width, sc.Config.Height)
	frame, stats, err := rt.Render(context.Background(), camera, sc.Light)
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if err := writePNG(out, frame); err != nil {
		return err
	}

	displayFrameStats(stats)
	logger.Noticef("frame saved as %s", out)
	return nil
}

func writePNG(path string, frame *renderer.Frame) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, frame.Image()); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.Close()
}

func displayFrameStats(stats renderer.RenderStats) {
	if !log.IsEnabled(log.Notice, logModule) {
		return
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pixels", "Workers", "Rays", "Shadow rays", "Rays/s", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.TotalPixels),
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%d", stats.RaysCast),
		fmt.Sprintf("%d", stats.ShadowRays),
		fmt.Sprintf("%.0f", stats.RaysPerSecond()),
		stats.RenderTime.String(),
	})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
