package main

import (
	"os"

	"github.com/df07/go-whitted-raytracer/cmd"
	"github.com/df07/go-whitted-raytracer/pkg/log"
	"github.com/df07/go-whitted-raytracer/pkg/viewer"
	"github.com/urfave/cli"
)

var logger = log.New("whitted")

func main() {
	app := cmd.NewApp(cli.Command{
		Name:      "view",
		Usage:     "open an interactive window on the scene",
		ArgsUsage: "[scene]",
		Flags: append(append([]cli.Flag{
			cli.BoolFlag{
				Name:  "watch",
				Usage: "reload the scene file when it changes",
			},
		}, cmd.SceneFlags...), cmd.CameraFlags...),
		Action: view,
	})

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

// view opens the scene in a window. It lives in main so the cmd package does
// not link ebiten.
func view(ctx *cli.Context) error {
	cmd.SetupLogging(ctx)

	sc, err := cmd.LoadScene(ctx)
	if err != nil {
		return err
	}
	sc.Camera.ApplyControls(cmd.CameraControls(ctx))

	opts := viewer.Options{
		Width:   sc.Config.Width,
		Height:  sc.Config.Height,
		Workers: sc.Config.Workers,
	}
	if ctx.Bool("watch") {
		if path := ctx.Args().First(); cmd.IsSceneFile(path) {
			opts.Watch = path
		} else {
			logger.Warning("--watch only applies to scene files")
		}
	}

	v, err := viewer.New(sc, opts)
	if err != nil {
		return err
	}
	return v.Run()
}
