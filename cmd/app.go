// Package cmd holds the command line actions.
package cmd

import (
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/web/server"
	"github.com/urfave/cli"
)

// SceneFlags size and tune the scene for every command that renders it
var SceneFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "width",
		Usage: "frame width, 0 for the scene default",
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "frame height, 0 for the scene default",
	},
	cli.IntFlag{
		Name:  "depth",
		Usage: "maximum reflection and refraction depth, 0 for the scene default",
	},
	cli.IntFlag{
		Name:  "workers",
		Usage: "render workers, 0 for one per CPU",
	},
}

// CameraFlags adjust the scene camera before rendering
var CameraFlags = []cli.Flag{
	cli.Float64Flag{
		Name:  "yaw",
		Usage: "orbit around the vertical axis, radians",
	},
	cli.Float64Flag{
		Name:  "pitch",
		Usage: "orbit up or down, radians",
	},
	cli.Float64Flag{
		Name:  "zoom",
		Usage: "move towards the look-at point",
	},
	cli.Float64Flag{
		Name:  "pan",
		Usage: "move eye and look-at point vertically",
	},
}

var dirFlag = cli.StringFlag{
	Name:  "dir",
	Value: "scenes",
	Usage: "directory holding YAML scene files",
}

// NewApp creates the command line application. Extra commands, such as
// ones that need a display, are appended by the caller.
func NewApp(extra ...cli.Command) *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "whitted"
	app.Usage = "render scenes using Whitted-style ray tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame to a PNG file",
			Description: `
Render a built-in scene or a YAML scene file. The scene argument is a scene id
as listed by the scenes command or a path ending in .yaml or .yml.`,
			ArgsUsage: "[scene]",
			Flags: append(append([]cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			}, SceneFlags...), CameraFlags...),
			Action: RenderFrame,
		},
		{
			Name:      "bench",
			Usage:     "time frame rendering across worker counts",
			ArgsUsage: "[scene]",
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "frames",
					Value: 3,
					Usage: "frames rendered per worker count",
				},
				cli.IntFlag{
					Name:  "max-workers",
					Usage: "largest worker count, 0 for one per CPU",
				},
			}, SceneFlags...),
			Action: Bench,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes and scene files",
			Flags:  []cli.Flag{dirFlag},
			Action: ListScenes,
		},
		{
			Name:  "serve",
			Usage: "start the web preview server",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port",
					Value: 8080,
					Usage: "port to serve on",
				},
				dirFlag,
			},
			Action: Serve,
		},
	}
	app.Commands = append(app.Commands, extra...)

	return app
}

// Serve starts the web preview server.
func Serve(ctx *cli.Context) error {
	SetupLogging(ctx)

	port := ctx.Int("port")
	logger.Noticef("visit http://localhost:%d to start rendering", port)
	return server.NewServer(port, ctx.String("dir")).Start()
}

// IsSceneFile reports whether name refers to a YAML scene file
func IsSceneFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
