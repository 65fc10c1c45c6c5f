package cmd

import (
	"github.com/df07/go-whitted-raytracer/pkg/log"
	"github.com/urfave/cli"
)

const logModule = "whitted"

var logger = log.New(logModule)

// SetupLogging raises verbosity from the global -v and -vv flags
func SetupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
