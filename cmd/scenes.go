package cmd

import (
	"bytes"
	"io"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListScenes prints the built-in scenes and the scene files in --dir.
func ListScenes(ctx *cli.Context) error {
	SetupLogging(ctx)

	response, err := scene.ListAllScenes(ctx.String("dir"))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	writeSceneTable(&buf, response)
	logger.Noticef("available scenes\n%s", buf.String())
	return nil
}

func writeSceneTable(w io.Writer, response scene.ScenesResponse) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Group", "ID", "Name", "Description"})
	for _, group := range response.Groups {
		for _, info := range group.Scenes {
			table.Append([]string{group.Name, info.ID, info.DisplayName, info.Description})
		}
	}
	table.Render()
}
