package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/photoprism/faceverify/internal/face"
	"github.com/photoprism/faceverify/internal/thumb"
)

// EncodeCommand registers the encode cli command.
var EncodeCommand = cli.Command{
	Name:      "encode",
	Usage:     "Prints the face embedding of an image as JSON",
	ArgsUsage: "[filename]",
	Action:    encodeAction,
}

// encodeOutput is the JSON printed by the encode command.
type encodeOutput struct {
	File      string         `json:"file"`
	Box       face.Box       `json:"box"`
	Area      face.Area      `json:"area"`
	Score     float64        `json:"score"`
	Norm      float64        `json:"norm"`
	Embedding face.Embedding `json:"embedding"`
}

func encodeAction(ctx *cli.Context) error {
	fileName := strings.TrimSpace(ctx.Args().First())

	if fileName == "" {
		return cli.ShowSubcommandHelp(ctx)
	}

	conf, err := initConfig(ctx)

	if err != nil {
		return err
	}

	net, err := loadNet(conf)

	if err != nil {
		return err
	}

	defer net.Close()

	result, err := encodeFile(net, fileName, conf.InferenceTimeout())

	if err != nil {
		return err
	}

	data, err := json.Marshal(encodeOutput{
		File:      filepath.Base(fileName),
		Box:       result.Box(),
		Area:      result.Area,
		Score:     face.Round4(result.Detection.Selection.Score),
		Norm:      face.Round4(result.Norm),
		Embedding: result.Embedding,
	})

	if err != nil {
		return err
	}

	fmt.Println(string(data))

	return nil
}

// encodeFile decodes an image file and encodes its best face.
func encodeFile(net *face.Net, fileName string, timeout time.Duration) (face.Result, error) {
	img, _, err := thumb.Open(fileName)

	if err != nil {
		return face.Result{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return net.Encode(ctx, img)
}
