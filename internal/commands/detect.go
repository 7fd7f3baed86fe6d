package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize/english"
	"github.com/urfave/cli"

	"github.com/photoprism/faceverify/internal/face"
	"github.com/photoprism/faceverify/internal/thumb"
)

// DetectCommand registers the detect cli command.
var DetectCommand = cli.Command{
	Name:      "detect",
	Usage:     "Detects the best face in an image",
	ArgsUsage: "[filename]",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "output, o",
			Usage: "write an image with the face areas outlined to `FILENAME`",
		},
	},
	Action: detectAction,
}

func detectAction(ctx *cli.Context) error {
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

	img, info, err := thumb.Open(fileName)

	if err != nil {
		return err
	}

	log.Debugf("detect: %s is a %dx%d px %s image", filepath.Base(fileName), info.Width, info.Height, info.Format)

	dctx, cancel := context.WithTimeout(context.Background(), conf.InferenceTimeout())
	defer cancel()

	result, err := net.Detect(dctx, img)

	if output := ctx.String("output"); output != "" {
		if saveErr := thumb.Save(thumb.DrawAreas(img, result.Selection.Area, result.Candidates), output); saveErr != nil {
			log.Errorf("detect: %s", saveErr)
		} else {
			log.Infof("detect: saved overlay to %s", output)
		}
	}

	if err != nil {
		return err
	}

	s := result.Selection
	area, err := face.FaceArea(s.Area, result.Size, conf.FaceOptions().Geometry)

	if err != nil {
		return err
	}

	fmt.Printf("%s: face %s (crop %s) with confidence %.4f and score %.4f out of %s\n",
		filepath.Base(fileName), s.Area, area, s.Candidate.Score, s.Score,
		english.Plural(result.Candidates.Count(), "candidate", "candidates"))

	return nil
}
