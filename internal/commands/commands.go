/*
Package commands provides the faceverify command-line commands.
*/
package commands

import (
	"context"
	"io"

	"github.com/urfave/cli"

	"github.com/photoprism/faceverify/internal/config"
	"github.com/photoprism/faceverify/internal/event"
	"github.com/photoprism/faceverify/internal/face"
	"github.com/photoprism/faceverify/internal/infer"
)

var log = event.Log

// Commands lists the available commands.
var Commands = []cli.Command{
	StartCommand,
	StopCommand,
	EncodeCommand,
	CompareCommand,
	DetectCommand,
	EvaluateCommand,
	ConfigCommand,
}

// initConfig creates and initializes the config.
func initConfig(ctx *cli.Context) (*config.Config, error) {
	conf := config.NewConfig(ctx)

	if err := conf.Init(); err != nil {
		return conf, err
	}

	return conf, nil
}

// loadNet opens the detector and recognizer and returns the pipeline.
func loadNet(conf *config.Config) (*face.Net, error) {
	ctx, cancel := context.WithTimeout(context.Background(), conf.InferenceTimeout())
	defer cancel()

	detector, err := infer.Open(ctx, conf.DetectorModelPath(), conf.InferOptions())

	if err != nil {
		return nil, err
	}

	recognizer, err := infer.Open(ctx, conf.RecognizerModelPath(), conf.InferOptions())

	if err != nil {
		closeModel(detector)
		return nil, err
	}

	net, err := face.NewNet(detector, recognizer, conf.FaceOptions())

	if err != nil {
		closeModel(detector)
		closeModel(recognizer)
		return nil, err
	}

	return net, nil
}

func closeModel(m face.Model) {
	if c, ok := m.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Warnf("infer: %s", err)
		}
	}
}
