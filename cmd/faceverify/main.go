/*
faceverify detects the most prominent face in an image, encodes it as a
512-dimensional embedding and compares embeddings by cosine similarity.

It can be used as a command-line tool or started as a web server.
*/
package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/photoprism/faceverify/internal/commands"
	"github.com/photoprism/faceverify/internal/config"
	"github.com/photoprism/faceverify/internal/event"
)

var version = "development"
var log = event.Log

func main() {
	config.LoadEnv()

	config.Version = version

	app := cli.NewApp()
	app.Name = config.Name
	app.Usage = "Face Detection and Verification"
	app.Version = version
	app.Copyright = "(c) 2018-2024 PhotoPrism UG. All rights reserved."
	app.EnableBashCompletion = true
	app.Flags = config.Flags
	app.Commands = commands.Commands

	if err := app.Run(os.Args); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
