package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli"

	"github.com/photoprism/faceverify/internal/config"
)

// ConfigCommand registers the config cli command.
var ConfigCommand = cli.Command{
	Name:   "config",
	Usage:  "Displays global configuration values",
	Action: configAction,
}

func configAction(ctx *cli.Context) error {
	conf := config.NewConfig(ctx)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "NAME\tVALUE\n")

	for _, row := range conf.Report() {
		fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
	}

	return w.Flush()
}
