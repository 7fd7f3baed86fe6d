package commands

import (
	"syscall"

	"github.com/sevlyar/go-daemon"
	"github.com/urfave/cli"

	"github.com/photoprism/faceverify/internal/config"
)

// StopCommand registers the stop cli command.
var StopCommand = cli.Command{
	Name:    "stop",
	Aliases: []string{"down"},
	Usage:   "Stops the web server in daemon mode",
	Action:  stopAction,
}

// stopAction sends SIGTERM to the daemon process.
func stopAction(ctx *cli.Context) error {
	conf := config.NewConfig(ctx)

	log.Infof("looking for pid in %s", conf.PIDFilename())

	dctx := new(daemon.Context)
	dctx.PidFileName = conf.PIDFilename()

	child, err := dctx.Search()

	if err != nil {
		return err
	} else if child == nil {
		log.Infof("daemon is not running")
		return nil
	}

	if err = child.Signal(syscall.SIGTERM); err != nil {
		return err
	}

	log.Infof("sent SIGTERM to process %d", child.Pid)

	return nil
}
