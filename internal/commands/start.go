package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sevlyar/go-daemon"
	"github.com/urfave/cli"

	"github.com/photoprism/faceverify/internal/server"
	"github.com/photoprism/faceverify/pkg/fs"
)

// StartCommand registers the start cli command.
var StartCommand = cli.Command{
	Name:    "start",
	Aliases: []string{"up"},
	Usage:   "Starts the web server",
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:   "detach-server, d",
			Usage:  "detach from the console (daemon mode)",
			EnvVar: "FACEVERIFY_DETACH_SERVER",
		},
	},
	Action: startAction,
}

// startAction starts the web server and waits for a shutdown signal.
func startAction(ctx *cli.Context) error {
	conf, err := initConfig(ctx)

	if err != nil {
		return err
	}

	dctx := new(daemon.Context)
	dctx.LogFileName = conf.LogFilename()
	dctx.PidFileName = conf.PIDFilename()
	dctx.PidFilePerm = 0o644
	dctx.LogFilePerm = 0o640

	if !daemon.WasReborn() && ctx.Bool("detach-server") {
		if pid, ok := childAlreadyRunning(conf.PIDFilename()); ok {
			log.Infof("daemon already running with process id %v", pid)
			return nil
		}

		child, err := dctx.Reborn()

		if err != nil {
			return err
		}

		if child != nil {
			log.Infof("daemon started with process id %v", child.Pid)
			return nil
		}
	}

	net, err := loadNet(conf)

	if err != nil {
		return err
	}

	defer func() {
		if err := net.Close(); err != nil {
			log.Warn(err)
		}
	}()

	cctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- server.Start(cctx, conf, net) }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info("shutting down...")
		cancel()
		err = <-done
	case err = <-done:
		cancel()
	}

	if daemon.WasReborn() {
		if releaseErr := dctx.Release(); releaseErr != nil {
			log.Error(releaseErr)
		}
	}

	return err
}

// childAlreadyRunning tests if a process with the id stored in filePath is running.
func childAlreadyRunning(filePath string) (pid int, running bool) {
	if !fs.FileExists(filePath) {
		return pid, false
	}

	pid, err := daemon.ReadPidFile(filePath)

	if err != nil {
		return pid, false
	}

	process, err := os.FindProcess(pid)

	if err != nil {
		return pid, false
	}

	return pid, process.Signal(syscall.Signal(0)) == nil
}
