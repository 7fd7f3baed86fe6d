package event

import (
	"github.com/sirupsen/logrus"
)

// Log is the global default logger.
var Log *logrus.Logger

func init() {
	Log = logrus.StandardLogger()
	Log.SetLevel(logrus.InfoLevel)
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

// SetLevel changes the log level, unknown names are ignored.
func SetLevel(name string) {
	if name == "" {
		return
	}

	level, err := logrus.ParseLevel(name)

	if err != nil {
		Log.Warnf("log: unknown level %s", name)
		return
	}

	Log.SetLevel(level)
}
