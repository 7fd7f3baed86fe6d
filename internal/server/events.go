package server

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/photoprism/faceverify/internal/event"
)

// LogEvents logs face events until ctx is canceled.
func LogEvents(ctx context.Context) {
	s := event.Subscribe("face.*")
	defer event.Unsubscribe(s)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-s.Receiver:
			if !ok {
				return
			}

			log.WithFields(logrus.Fields(msg.Fields)).Debugf("server: %s", msg.Name)
		}
	}
}
