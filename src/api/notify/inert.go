package notify

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Inert is the sink used when no bot is configured. Events end up in the
// local log and nowhere else.
type Inert struct{}

func (Inert) Notify(_ context.Context, ev Event) {
	log.WithField("kind", ev.Kind).Infof("notification (no bot configured): %s", ev.Text)
}
