package notify

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/softpaws/rescue-backend/src/api/data"
)

// RedisSink publishes events onto the rescue.events stream for the bot
// dispatcher to pick up.
type RedisSink struct {
	rdb *redis.Client
}

func NewRedisSink(rdb *redis.Client) *RedisSink {
	return &RedisSink{rdb: rdb}
}

func (s *RedisSink) Notify(ctx context.Context, ev Event) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := data.PublishEvent(ctx, s.rdb, map[string]interface{}{
		"kind":  ev.Kind,
		"text":  ev.Text,
		"image": ev.ImageURL,
	})
	if err != nil {
		log.WithError(err).WithField("kind", ev.Kind).Error("failed to publish notification event")
	}
}
