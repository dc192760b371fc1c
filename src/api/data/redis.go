package data

import (
	"context"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// StreamEvents carries domain events from the HTTP handlers to the bot dispatcher.
const StreamEvents = "rescue.events"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

func PublishEvent(ctx context.Context, rdb *redis.Client, payload map[string]interface{}) error {
	_, err := rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamEvents,
		MaxLen: 1000,
		Approx: true,
		Values: payload,
	}).Result()
	return err
}
