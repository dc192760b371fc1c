package bot

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/softpaws/rescue-backend/src/api/data"
)

// runDispatcher drains the rescue.events stream and pushes each event to the
// admin chat. Delivery is best effort; a failed send is logged and the
// dispatcher moves on.
func (b *Bot) runDispatcher(ctx context.Context) {
	log.Info("starting notification dispatcher")
	lastID := "$"

	for {
		select {
		case <-ctx.Done():
			log.Info("stopping notification dispatcher")
			return
		default:
		}

		res, err := b.rdb.XRead(ctx, &redis.XReadArgs{
			Streams: []string{data.StreamEvents, lastID},
			Count:   10,
			Block:   5 * time.Second,
		}).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			log.WithError(err).Error("event stream read failed")
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				lastID = msg.ID
				b.deliver(msg.Values)
			}
		}
	}
}

func (b *Bot) deliver(values map[string]interface{}) {
	text := stringValue(values, "text")
	if text == "" {
		return
	}
	imageURL := stringValue(values, "image")

	if strings.HasPrefix(imageURL, "http://") || strings.HasPrefix(imageURL, "https://") {
		photo := tgbotapi.NewPhoto(b.chatID, tgbotapi.FileURL(imageURL))
		photo.Caption = text
		if _, err := b.api.Send(photo); err == nil {
			return
		} else {
			log.WithError(err).Warn("photo send failed, sending as text")
		}
	}

	b.send(text)
}

func stringValue(values map[string]interface{}, key string) string {
	if v, ok := values[key].(string); ok {
		return v
	}
	return ""
}
