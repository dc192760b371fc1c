// Package bot mirrors domain events into a single admin Telegram chat and
// answers a small set of admin commands from that chat. It is a convenience
// view: the database stays the source of truth and /chats and /payments can
// always reconstruct anything a missed push would have carried.
package bot

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Config struct {
	Token       string
	AdminChatID int64
	DB          *gorm.DB
	Redis       *redis.Client
}

type Bot struct {
	api    *tgbotapi.BotAPI
	db     *gorm.DB
	rdb    *redis.Client
	chatID int64
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(config Config) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(config.Token)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Bot{
		api:    api,
		db:     config.DB,
		rdb:    config.Redis,
		chatID: config.AdminChatID,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Start launches the inbound command listener and the event dispatcher.
func (b *Bot) Start() {
	log.Infof("telegram bot logged in as %s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	b.wg.Add(2)
	go func() {
		defer b.wg.Done()
		b.runListener(updates)
	}()
	go func() {
		defer b.wg.Done()
		b.runDispatcher(b.ctx)
	}()
}

func (b *Bot) Stop() {
	b.cancel()
	b.api.StopReceivingUpdates()
	b.wg.Wait()
}

func (b *Bot) runListener(updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-b.ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			// Commands are honored only from the admin chat.
			if update.Message.Chat.ID != b.chatID {
				continue
			}
			b.handleCommand(update.Message)
		}
	}
}

func (b *Bot) send(text string) {
	msg := tgbotapi.NewMessage(b.chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).Error("telegram send failed")
	}
}
