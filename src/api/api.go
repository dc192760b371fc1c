package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/softpaws/rescue-backend/src/api/config"
	"github.com/softpaws/rescue-backend/src/api/data"
	"github.com/softpaws/rescue-backend/src/api/images"
	"github.com/softpaws/rescue-backend/src/api/notify"
	"github.com/softpaws/rescue-backend/src/api/webserver"
	"github.com/softpaws/rescue-backend/src/bot"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stdout)

	cfg := config.Parse()

	db := data.MustMySQL(cfg.MySQLDSN)
	if err := data.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	cfg.FillFromDB(db)

	rdb := data.MustRedis(cfg.RedisURL)

	var store images.Store
	switch cfg.ImageStorage {
	case "imgbb":
		if cfg.ImgBBKey == "" {
			log.Fatal("IMAGE_STORAGE=imgbb requires IMGBB_API_KEY")
		}
		store = images.NewExternal(cfg.ImgBBKey, "")
		log.Info("image storage: external host")
	default:
		store = images.NewInline()
		log.Info("image storage: inline")
	}

	// The bot and the event sink come and go together. Without a token the
	// whole fan-out is inert: notifications degrade to log lines and no
	// listener is started.
	var sink notify.Sink = notify.Inert{}
	var tgBot *bot.Bot
	if cfg.TelegramToken != "" && cfg.TelegramAdminChat != 0 {
		var err error
		tgBot, err = bot.New(bot.Config{
			Token:       cfg.TelegramToken,
			AdminChatID: cfg.TelegramAdminChat,
			DB:          db,
			Redis:       rdb,
		})
		if err != nil {
			log.WithError(err).Warn("telegram bot unavailable, notifications disabled")
		} else {
			sink = notify.NewRedisSink(rdb)
			tgBot.Start()
		}
	} else {
		log.Info("telegram not configured, notifications disabled")
	}

	router := webserver.New(cfg, db, rdb, store, sink)
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Infof("rescue backend listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	if tgBot != nil {
		tgBot.Stop()
	}

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
