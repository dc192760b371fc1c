package webserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/softpaws/rescue-backend/src/api/config"
	"github.com/softpaws/rescue-backend/src/api/images"
	"github.com/softpaws/rescue-backend/src/api/notify"
)

func attachRoutes(r *gin.Engine, cfg config.Config, db *gorm.DB, rdb *redis.Client, store images.Store, sink notify.Sink) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	animalH := NewAnimals(db, store, cfg.PublicURL)
	newsH := NewNews(db, store, cfg.PublicURL)
	chatH := NewChats(db, sink)
	giftH := NewGiftCards(db, store, sink, cfg.PublicURL)
	settingsH := NewSettings(db)
	imageH := NewImages(db)
	healthH := NewHealth(db, rdb)

	// Public POST endpoints take no credentials, so throttle them per IP.
	publicLimit := RateLimit(rdb, 10, time.Minute)

	r.GET("/health", healthH.Check)

	r.GET("/animals", animalH.List)
	r.GET("/animals/:id", animalH.Get)
	r.POST("/animals", animalH.Create)
	r.PUT("/animals/:id", animalH.Update)
	r.DELETE("/animals/:id", animalH.Delete)

	r.GET("/news", newsH.List)
	r.GET("/news/:id", newsH.Get)
	r.POST("/news", newsH.Create)
	r.PUT("/news/:id", newsH.Update)
	r.DELETE("/news/:id", newsH.Delete)

	r.POST("/chat", publicLimit, chatH.PostMessage)
	r.GET("/chats", chatH.List)
	r.POST("/chat/:id/reply", chatH.AdminReply)

	r.POST("/submit-giftcard", publicLimit, giftH.Submit)
	r.GET("/giftcard-submissions", giftH.List)
	r.PUT("/giftcard-submissions/:id", giftH.UpdateStatus)

	r.GET("/settings", settingsH.Get)
	r.POST("/settings", settingsH.Replace)

	r.GET("/api/image/:id", imageH.Animal)
	r.GET("/api/news-image/:id", imageH.News)
	r.GET("/api/giftcard-image/:id", imageH.GiftCard)
}
