package webserver

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/softpaws/rescue-backend/src/api/config"
	"github.com/softpaws/rescue-backend/src/api/images"
	"github.com/softpaws/rescue-backend/src/api/notify"
)

func New(cfg config.Config, db *gorm.DB, rdb *redis.Client, store images.Store, sink notify.Sink) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, cfg, db, rdb, store, sink)
	return g
}
