package webserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Health struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewHealth(db *gorm.DB, rdb *redis.Client) Health {
	return Health{db: db, rdb: rdb}
}

// Check always answers 200 once the process is up; dependency state is
// reported in the body for operators.
func (h Health) Check(c *gin.Context) {
	mysqlStatus := "ok"
	if sqlDB, err := h.db.DB(); err != nil {
		mysqlStatus = err.Error()
	} else if err := sqlDB.Ping(); err != nil {
		mysqlStatus = err.Error()
	}

	redisStatus := "ok"
	if err := h.rdb.Ping(c).Err(); err != nil {
		redisStatus = err.Error()
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "up",
		"time":   time.Now().UTC().Format(time.RFC3339),
		"mysql":  mysqlStatus,
		"redis":  redisStatus,
	})
}
