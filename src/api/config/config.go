package config

import (
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/softpaws/rescue-backend/src/api/data"
)

type Config struct {
	Port              string   `env:"PORT" envDefault:"8080"`
	MySQLDSN          string   `env:"MYSQL_DSN" envDefault:"rescue:rescue@tcp(127.0.0.1:3306)/rescue?parseTime=true"`
	RedisURL          string   `env:"REDIS_URL" envDefault:"redis://127.0.0.1:6379/0"`
	PublicURL         string   `env:"PUBLIC_URL" envDefault:"http://localhost:8080"`
	CORSOrigins       []string `env:"CORS_ORIGINS" envDefault:"http://localhost:3000"`
	ImageStorage      string   `env:"IMAGE_STORAGE" envDefault:"inline"`
	ImgBBKey          string   `env:"IMGBB_API_KEY"`
	TelegramToken     string   `env:"TELEGRAM_TOKEN"`
	TelegramAdminChat int64    `env:"TELEGRAM_ADMIN_CHAT"`
}

// Parse reads .env plus the process environment. Credentials left empty here
// can be filled from the settings table once the database is up, see
// FillFromDB.
func Parse() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using system environment")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// FillFromDB fills bot and image-host credentials from the settings table
// when the environment leaves them empty.
func (c *Config) FillFromDB(db *gorm.DB) {
	settings, err := data.LoadSettings(db)
	if err != nil {
		log.Warnf("failed to load settings: %v", err)
		return
	}

	if c.TelegramToken == "" {
		c.TelegramToken = settings.Get("telegram_token")
	}
	if c.TelegramAdminChat == 0 {
		c.TelegramAdminChat = parseChatID(settings.Get("telegram_admin_chat"))
	}
	if c.ImgBBKey == "" {
		c.ImgBBKey = settings.Get("imgbb_api_key")
	}
}

func parseChatID(v string) int64 {
	if v == "" {
		return 0
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Warnf("bad telegram_admin_chat setting %q: %v", v, err)
		return 0
	}
	return id
}
