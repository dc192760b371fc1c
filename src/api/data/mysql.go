package data

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/softpaws/rescue-backend/src/api/types"
)

func MustMySQL(dsn string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	return db
}

// Migrate creates or updates the schema for every record kind.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.Animal{},
		&types.News{},
		&types.Chat{},
		&types.ChatMessage{},
		&types.GiftCardSubmission{},
		&types.PaymentMethod{},
		&types.Setting{},
	)
}
