package data

import (
	"gorm.io/gorm"

	"github.com/softpaws/rescue-backend/src/api/types"
)

// Settings is a one-shot snapshot of the name/value settings table, read at
// startup to back the credential fallbacks in config. Environment values
// always win over rows here.
type Settings struct {
	values map[string]string
}

func LoadSettings(db *gorm.DB) (Settings, error) {
	var rows []types.Setting
	if err := db.Find(&rows).Error; err != nil {
		return Settings{}, err
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Name] = row.Value
	}
	return Settings{values: values}, nil
}

// Get returns the value for name, empty when the table has no such row.
func (s Settings) Get(name string) string {
	return s.values[name]
}
