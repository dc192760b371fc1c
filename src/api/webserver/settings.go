package webserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/softpaws/rescue-backend/src/api/types"
)

type Settings struct {
	db *gorm.DB
}

func NewSettings(db *gorm.DB) Settings {
	return Settings{db: db}
}

func (h Settings) Get(c *gin.Context) {
	var methods []types.PaymentMethod
	if err := h.db.Order("position ASC").Find(&methods).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"paymentMethods": methods})
}

// Replace swaps the whole payment-method list in one transaction.
func (h Settings) Replace(c *gin.Context) {
	var req struct {
		PaymentMethods []struct {
			Label    string `json:"label" binding:"required,max=128"`
			Details  string `json:"details"`
			Active   *bool  `json:"active"`
			Position int    `json:"position"`
		} `json:"paymentMethods" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	methods := make([]types.PaymentMethod, 0, len(req.PaymentMethods))
	for i, m := range req.PaymentMethods {
		label := strings.TrimSpace(m.Label)
		if label == "" {
			c.JSON(http.StatusBadRequest, gin.H{"err": "payment method label is required"})
			return
		}
		active := true
		if m.Active != nil {
			active = *m.Active
		}
		position := m.Position
		if position == 0 {
			position = i
		}
		methods = append(methods, types.PaymentMethod{
			Label:    label,
			Details:  m.Details,
			Active:   active,
			Position: position,
		})
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&types.PaymentMethod{}).Error; err != nil {
			return err
		}
		if len(methods) == 0 {
			return nil
		}
		return tx.Create(&methods).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"paymentMethods": methods})
}
