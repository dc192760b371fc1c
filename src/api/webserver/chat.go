package webserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/softpaws/rescue-backend/src/api/notify"
	"github.com/softpaws/rescue-backend/src/api/types"
)

type Chats struct {
	db        *gorm.DB
	sink      notify.Sink
	sanitizer *bluemonday.Policy
}

func NewChats(db *gorm.DB, sink notify.Sink) Chats {
	return Chats{db: db, sink: sink, sanitizer: bluemonday.StrictPolicy()}
}

// PostMessage appends a visitor message to the conversation keyed by email,
// creating the conversation on first contact.
func (h Chats) PostMessage(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required,max=128"`
		Email   string `json:"email" binding:"required,max=256"`
		Message string `json:"message" binding:"required,max=5000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !isValidEmail(email) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid email format"})
		return
	}
	text := strings.TrimSpace(h.sanitizer.Sanitize(req.Message))
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "message is empty"})
		return
	}

	var chat types.Chat
	err := h.db.Where("email = ?", email).First(&chat).Error
	if err == gorm.ErrRecordNotFound {
		chat = types.Chat{
			ID:    uuid.NewString(),
			Name:  strings.TrimSpace(req.Name),
			Email: email,
		}
		if err := h.db.Create(&chat).Error; err != nil {
			// Lost a create race against a concurrent first message;
			// the unique email index guarantees one winner.
			if err2 := h.db.Where("email = ?", email).First(&chat).Error; err2 != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
				return
			}
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	msg := types.ChatMessage{
		ChatID:    chat.ID,
		Sender:    types.SenderUser,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := h.db.Create(&msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	if err := h.db.Model(&chat).Update("updated_at", time.Now()).Error; err != nil {
		log.WithError(err).WithField("chat", chat.ID).Warn("failed to touch chat activity")
	}

	h.sink.Notify(context.Background(), notify.Event{
		Kind: notify.KindChatMessage,
		Text: fmt.Sprintf("New chat message\nFrom: %s <%s>\n%s\nReply with /reply %s <text>",
			chat.Name, chat.Email, truncate(text, 300), chat.ID),
	})

	h.respondWithChat(c, chat.ID)
}

// AdminReply appends an admin message to an existing conversation.
func (h Chats) AdminReply(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Message string `json:"message" binding:"required,max=5000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	text := strings.TrimSpace(h.sanitizer.Sanitize(req.Message))
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "message is empty"})
		return
	}

	var chat types.Chat
	if err := h.db.First(&chat, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"err": "chat not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	msg := types.ChatMessage{
		ChatID:    chat.ID,
		Sender:    types.SenderAdmin,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := h.db.Create(&msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	if err := h.db.Model(&chat).Update("updated_at", time.Now()).Error; err != nil {
		log.WithError(err).WithField("chat", chat.ID).Warn("failed to touch chat activity")
	}

	h.sink.Notify(context.Background(), notify.Event{
		Kind: notify.KindAdminReply,
		Text: fmt.Sprintf("Admin replied to %s <%s>:\n%s", chat.Name, chat.Email, truncate(text, 300)),
	})

	h.respondWithChat(c, chat.ID)
}

// List returns all conversations, most recently active first.
func (h Chats) List(c *gin.Context) {
	var chats []types.Chat
	err := h.db.Preload("Messages", messageOrder).Order("updated_at DESC").Find(&chats).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, chats)
}

func (h Chats) respondWithChat(c *gin.Context, id string) {
	var chat types.Chat
	if err := h.db.Preload("Messages", messageOrder).First(&chat, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, chat)
}

func messageOrder(db *gorm.DB) *gorm.DB {
	return db.Order("chat_messages.created_at ASC")
}
