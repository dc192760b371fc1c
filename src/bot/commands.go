package bot

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/softpaws/rescue-backend/src/api/types"
)

const helpText = `Rescue admin bot commands:
/chats - 10 most recently active conversations
/payments - 10 newest gift card submissions
/reply <chat id> <text> - answer a visitor
/help - this message`

func (b *Bot) handleCommand(m *tgbotapi.Message) {
	if !m.IsCommand() {
		return
	}

	log.WithField("command", m.Command()).Debug("admin command received")

	switch m.Command() {
	case "start", "help":
		b.send(helpText)
	case "chats":
		b.handleChats()
	case "payments":
		b.handlePayments()
	case "reply":
		b.handleReply(m.CommandArguments())
	default:
		b.send(helpText)
	}
}

func (b *Bot) handleChats() {
	var chats []types.Chat
	err := b.db.Order("updated_at DESC").Limit(10).Find(&chats).Error
	if err != nil {
		log.WithError(err).Error("failed to list chats")
		b.send("Failed to load conversations.")
		return
	}
	if len(chats) == 0 {
		b.send("No conversations yet.")
		return
	}

	lines := make([]string, 0, len(chats)+1)
	lines = append(lines, "Recent conversations:")
	for _, chat := range chats {
		var last types.ChatMessage
		preview := ""
		if err := b.db.Where("chat_id = ?", chat.ID).Order("created_at DESC").First(&last).Error; err == nil {
			preview = formatPreview(last)
		}
		lines = append(lines, formatChatLine(chat, preview))
	}
	b.send(strings.Join(lines, "\n"))
}

func (b *Bot) handlePayments() {
	var subs []types.GiftCardSubmission
	err := b.db.Order("created_at DESC").Limit(10).Find(&subs).Error
	if err != nil {
		log.WithError(err).Error("failed to list submissions")
		b.send("Failed to load submissions.")
		return
	}
	if len(subs) == 0 {
		b.send("No gift card submissions yet.")
		return
	}

	lines := make([]string, 0, len(subs)+1)
	lines = append(lines, "Recent gift card submissions:")
	for _, sub := range subs {
		lines = append(lines, formatSubmissionLine(sub))
	}
	b.send(strings.Join(lines, "\n"))
}

func (b *Bot) handleReply(args string) {
	chatID, text, ok := parseReplyArgs(args)
	if !ok {
		b.send("Usage: /reply <chat id> <text>")
		return
	}

	var chat types.Chat
	if err := b.db.First(&chat, "id = ?", chatID).Error; err != nil {
		b.send(fmt.Sprintf("Chat not found: %s", chatID))
		return
	}

	msg := types.ChatMessage{
		ChatID:    chat.ID,
		Sender:    types.SenderAdmin,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := b.db.Create(&msg).Error; err != nil {
		log.WithError(err).Error("failed to store admin reply")
		b.send("Failed to store reply. Please try again.")
		return
	}
	if err := b.db.Model(&chat).Update("updated_at", time.Now()).Error; err != nil {
		log.WithError(err).WithField("chat", chat.ID).Warn("failed to touch chat activity")
	}

	b.send(fmt.Sprintf("Reply sent to %s <%s>.", chat.Name, chat.Email))
}

// parseReplyArgs splits "/reply <id> <text>" arguments into id and body.
func parseReplyArgs(args string) (chatID, text string, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(args), " ", 2)
	if len(parts) < 2 {
		return "", "", false
	}
	chatID = strings.TrimSpace(parts[0])
	text = strings.TrimSpace(parts[1])
	if chatID == "" || text == "" {
		return "", "", false
	}
	return chatID, text, true
}
