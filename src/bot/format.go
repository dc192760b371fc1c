package bot

import (
	"fmt"

	"github.com/softpaws/rescue-backend/src/api/types"
)

const previewLen = 60

func formatChatLine(chat types.Chat, preview string) string {
	if preview == "" {
		preview = "(no messages)"
	}
	return fmt.Sprintf("%s <%s> - %s\n  id: %s", chat.Name, chat.Email, preview, chat.ID)
}

func formatPreview(msg types.ChatMessage) string {
	prefix := ""
	if msg.Sender == types.SenderAdmin {
		prefix = "you: "
	}
	return prefix + truncateRunes(msg.Text, previewLen)
}

func formatSubmissionLine(sub types.GiftCardSubmission) string {
	line := fmt.Sprintf("%s <%s> - %.2f via %s [%s]", sub.Name, sub.Email, sub.Amount, sub.PaymentMethod, sub.Status)
	if sub.Note != "" {
		line += "\n  note: " + truncateRunes(sub.Note, previewLen)
	}
	return line + "\n  id: " + sub.ID
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
