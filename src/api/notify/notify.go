// Package notify carries domain events to the admin channel. Senders publish
// after their own write is durable; delivery is best effort and a failed
// publish never propagates to the caller.
package notify

import "context"

type Event struct {
	Kind     string
	Text     string
	ImageURL string
}

// Event kinds, informational only (logging and dispatcher metrics).
const (
	KindChatMessage      = "chat_message"
	KindAdminReply       = "admin_reply"
	KindSubmission       = "submission"
	KindSubmissionStatus = "submission_status"
)

type Sink interface {
	// Notify delivers ev best effort. Implementations log failures and
	// never return them to the caller.
	Notify(ctx context.Context, ev Event)
}
