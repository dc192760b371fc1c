package types

import (
	"fmt"
	"time"
)

// Adoptable animals
type Animal struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Species     string    `gorm:"size:64" json:"species"`
	Description string    `gorm:"type:text" json:"description"`
	Price       string    `gorm:"size:32" json:"price"`
	ImageURL    string    `gorm:"size:512" json:"imageUrl"`
	ImageData   []byte    `gorm:"type:mediumblob" json:"-"`
	ImageType   string    `gorm:"size:64" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// News posts
type News struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ImageURL  string    `gorm:"size:512" json:"imageUrl"`
	ImageData []byte    `gorm:"type:mediumblob" json:"-"`
	ImageType string    `gorm:"size:64" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// One conversation per visitor email
type Chat struct {
	ID        string        `gorm:"primaryKey;size:36" json:"id"`
	Name      string        `gorm:"size:128;not null" json:"name"`
	Email     string        `gorm:"size:256;uniqueIndex;not null" json:"email"`
	Messages  []ChatMessage `gorm:"foreignKey:ChatID" json:"messages"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type ChatMessage struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	ChatID    string    `gorm:"index;size:36;not null" json:"chatId"`
	Sender    Sender    `gorm:"size:16;not null" json:"sender"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type Sender string

const (
	SenderUser  Sender = "user"
	SenderAdmin Sender = "admin"
)

// Gift-card payment proofs awaiting manual verification
type GiftCardSubmission struct {
	ID            string           `gorm:"primaryKey;size:36" json:"id"`
	Name          string           `gorm:"size:128;not null" json:"name"`
	Email         string           `gorm:"size:256;not null" json:"email"`
	Amount        float64          `gorm:"not null" json:"amount"`
	Note          string           `gorm:"type:text" json:"note"`
	PaymentMethod string           `gorm:"size:128" json:"paymentMethod"`
	ImageURL      string           `gorm:"size:512" json:"imageUrl"`
	ImageData     []byte           `gorm:"type:mediumblob" json:"-"`
	ImageType     string           `gorm:"size:64" json:"-"`
	Status        SubmissionStatus `gorm:"size:16;not null;default:'pending'" json:"status"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusVerified SubmissionStatus = "verified"
	StatusRejected SubmissionStatus = "rejected"
)

func (s SubmissionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether s allows no further transitions.
func (s SubmissionStatus) Terminal() bool {
	return s == StatusVerified || s == StatusRejected
}

// Transition validates s -> to. Verified and rejected are terminal.
func (s SubmissionStatus) Transition(to SubmissionStatus) error {
	if !to.Valid() {
		return fmt.Errorf("unknown status %q", string(to))
	}
	if s.Terminal() && to != s {
		return fmt.Errorf("submission already %s", string(s))
	}
	return nil
}

// Payment methods shown on the donate page; replaced wholesale via /settings
type PaymentMethod struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Label    string `gorm:"size:128;not null" json:"label"`
	Details  string `gorm:"type:text" json:"details"`
	Active   bool   `gorm:"default:true" json:"active"`
	Position int    `gorm:"default:0" json:"position"`
}

// Settings
type Setting struct {
	ID    uint8  `gorm:"primaryKey"`
	Name  string `gorm:"size:32;not null"`
	Value string `gorm:"size:256;not null"`
}
