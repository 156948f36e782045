package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ChatTypePrivate = "private"
	ChatTypeGroup   = "group"
)

// Message is one entry of the append-only chat log. Messages are never
// mutated or deleted. TargetID is a peer user id for private messages and
// a group id for group messages.
type Message struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	SenderID  string    `gorm:"index" json:"senderId"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	ChatType  string    `gorm:"index" json:"chatType"`
	TargetID  string    `gorm:"index" json:"targetId"`
	IsFile    bool      `json:"isFile"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
