package notification

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Type represents notification type
type Type string

const (
	TypePostCommented Type = "post_commented"
	TypePostLiked     Type = "post_liked"
)

// Notification is one feed event stored for an account.
type Notification struct {
	ID        int64           `gorm:"primaryKey;column:id" json:"id"`
	AccountID int64           `gorm:"column:account_id;index:idx_notifications_account_unread" json:"account_id"`
	Type      Type            `gorm:"column:type" json:"type"`
	Title     string          `gorm:"column:title" json:"title"`
	Message   string          `gorm:"column:message" json:"message"`
	Data      json.RawMessage `gorm:"column:data;type:text" json:"data,omitempty"`
	IsRead    bool            `gorm:"column:is_read;index:idx_notifications_account_unread" json:"is_read"`
	ReadAt    sql.NullTime    `gorm:"column:read_at" json:"read_at,omitempty"`
	CreatedAt time.Time       `gorm:"column:created_at" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// EventData links a notification back to its content.
type EventData struct {
	PostID    string `json:"post_id,omitempty"`
	CommentID string `json:"comment_id,omitempty"`
	ActorID   int64  `json:"actor_id,omitempty"`
}

func (n *Notification) SetData(data *EventData) error {
	if data == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	n.Data = b
	return nil
}

func (n *Notification) MarkAsRead() {
	n.IsRead = true
	n.ReadAt = sql.NullTime{Time: time.Now(), Valid: true}
}
