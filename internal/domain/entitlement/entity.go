package entitlement

import (
	"database/sql"
	"time"
)

// Status of a paid entitlement
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// Entitlement tracks a paid plan for an account. Accounts without an
// active entitlement are on the free tier, which caps lifetime created
// posts.
type Entitlement struct {
	ID          string       `gorm:"column:id;primaryKey" json:"id"`
	AccountID   int64        `gorm:"column:account_id;index" json:"account_id"`
	Status      Status       `gorm:"column:status" json:"status"`
	ExpiresAt   sql.NullTime `gorm:"column:expires_at" json:"expires_at,omitempty"`
	CancelledAt sql.NullTime `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`
	CreatedAt   time.Time    `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"column:updated_at" json:"updated_at"`
}

func (Entitlement) TableName() string { return "entitlements" }

// IsExpired checks if the entitlement has passed its expiry date
func (e *Entitlement) IsExpired() bool {
	if !e.ExpiresAt.Valid {
		return false
	}
	return time.Now().After(e.ExpiresAt.Time)
}

// IsActive checks if the entitlement is currently usable
func (e *Entitlement) IsActive() bool {
	return e.Status == StatusActive && !e.IsExpired()
}
