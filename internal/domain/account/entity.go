package account

import "time"

// Kind discriminates the two account flavors that can own content.
type Kind string

const (
	KindUser    Kind = "user"
	KindCompany Kind = "company"
)

// Account is the owner of posts, media and comments. Identity flows
// (registration, login, token refresh) live in a separate service; this
// API only resolves accounts and maintains the created-post counter.
type Account struct {
	ID               int64     `gorm:"column:id;primaryKey" json:"id"`
	Name             string    `gorm:"column:name" json:"name"`
	Email            string    `gorm:"column:email;uniqueIndex" json:"email"`
	PasswordHash     string    `gorm:"column:password_hash" json:"-"`
	Kind             Kind      `gorm:"column:kind" json:"kind"`
	CreatedPostCount int64     `gorm:"column:created_post_count" json:"created_post_count"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }
