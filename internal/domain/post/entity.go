package post

import "time"

// MaxDescriptionLen bounds the optional post description.
const MaxDescriptionLen = 1000

// Post is the feed entry an account publishes. Media references live in
// post_media join rows so upload order survives round-trips. isDeleted
// is a one-way flag: deleted posts stay on disk but leave every read
// path.
type Post struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	CreatorID   int64     `gorm:"column:creator_id;index" json:"creator_id"`
	Description string    `gorm:"column:description" json:"description"`
	IsDeleted   bool      `gorm:"column:is_deleted;index" json:"-"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Post) TableName() string { return "posts" }

// PostMedia links a post to one media record at a position.
type PostMedia struct {
	PostID   string `gorm:"column:post_id;primaryKey"`
	MediaID  string `gorm:"column:media_id;primaryKey"`
	Position int    `gorm:"column:position"`
}

func (PostMedia) TableName() string { return "post_media" }
