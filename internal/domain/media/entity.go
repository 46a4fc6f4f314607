package media

import (
	"time"

	"pronet/internal/domain/account"
)

// Media records one stored blob. The record is only valid together with
// its blob object; keeping the two in sync across failures is the post
// coordinator's job, not this entity's.
type Media struct {
	ID        string       `gorm:"column:id;primaryKey" json:"id"`
	BlobKey   string       `gorm:"column:blob_key" json:"-"`
	MimeType  string       `gorm:"column:mime_type" json:"mime_type"`
	Size      int64        `gorm:"column:size" json:"size"`
	OwnerID   int64        `gorm:"column:owner_id;index" json:"owner_id"`
	OwnerKind account.Kind `gorm:"column:owner_kind" json:"owner_kind"`
	CreatedAt time.Time    `gorm:"column:created_at" json:"created_at"`
}

func (Media) TableName() string { return "media" }
