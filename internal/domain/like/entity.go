package like

import "time"

// Like marks that a user has reacted to a post. The unique index on
// (post_id, user_id) is the source of truth for "at most one like per
// user per post"; application checks only decide the toggle direction.
type Like struct {
	ID        string    `json:"id" gorm:"column:id;primaryKey"`
	PostID    string    `json:"post_id" gorm:"column:post_id;not null;index;uniqueIndex:idx_like_post_user"`
	UserID    int64     `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_like_post_user"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (Like) TableName() string {
	return "likes"
}
