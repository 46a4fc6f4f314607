package comment

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// MaxContentLen bounds a single comment body.
const MaxContentLen = 2000

// Path is the materialized ancestry of a comment: the ids of its
// ancestors from root to parent, stored as one "/"-joined text column.
// A root comment has an empty path; depth is the element count.
type Path []string

func (p Path) Value() (driver.Value, error) {
	return strings.Join(p, "/"), nil
}

func (p *Path) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case nil:
		*p = nil
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("comment: cannot scan %T into Path", src)
	}
	if s == "" {
		*p = nil
		return nil
	}
	*p = strings.Split(s, "/")
	return nil
}

func (p Path) String() string {
	return strings.Join(p, "/")
}

func (p Path) Depth() int {
	return len(p)
}

// ChildOf builds the path a direct reply carries: the parent's path
// extended with the parent's own id.
func ChildOf(parentPath Path, parentID string) Path {
	child := make(Path, 0, len(parentPath)+1)
	child = append(child, parentPath...)
	return append(child, parentID)
}

// Comment is one node of a post's discussion tree. AuthorName is a
// snapshot taken at creation time, so renames do not rewrite history.
type Comment struct {
	ID         string    `gorm:"column:id;primaryKey" json:"id"`
	PostID     string    `gorm:"column:post_id;not null;index" json:"post_id"`
	ParentID   *string   `gorm:"column:parent_id;index" json:"parent_id,omitempty"`
	AuthorID   int64     `gorm:"column:author_id;not null;index" json:"author_id"`
	AuthorName string    `gorm:"column:author_name" json:"author_name"`
	Content    string    `gorm:"column:content;type:text" json:"content"`
	Path       Path      `gorm:"column:path;type:text;index" json:"path"`
	LikeCount  int       `gorm:"column:like_count;default:0" json:"like_count"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Comment) TableName() string { return "comments" }

// Depth is the nesting level: 0 for a root comment.
func (c *Comment) Depth() int {
	return c.Path.Depth()
}
