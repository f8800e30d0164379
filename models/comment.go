package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is an append-only reply to an article. UserID is nil when the
// commenter was anonymous; AuthorName always carries a display name.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ArticleID  uint      `gorm:"index;not null" json:"article_id"`
	UserID     *uint     `gorm:"index" json:"user_id,omitempty"`
	AuthorName string    `gorm:"size:100;not null" json:"author_name"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	return nil
}
