package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a reply to a post. Comments are immutable once created.
type Comment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	PostID   uint      `gorm:"index;not null" json:"post_id"`
	AuthorID uint      `gorm:"index;not null" json:"author_id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	Created  time.Time `gorm:"not null" json:"created"`
	Author   User      `json:"author"`
}

// BeforeCreate assigns the creation timestamp server-side.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.Created.IsZero() {
		c.Created = time.Now()
	}
	return nil
}
