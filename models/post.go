package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a single authored text entry, optionally grouped and illustrated.
// PubDate is assigned by the server on creation and never changes afterwards.
// GroupID is nullable: deleting a group detaches its posts instead of
// cascading the delete.
type Post struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	PubDate  time.Time `gorm:"index;not null" json:"pub_date"`
	AuthorID uint      `gorm:"index;not null" json:"author_id"`
	GroupID  *uint     `gorm:"index" json:"group_id"`
	Image    string    `gorm:"size:512" json:"image"`
	Author   User      `json:"author"`
	Group    *Group    `json:"group,omitempty"`
	Comments []Comment `json:"-"`
}

// BeforeCreate assigns the publication timestamp server-side.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.PubDate.IsZero() {
		p.PubDate = time.Now()
	}
	return nil
}
