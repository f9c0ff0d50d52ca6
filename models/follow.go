package models

import "time"

// Follow is a directed edge meaning "user sees author's posts in their feed".
// The (user, author) pair is unique and a user never follows themselves;
// both invariants are enforced by the follow handler before creation.
type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null;uniqueIndex:idx_user_author" json:"user_id"`
	AuthorID  uint      `gorm:"index;not null;uniqueIndex:idx_user_author" json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}
