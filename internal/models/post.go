package models

import (
	"time"
)

// MaxPostLength is the maximum number of characters in a post.
const MaxPostLength = 280

// Post is a short message authored by a user. Posts are immutable after
// creation and are removed only by cascade when their author is deleted.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Text     string `gorm:"size:280;not null" json:"text"`
	// CreatedAt drives feed ordering (newest first).
	CreatedAt time.Time `json:"created_at"`
}
