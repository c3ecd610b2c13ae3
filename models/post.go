package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a published blog entry. AuthorID and AuthorName are a snapshot of
// the identity that created the post; renaming a user later does not touch
// existing posts. Rows imported from the legacy free-text-author schema keep
// their text in AuthorName and carry an empty AuthorID.
type Post struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Snippet    string    `gorm:"size:512;not null" json:"snippet"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	AuthorID   string    `gorm:"size:36;index" json:"author_id"`
	AuthorName string    `gorm:"size:64" json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeCreate assigns the identifier and the creation timestamp. CreatedAt
// is set exactly once here and is never touched by updates.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	return nil
}

// BeforeUpdate refreshes the UpdatedAt timestamp.
func (p *Post) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = time.Now()
	return nil
}
