package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/inkpress/inkpress/models"
)

// GormPostStore is the MySQL-backed PostStore.
type GormPostStore struct {
	db *gorm.DB
}

// NewGormPostStore creates a GormPostStore.
func NewGormPostStore(db *gorm.DB) *GormPostStore {
	return &GormPostStore{db: db}
}

// Create persists a new post after checking the required fields. The ID and
// CreatedAt are assigned by the model's BeforeCreate hook.
func (s *GormPostStore) Create(post *models.Post) error {
	if err := ValidatePostFields(PostFields{Title: post.Title, Snippet: post.Snippet, Body: post.Body}); err != nil {
		return err
	}
	return s.db.Create(post).Error
}

// Get loads one post by id. Malformed ids simply match nothing.
func (s *GormPostStore) Get(id string) (*models.Post, error) {
	var post models.Post
	if err := s.db.Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ListAll returns every post, newest first. Full scan; the site has no
// pagination.
func (s *GormPostStore) ListAll() ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Update replaces the mutable fields of a post. The author snapshot and
// CreatedAt stay untouched.
func (s *GormPostStore) Update(id string, fields PostFields) error {
	if err := ValidatePostFields(fields); err != nil {
		return err
	}
	res := s.db.Model(&models.Post{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title":      fields.Title,
		"snippet":    fields.Snippet,
		"body":       fields.Body,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a post. Unknown ids are treated as already deleted.
func (s *GormPostStore) Delete(id string) error {
	return s.db.Where("id = ?", id).Delete(&models.Post{}).Error
}
