package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/inkpress/inkpress/models"
)

// GormUserStore is the MySQL-backed UserStore.
type GormUserStore struct {
	db *gorm.DB
}

// NewGormUserStore creates a GormUserStore.
func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

// Create persists a new user. The username must not exist yet; the unique
// index backs up the pre-check against a racing registration.
func (s *GormUserStore) Create(user *models.User) error {
	var existing models.User
	if err := s.db.Where("username = ?", user.Username).First(&existing).Error; err == nil {
		return ErrDuplicateUsername
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := s.db.Create(user).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

// FindByUsername looks a user up by exact username.
func (s *GormUserStore) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func isDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// MySQL error 1062 surfaces as a plain message through the driver
	return strings.Contains(err.Error(), "Duplicate entry")
}
