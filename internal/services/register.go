package services

import (
	"errors"
	"strings"

	"tasktrack/internal/models"

	"gorm.io/gorm"
)

var ErrDuplicateUsername = errors.New("username already exists")

type RegisterService interface {
	RegisterUser(db *gorm.DB, username, password string) (*models.User, error)
}

type RegisterServiceImpl struct {
	bcryptCost int
}

func NewRegisterService(bcryptCost int) *RegisterServiceImpl {
	return &RegisterServiceImpl{bcryptCost: bcryptCost}
}

func (s *RegisterServiceImpl) RegisterUser(db *gorm.DB, username, password string) (*models.User, error) {
	var existing models.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: username,
		Password: hashedPassword,
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		// A concurrent registration can slip in between the pre-check
		// and the insert; the unique index is the arbiter.
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "duplicate key value") // postgres
}
