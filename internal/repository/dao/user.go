package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Username string `gorm:"uniqueIndex;not null"`
	Email    string
	Password string `gorm:"not null"`
	Prenom   string
	Nom      string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

// InsertWithProfil creates the user identity and its canteen profile in one
// transaction. A login without a profile must never exist.
func (d *UserDAO) InsertWithProfil(ctx context.Context, user User, profil ProfilPrestataire) (User, ProfilPrestataire, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrUserExists
			}
			return err
		}
		profil.UserID = user.ID
		return tx.Create(&profil).Error
	})
	if err != nil {
		return User{}, ProfilPrestataire{}, err
	}

	return user, profil, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByUsername(ctx context.Context, username string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return d.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("password", hash).Error
}
