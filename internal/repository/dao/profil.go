package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrProfilNotFound = errors.New("profil not found")

type ProfilPrestataire struct {
	ID uint `gorm:"primaryKey"`

	UserID uint `gorm:"uniqueIndex;not null"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	Role       string `gorm:"size:20;not null;default:'PRESTATAIRE'"`
	Telephone  string `gorm:"size:20"`
	Entreprise string `gorm:"size:200"`
	Actif      bool   `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ProfilDAO struct {
	db *gorm.DB
}

func NewProfilDAO(db *gorm.DB) *ProfilDAO {
	return &ProfilDAO{
		db: db,
	}
}

func (d *ProfilDAO) FindByUserID(ctx context.Context, userID uint) (ProfilPrestataire, error) {
	var profil ProfilPrestataire

	result := d.db.WithContext(ctx).Preload("User").First(&profil, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ProfilPrestataire{}, ErrProfilNotFound
		}

		return ProfilPrestataire{}, result.Error
	}

	return profil, nil
}

func (d *ProfilDAO) FindByID(ctx context.Context, id uint) (ProfilPrestataire, error) {
	var profil ProfilPrestataire

	result := d.db.WithContext(ctx).Preload("User").First(&profil, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ProfilPrestataire{}, ErrProfilNotFound
		}

		return ProfilPrestataire{}, result.Error
	}

	return profil, nil
}

func (d *ProfilDAO) List(ctx context.Context, role string, actif *bool) ([]ProfilPrestataire, error) {
	query := d.db.WithContext(ctx).Preload("User").Order("id")
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if actif != nil {
		query = query.Where("actif = ?", *actif)
	}

	var profils []ProfilPrestataire
	if err := query.Find(&profils).Error; err != nil {
		return nil, err
	}

	return profils, nil
}

func (d *ProfilDAO) Update(ctx context.Context, profil ProfilPrestataire) (ProfilPrestataire, error) {
	result := d.db.WithContext(ctx).Model(&ProfilPrestataire{}).
		Where("id = ?", profil.ID).
		Updates(map[string]any{
			"role":       profil.Role,
			"telephone":  profil.Telephone,
			"entreprise": profil.Entreprise,
			"actif":      profil.Actif,
		})
	if result.Error != nil {
		return ProfilPrestataire{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ProfilPrestataire{}, ErrProfilNotFound
	}

	return d.FindByID(ctx, profil.ID)
}

// Delete removes the profile together with its user identity.
func (d *ProfilDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profil ProfilPrestataire
		if err := tx.First(&profil, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProfilNotFound
			}
			return err
		}
		if err := tx.Delete(&ProfilPrestataire{}, id).Error; err != nil {
			return err
		}
		return tx.Delete(&User{}, profil.UserID).Error
	})
}
