package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrInscriptionExists   = errors.New("inscription already exists for this student and month")
	ErrInscriptionNotFound = errors.New("inscription not found")
)

type InscriptionMensuelle struct {
	ID uint `gorm:"primaryKey"`

	EleveID uint  `gorm:"not null;uniqueIndex:idx_inscription_eleve_mois,priority:1"`
	Eleve   Eleve `gorm:"foreignKey:EleveID;constraint:OnDelete:CASCADE"`

	Annee   int  `gorm:"not null;uniqueIndex:idx_inscription_eleve_mois,priority:2;index:idx_inscription_mois,priority:1"`
	Mois    int  `gorm:"not null;uniqueIndex:idx_inscription_eleve_mois,priority:3;index:idx_inscription_mois,priority:2"`
	Inscrit bool `gorm:"not null;default:true"`

	Notes string `gorm:"type:text"`

	CreatedAt   time.Time `gorm:"not null"`
	CreatedByID *uint
	CreatedBy   *User `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
}

// InscriptionFilter narrows enrollment listings.
type InscriptionFilter struct {
	Annee   int
	Mois    int
	EleveID *uint
}

type InscriptionDAO struct {
	db *gorm.DB
}

func NewInscriptionDAO(db *gorm.DB) *InscriptionDAO {
	return &InscriptionDAO{
		db: db,
	}
}

func (d *InscriptionDAO) Insert(ctx context.Context, inscription InscriptionMensuelle) (InscriptionMensuelle, error) {
	result := d.db.WithContext(ctx).Create(&inscription)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return InscriptionMensuelle{}, ErrInscriptionExists
		}
		return InscriptionMensuelle{}, result.Error
	}

	return d.FindByID(ctx, inscription.ID)
}

func (d *InscriptionDAO) FindByID(ctx context.Context, id uint) (InscriptionMensuelle, error) {
	var inscription InscriptionMensuelle

	result := d.db.WithContext(ctx).
		Preload("Eleve").Preload("Eleve.Classe").
		First(&inscription, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return InscriptionMensuelle{}, ErrInscriptionNotFound
		}

		return InscriptionMensuelle{}, result.Error
	}

	return inscription, nil
}

func (d *InscriptionDAO) List(ctx context.Context, filter InscriptionFilter) ([]InscriptionMensuelle, error) {
	query := d.db.WithContext(ctx).Model(&InscriptionMensuelle{}).
		Preload("Eleve").Preload("Eleve.Classe")

	if filter.Annee != 0 {
		query = query.Where("annee = ?", filter.Annee)
	}
	if filter.Mois != 0 {
		query = query.Where("mois = ?", filter.Mois)
	}
	if filter.EleveID != nil {
		query = query.Where("eleve_id = ?", *filter.EleveID)
	}

	var inscriptions []InscriptionMensuelle
	if err := query.Order("annee DESC, mois DESC, eleve_id").Find(&inscriptions).Error; err != nil {
		return nil, err
	}

	return inscriptions, nil
}

func (d *InscriptionDAO) Update(ctx context.Context, inscription InscriptionMensuelle) (InscriptionMensuelle, error) {
	result := d.db.WithContext(ctx).Model(&InscriptionMensuelle{}).
		Where("id = ?", inscription.ID).
		Updates(map[string]any{
			"inscrit": inscription.Inscrit,
			"notes":   inscription.Notes,
		})
	if result.Error != nil {
		return InscriptionMensuelle{}, result.Error
	}
	if result.RowsAffected == 0 {
		return InscriptionMensuelle{}, ErrInscriptionNotFound
	}

	return d.FindByID(ctx, inscription.ID)
}

func (d *InscriptionDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&InscriptionMensuelle{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInscriptionNotFound
	}

	return nil
}

func (d *InscriptionDAO) CountInscrits(ctx context.Context, annee, mois int) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&InscriptionMensuelle{}).
		Where("annee = ? AND mois = ? AND inscrit = ?", annee, mois, true).
		Count(&count).Error
	return count, err
}
