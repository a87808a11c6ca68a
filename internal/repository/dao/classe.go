package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrClasseExists   = errors.New("classe already exists")
	ErrClasseNotFound = errors.New("classe not found")
)

type Classe struct {
	ID uint `gorm:"primaryKey"`

	Nom    string `gorm:"size:100;uniqueIndex;not null"`
	Niveau string `gorm:"size:50"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ClasseDAO struct {
	db *gorm.DB
}

func NewClasseDAO(db *gorm.DB) *ClasseDAO {
	return &ClasseDAO{
		db: db,
	}
}

func (d *ClasseDAO) Insert(ctx context.Context, classe Classe) (Classe, error) {
	result := d.db.WithContext(ctx).Create(&classe)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Classe{}, ErrClasseExists
		}
		return Classe{}, result.Error
	}

	return classe, nil
}

func (d *ClasseDAO) FindByID(ctx context.Context, id uint) (Classe, error) {
	var classe Classe

	result := d.db.WithContext(ctx).First(&classe, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Classe{}, ErrClasseNotFound
		}

		return Classe{}, result.Error
	}

	return classe, nil
}

func (d *ClasseDAO) List(ctx context.Context) ([]Classe, error) {
	var classes []Classe
	if err := d.db.WithContext(ctx).Order("nom").Find(&classes).Error; err != nil {
		return nil, err
	}

	return classes, nil
}

func (d *ClasseDAO) Update(ctx context.Context, classe Classe) (Classe, error) {
	result := d.db.WithContext(ctx).Model(&Classe{}).
		Where("id = ?", classe.ID).
		Updates(map[string]any{"nom": classe.Nom, "niveau": classe.Niveau})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Classe{}, ErrClasseExists
		}
		return Classe{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Classe{}, ErrClasseNotFound
	}

	return d.FindByID(ctx, classe.ID)
}

// Delete removes the class. Students keep existing with a nil class
// reference, enforced by the FK's ON DELETE SET NULL.
func (d *ClasseDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Classe{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrClasseNotFound
	}

	return nil
}
