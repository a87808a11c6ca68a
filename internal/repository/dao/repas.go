package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRepasExists   = errors.New("repas already exists for this student and date")
	ErrRepasNotFound = errors.New("repas not found")
)

type Repas struct {
	ID uint `gorm:"primaryKey"`

	EleveID uint  `gorm:"not null;uniqueIndex:idx_repas_eleve_date,priority:1"`
	Eleve   Eleve `gorm:"foreignKey:EleveID;constraint:OnDelete:CASCADE"`

	MenuID *uint `gorm:"index"`
	Menu   *Menu `gorm:"foreignKey:MenuID;constraint:OnDelete:SET NULL"`

	Date time.Time `gorm:"type:date;not null;uniqueIndex:idx_repas_eleve_date,priority:2;index"`
	Note string    `gorm:"type:text"`

	CreatedAt   time.Time `gorm:"not null"`
	CreatedByID *uint
	CreatedBy   *User `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
}

func (Repas) TableName() string {
	return "repas"
}

// RepasFilter narrows meal listings.
type RepasFilter struct {
	Date     *time.Time
	DateFrom *time.Time
	DateTo   *time.Time
	EleveID  *uint
}

// RepasParJourRow is the per-day aggregate used by statistics.
type RepasParJourRow struct {
	Date  time.Time
	Count int
}

// RepasParEleveRow is the per-student aggregate used by statistics.
type RepasParEleveRow struct {
	EleveID uint
	Nom     string
	Prenom  string
	Count   int
}

type RepasDAO struct {
	db *gorm.DB
}

func NewRepasDAO(db *gorm.DB) *RepasDAO {
	return &RepasDAO{
		db: db,
	}
}

func (d *RepasDAO) Insert(ctx context.Context, repas Repas) (Repas, error) {
	result := d.db.WithContext(ctx).Create(&repas)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Repas{}, ErrRepasExists
		}
		return Repas{}, result.Error
	}

	return d.FindByID(ctx, repas.ID)
}

// InsertIfAbsent records the meal unless one already exists for the same
// (eleve, date) pair. The duplicate check and the insert are a single atomic
// statement (ON CONFLICT DO NOTHING), so concurrent submissions for the same
// pair cannot surface a constraint violation. Returns true when a row was
// created.
func (d *RepasDAO) InsertIfAbsent(ctx context.Context, repas Repas) (bool, error) {
	result := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "eleve_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(&repas)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (d *RepasDAO) FindByID(ctx context.Context, id uint) (Repas, error) {
	var repas Repas

	result := d.db.WithContext(ctx).
		Preload("Eleve").Preload("Eleve.Classe").Preload("Menu").
		First(&repas, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Repas{}, ErrRepasNotFound
		}

		return Repas{}, result.Error
	}

	return repas, nil
}

func (d *RepasDAO) List(ctx context.Context, filter RepasFilter) ([]Repas, error) {
	query := d.db.WithContext(ctx).Model(&Repas{}).
		Preload("Eleve").Preload("Eleve.Classe").Preload("Menu")

	if filter.Date != nil {
		query = query.Where("date = ?", *filter.Date)
	} else {
		if filter.DateFrom != nil {
			query = query.Where("date >= ?", *filter.DateFrom)
		}
		if filter.DateTo != nil {
			query = query.Where("date <= ?", *filter.DateTo)
		}
	}
	if filter.EleveID != nil {
		query = query.Where("eleve_id = ?", *filter.EleveID)
	}

	var repas []Repas
	if err := query.Order("date DESC, eleve_id").Find(&repas).Error; err != nil {
		return nil, err
	}

	return repas, nil
}

func (d *RepasDAO) Update(ctx context.Context, repas Repas) (Repas, error) {
	result := d.db.WithContext(ctx).Model(&Repas{}).
		Where("id = ?", repas.ID).
		Updates(map[string]any{
			"eleve_id": repas.EleveID,
			"menu_id":  repas.MenuID,
			"date":     repas.Date,
			"note":     repas.Note,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Repas{}, ErrRepasExists
		}
		return Repas{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Repas{}, ErrRepasNotFound
	}

	return d.FindByID(ctx, repas.ID)
}

func (d *RepasDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Repas{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRepasNotFound
	}

	return nil
}

func (d *RepasDAO) Count(ctx context.Context, filter RepasFilter) (int64, error) {
	query := d.db.WithContext(ctx).Model(&Repas{})
	if filter.Date != nil {
		query = query.Where("date = ?", *filter.Date)
	} else {
		if filter.DateFrom != nil {
			query = query.Where("date >= ?", *filter.DateFrom)
		}
		if filter.DateTo != nil {
			query = query.Where("date <= ?", *filter.DateTo)
		}
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (d *RepasDAO) CountDistinctEleves(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&Repas{}).
		Where("date >= ? AND date <= ?", from, to).
		Distinct("eleve_id").
		Count(&count).Error
	return count, err
}

func (d *RepasDAO) CountDistinctDates(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&Repas{}).
		Where("date >= ? AND date <= ?", from, to).
		Distinct("date").
		Count(&count).Error
	return count, err
}

func (d *RepasDAO) CountParJour(ctx context.Context, from, to time.Time) ([]RepasParJourRow, error) {
	var rows []RepasParJourRow
	err := d.db.WithContext(ctx).Model(&Repas{}).
		Select("date, COUNT(*) AS count").
		Where("date >= ? AND date <= ?", from, to).
		Group("date").
		Order("date").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// CountParEleve aggregates per student, busiest first. A non-positive limit
// returns every student.
func (d *RepasDAO) CountParEleve(ctx context.Context, from, to time.Time, limit int) ([]RepasParEleveRow, error) {
	query := d.db.WithContext(ctx).Model(&Repas{}).
		Select("repas.eleve_id AS eleve_id, eleves.nom AS nom, eleves.prenom AS prenom, COUNT(*) AS count").
		Joins("JOIN eleves ON eleves.id = repas.eleve_id").
		Where("repas.date >= ? AND repas.date <= ?", from, to).
		Group("repas.eleve_id, eleves.nom, eleves.prenom").
		Order("count DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []RepasParEleveRow
	err := query.Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// EleveIDsPourDate returns the ids of students already marked on a date.
func (d *RepasDAO) EleveIDsPourDate(ctx context.Context, date time.Time) ([]uint, error) {
	var ids []uint
	err := d.db.WithContext(ctx).Model(&Repas{}).
		Where("date = ?", date).
		Pluck("eleve_id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}
