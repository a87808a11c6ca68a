package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrMenuExists   = errors.New("menu already exists for this date")
	ErrMenuNotFound = errors.New("menu not found")
)

type Menu struct {
	ID uint `gorm:"primaryKey"`

	Date        time.Time `gorm:"type:date;uniqueIndex;not null"`
	JourSemaine string    `gorm:"size:10"`

	PlatPrincipal  string `gorm:"size:200;not null"`
	Accompagnement string `gorm:"size:200"`
	Dessert        string `gorm:"size:200"`
	Image          string `gorm:"size:255"`
	Disponible     bool   `gorm:"not null;default:true;index"`
	Notes          string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// MenuFilter narrows menu listings to a date range or a dish search.
type MenuFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Search   string
}

type MenuDAO struct {
	db *gorm.DB
}

func NewMenuDAO(db *gorm.DB) *MenuDAO {
	return &MenuDAO{
		db: db,
	}
}

func (d *MenuDAO) Insert(ctx context.Context, menu Menu) (Menu, error) {
	result := d.db.WithContext(ctx).Create(&menu)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Menu{}, ErrMenuExists
		}
		return Menu{}, result.Error
	}

	return menu, nil
}

func (d *MenuDAO) FindByID(ctx context.Context, id uint) (Menu, error) {
	var menu Menu

	result := d.db.WithContext(ctx).First(&menu, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Menu{}, ErrMenuNotFound
		}

		return Menu{}, result.Error
	}

	return menu, nil
}

func (d *MenuDAO) FindByDate(ctx context.Context, date time.Time) (Menu, error) {
	var menu Menu

	result := d.db.WithContext(ctx).First(&menu, "date = ?", date)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Menu{}, ErrMenuNotFound
		}

		return Menu{}, result.Error
	}

	return menu, nil
}

func (d *MenuDAO) List(ctx context.Context, filter MenuFilter) ([]Menu, error) {
	query := d.db.WithContext(ctx).Model(&Menu{})

	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", *filter.DateTo)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("plat_principal LIKE ? OR accompagnement LIKE ? OR dessert LIKE ?", like, like, like)
	}

	var menus []Menu
	if err := query.Order("date DESC").Find(&menus).Error; err != nil {
		return nil, err
	}

	return menus, nil
}

func (d *MenuDAO) ListByRange(ctx context.Context, from, to time.Time) ([]Menu, error) {
	var menus []Menu
	err := d.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date").
		Find(&menus).Error
	if err != nil {
		return nil, err
	}

	return menus, nil
}

func (d *MenuDAO) Update(ctx context.Context, menu Menu) (Menu, error) {
	result := d.db.WithContext(ctx).Model(&Menu{}).
		Where("id = ?", menu.ID).
		Updates(map[string]any{
			"date":           menu.Date,
			"jour_semaine":   menu.JourSemaine,
			"plat_principal": menu.PlatPrincipal,
			"accompagnement": menu.Accompagnement,
			"dessert":        menu.Dessert,
			"image":          menu.Image,
			"disponible":     menu.Disponible,
			"notes":          menu.Notes,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Menu{}, ErrMenuExists
		}
		return Menu{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Menu{}, ErrMenuNotFound
	}

	return d.FindByID(ctx, menu.ID)
}

// Delete removes the menu. Meal records referencing it survive with a nil
// menu reference (ON DELETE SET NULL).
func (d *MenuDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Menu{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMenuNotFound
	}

	return nil
}
