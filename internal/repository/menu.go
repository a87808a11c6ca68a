package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository/dao"
)

var (
	ErrMenuExists   = dao.ErrMenuExists
	ErrMenuNotFound = dao.ErrMenuNotFound
)

// MenuFilter narrows menu listings.
type MenuFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Search   string
}

type MenuDAO interface {
	Insert(ctx context.Context, menu dao.Menu) (dao.Menu, error)
	FindByID(ctx context.Context, id uint) (dao.Menu, error)
	FindByDate(ctx context.Context, date time.Time) (dao.Menu, error)
	List(ctx context.Context, filter dao.MenuFilter) ([]dao.Menu, error)
	ListByRange(ctx context.Context, from, to time.Time) ([]dao.Menu, error)
	Update(ctx context.Context, menu dao.Menu) (dao.Menu, error)
	Delete(ctx context.Context, id uint) error
}

type MenuRepository struct {
	dao MenuDAO
}

func NewMenuRepository(dao MenuDAO) *MenuRepository {
	return &MenuRepository{
		dao: dao,
	}
}

func (r *MenuRepository) Create(ctx context.Context, menu domain.Menu) (domain.Menu, error) {
	created, err := r.dao.Insert(ctx, menuDomainToDao(menu))
	if err != nil {
		return domain.Menu{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return menuDaoToDomain(created), nil
}

func (r *MenuRepository) FindByID(ctx context.Context, id uint) (domain.Menu, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Menu{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return menuDaoToDomain(found), nil
}

func (r *MenuRepository) FindByDate(ctx context.Context, date time.Time) (domain.Menu, error) {
	found, err := r.dao.FindByDate(ctx, date)
	if err != nil {
		return domain.Menu{}, fmt.Errorf("r.dao.FindByDate -> %w", err)
	}

	return menuDaoToDomain(found), nil
}

func (r *MenuRepository) List(ctx context.Context, filter MenuFilter) ([]domain.Menu, error) {
	found, err := r.dao.List(ctx, dao.MenuFilter{
		DateFrom: filter.DateFrom,
		DateTo:   filter.DateTo,
		Search:   filter.Search,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	return menusDaoToDomain(found), nil
}

func (r *MenuRepository) ListByRange(ctx context.Context, from, to time.Time) ([]domain.Menu, error) {
	found, err := r.dao.ListByRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByRange -> %w", err)
	}

	return menusDaoToDomain(found), nil
}

func (r *MenuRepository) Update(ctx context.Context, menu domain.Menu) (domain.Menu, error) {
	updated, err := r.dao.Update(ctx, menuDomainToDao(menu))
	if err != nil {
		return domain.Menu{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return menuDaoToDomain(updated), nil
}

func (r *MenuRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func menuDomainToDao(m domain.Menu) dao.Menu {
	return dao.Menu{
		ID:             m.ID,
		Date:           m.Date,
		JourSemaine:    m.JourSemaine,
		PlatPrincipal:  m.PlatPrincipal,
		Accompagnement: m.Accompagnement,
		Dessert:        m.Dessert,
		Image:          m.Image,
		Disponible:     m.Disponible,
		Notes:          m.Notes,
	}
}

func menuDaoToDomain(m dao.Menu) domain.Menu {
	return domain.Menu{
		ID:             m.ID,
		Date:           m.Date,
		JourSemaine:    m.JourSemaine,
		PlatPrincipal:  m.PlatPrincipal,
		Accompagnement: m.Accompagnement,
		Dessert:        m.Dessert,
		Image:          m.Image,
		Disponible:     m.Disponible,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func menusDaoToDomain(found []dao.Menu) []domain.Menu {
	menus := make([]domain.Menu, 0, len(found))
	for _, m := range found {
		menus = append(menus, menuDaoToDomain(m))
	}

	return menus
}
