package service

import (
	"context"
	"fmt"
	"time"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository"
)

var (
	ErrMenuExists   = repository.ErrMenuExists
	ErrMenuNotFound = repository.ErrMenuNotFound
)

type MenuRepository interface {
	Create(ctx context.Context, menu domain.Menu) (domain.Menu, error)
	FindByID(ctx context.Context, id uint) (domain.Menu, error)
	FindByDate(ctx context.Context, date time.Time) (domain.Menu, error)
	List(ctx context.Context, filter repository.MenuFilter) ([]domain.Menu, error)
	ListByRange(ctx context.Context, from, to time.Time) ([]domain.Menu, error)
	Update(ctx context.Context, menu domain.Menu) (domain.Menu, error)
	Delete(ctx context.Context, id uint) error
}

// CalendrierJour is one cell of the monthly calendar grid.
type CalendrierJour struct {
	Date       time.Time    `json:"date"`
	DansLeMois bool         `json:"dans_le_mois"`
	Menu       *domain.Menu `json:"menu,omitempty"`
}

type MenuService struct {
	repo MenuRepository
}

func NewMenuService(repo MenuRepository) *MenuService {
	return &MenuService{
		repo: repo,
	}
}

func (s *MenuService) Create(ctx context.Context, menu domain.Menu) (domain.Menu, error) {
	menu.Date = domain.DateOnly(menu.Date)
	menu.FillJourSemaine()

	created, err := s.repo.Create(ctx, menu)
	if err != nil {
		return domain.Menu{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *MenuService) Get(ctx context.Context, id uint) (domain.Menu, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Menu{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return found, nil
}

// Aujourdhui returns today's menu, or ErrMenuNotFound when none is defined.
func (s *MenuService) Aujourdhui(ctx context.Context) (domain.Menu, error) {
	return s.ParDate(ctx, time.Now())
}

func (s *MenuService) ParDate(ctx context.Context, date time.Time) (domain.Menu, error) {
	found, err := s.repo.FindByDate(ctx, domain.DateOnly(date))
	if err != nil {
		return domain.Menu{}, fmt.Errorf("s.repo.FindByDate -> %w", err)
	}

	return found, nil
}

func (s *MenuService) List(ctx context.Context, filter repository.MenuFilter) ([]domain.Menu, error) {
	menus, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return menus, nil
}

// Mois lists the menus of one calendar month, oldest first.
func (s *MenuService) Mois(ctx context.Context, annee, mois int) ([]domain.Menu, error) {
	from, to := moisBornes(annee, mois)

	menus, err := s.repo.ListByRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByRange -> %w", err)
	}

	return menus, nil
}

// Calendrier renders a 6-week grid for a month, Monday first. Cells outside
// the month carry DansLeMois false, cells on a menu day carry the menu.
func (s *MenuService) Calendrier(ctx context.Context, annee, mois int) ([]CalendrierJour, error) {
	first := time.Date(annee, time.Month(mois), 1, 0, 0, 0, 0, time.UTC)

	// Walk back to the Monday opening the grid.
	offset := (int(first.Weekday()) + 6) % 7
	start := first.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 41)

	menus, err := s.repo.ListByRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByRange -> %w", err)
	}

	parDate := make(map[string]domain.Menu, len(menus))
	for _, m := range menus {
		parDate[m.Date.Format("2006-01-02")] = m
	}

	grid := make([]CalendrierJour, 0, 42)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		cell := CalendrierJour{
			Date:       day,
			DansLeMois: day.Month() == time.Month(mois) && day.Year() == annee,
		}
		if m, ok := parDate[day.Format("2006-01-02")]; ok {
			menu := m
			cell.Menu = &menu
		}
		grid = append(grid, cell)
	}

	return grid, nil
}

func (s *MenuService) Update(ctx context.Context, menu domain.Menu) (domain.Menu, error) {
	menu.Date = domain.DateOnly(menu.Date)
	menu.FillJourSemaine()

	updated, err := s.repo.Update(ctx, menu)
	if err != nil {
		return domain.Menu{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// Delete removes the menu. Attendance recorded against it survives without a
// menu reference.
func (s *MenuService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// moisBornes returns the first and last day of a month, dates only.
func moisBornes(annee, mois int) (time.Time, time.Time) {
	from := time.Date(annee, time.Month(mois), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return from, to
}
