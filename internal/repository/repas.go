package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository/dao"
)

var (
	ErrRepasExists   = dao.ErrRepasExists
	ErrRepasNotFound = dao.ErrRepasNotFound
)

// RepasFilter narrows meal listings.
type RepasFilter struct {
	Date     *time.Time
	DateFrom *time.Time
	DateTo   *time.Time
	EleveID  *uint
}

type RepasDAO interface {
	Insert(ctx context.Context, repas dao.Repas) (dao.Repas, error)
	InsertIfAbsent(ctx context.Context, repas dao.Repas) (bool, error)
	FindByID(ctx context.Context, id uint) (dao.Repas, error)
	List(ctx context.Context, filter dao.RepasFilter) ([]dao.Repas, error)
	Update(ctx context.Context, repas dao.Repas) (dao.Repas, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, filter dao.RepasFilter) (int64, error)
	CountDistinctEleves(ctx context.Context, from, to time.Time) (int64, error)
	CountDistinctDates(ctx context.Context, from, to time.Time) (int64, error)
	CountParJour(ctx context.Context, from, to time.Time) ([]dao.RepasParJourRow, error)
	CountParEleve(ctx context.Context, from, to time.Time, limit int) ([]dao.RepasParEleveRow, error)
	EleveIDsPourDate(ctx context.Context, date time.Time) ([]uint, error)
}

type RepasRepository struct {
	dao RepasDAO
}

func NewRepasRepository(dao RepasDAO) *RepasRepository {
	return &RepasRepository{
		dao: dao,
	}
}

func (r *RepasRepository) Create(ctx context.Context, repas domain.Repas) (domain.Repas, error) {
	created, err := r.dao.Insert(ctx, repasDomainToDao(repas))
	if err != nil {
		return domain.Repas{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return repasDaoToDomain(created), nil
}

// CreateIfAbsent records the meal unless the student is already marked for
// the date. Returns true when a new record was created.
func (r *RepasRepository) CreateIfAbsent(ctx context.Context, repas domain.Repas) (bool, error) {
	created, err := r.dao.InsertIfAbsent(ctx, repasDomainToDao(repas))
	if err != nil {
		return false, fmt.Errorf("r.dao.InsertIfAbsent -> %w", err)
	}

	return created, nil
}

func (r *RepasRepository) FindByID(ctx context.Context, id uint) (domain.Repas, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Repas{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return repasDaoToDomain(found), nil
}

func (r *RepasRepository) List(ctx context.Context, filter RepasFilter) ([]domain.Repas, error) {
	found, err := r.dao.List(ctx, dao.RepasFilter{
		Date:     filter.Date,
		DateFrom: filter.DateFrom,
		DateTo:   filter.DateTo,
		EleveID:  filter.EleveID,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	repas := make([]domain.Repas, 0, len(found))
	for _, rp := range found {
		repas = append(repas, repasDaoToDomain(rp))
	}

	return repas, nil
}

func (r *RepasRepository) Update(ctx context.Context, repas domain.Repas) (domain.Repas, error) {
	updated, err := r.dao.Update(ctx, repasDomainToDao(repas))
	if err != nil {
		return domain.Repas{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return repasDaoToDomain(updated), nil
}

func (r *RepasRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *RepasRepository) Count(ctx context.Context, filter RepasFilter) (int64, error) {
	count, err := r.dao.Count(ctx, dao.RepasFilter{
		Date:     filter.Date,
		DateFrom: filter.DateFrom,
		DateTo:   filter.DateTo,
		EleveID:  filter.EleveID,
	})
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return count, nil
}

func (r *RepasRepository) CountDistinctEleves(ctx context.Context, from, to time.Time) (int64, error) {
	count, err := r.dao.CountDistinctEleves(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountDistinctEleves -> %w", err)
	}

	return count, nil
}

func (r *RepasRepository) CountDistinctDates(ctx context.Context, from, to time.Time) (int64, error) {
	count, err := r.dao.CountDistinctDates(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountDistinctDates -> %w", err)
	}

	return count, nil
}

func (r *RepasRepository) CountParJour(ctx context.Context, from, to time.Time) ([]domain.RepasParJour, error) {
	rows, err := r.dao.CountParJour(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountParJour -> %w", err)
	}

	parJour := make([]domain.RepasParJour, 0, len(rows))
	for _, row := range rows {
		parJour = append(parJour, domain.RepasParJour{
			Date:  row.Date,
			Count: row.Count,
		})
	}

	return parJour, nil
}

func (r *RepasRepository) CountParEleve(ctx context.Context, from, to time.Time, limit int) ([]domain.RepasParEleve, error) {
	rows, err := r.dao.CountParEleve(ctx, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountParEleve -> %w", err)
	}

	parEleve := make([]domain.RepasParEleve, 0, len(rows))
	for _, row := range rows {
		parEleve = append(parEleve, domain.RepasParEleve{
			EleveID: row.EleveID,
			Nom:     row.Nom,
			Prenom:  row.Prenom,
			Count:   row.Count,
		})
	}

	return parEleve, nil
}

// EleveIDsPourDate returns the ids of students already marked on a date.
func (r *RepasRepository) EleveIDsPourDate(ctx context.Context, date time.Time) ([]uint, error) {
	ids, err := r.dao.EleveIDsPourDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("r.dao.EleveIDsPourDate -> %w", err)
	}

	return ids, nil
}

func repasDomainToDao(rp domain.Repas) dao.Repas {
	return dao.Repas{
		ID:          rp.ID,
		EleveID:     rp.EleveID,
		MenuID:      rp.MenuID,
		Date:        rp.Date,
		Note:        rp.Note,
		CreatedByID: rp.CreatedByID,
	}
}

func repasDaoToDomain(rp dao.Repas) domain.Repas {
	repas := domain.Repas{
		ID:          rp.ID,
		EleveID:     rp.EleveID,
		MenuID:      rp.MenuID,
		Date:        rp.Date,
		Note:        rp.Note,
		CreatedAt:   rp.CreatedAt,
		CreatedByID: rp.CreatedByID,
	}
	if rp.Eleve.ID != 0 {
		eleve := eleveDaoToDomain(rp.Eleve)
		repas.Eleve = &eleve
	}
	if rp.Menu != nil {
		menu := menuDaoToDomain(*rp.Menu)
		repas.Menu = &menu
	}

	return repas
}
