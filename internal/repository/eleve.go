package repository

import (
	"context"
	"fmt"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository/dao"
)

var ErrEleveNotFound = dao.ErrEleveNotFound

// EleveFilter narrows student listings. AnneeInscrit/MoisInscrit keep only
// students enrolled for that month.
type EleveFilter struct {
	ClasseID     *uint
	Search       string
	Actif        *bool
	AnneeInscrit int
	MoisInscrit  int
}

type EleveDAO interface {
	Insert(ctx context.Context, eleve dao.Eleve) (dao.Eleve, error)
	FindByID(ctx context.Context, id uint) (dao.Eleve, error)
	List(ctx context.Context, filter dao.EleveFilter) ([]dao.Eleve, error)
	ListPourMarquage(ctx context.Context, annee, mois int) ([]dao.Eleve, error)
	Update(ctx context.Context, eleve dao.Eleve) (dao.Eleve, error)
	Delete(ctx context.Context, id uint) error
	CountActifs(ctx context.Context) (int64, error)
}

type EleveRepository struct {
	dao EleveDAO
}

func NewEleveRepository(dao EleveDAO) *EleveRepository {
	return &EleveRepository{
		dao: dao,
	}
}

func (r *EleveRepository) Create(ctx context.Context, eleve domain.Eleve) (domain.Eleve, error) {
	created, err := r.dao.Insert(ctx, eleveDomainToDao(eleve))
	if err != nil {
		return domain.Eleve{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return eleveDaoToDomain(created), nil
}

func (r *EleveRepository) FindByID(ctx context.Context, id uint) (domain.Eleve, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Eleve{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return eleveDaoToDomain(found), nil
}

func (r *EleveRepository) List(ctx context.Context, filter EleveFilter) ([]domain.Eleve, error) {
	found, err := r.dao.List(ctx, dao.EleveFilter{
		ClasseID:     filter.ClasseID,
		Search:       filter.Search,
		Actif:        filter.Actif,
		AnneeInscrit: filter.AnneeInscrit,
		MoisInscrit:  filter.MoisInscrit,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	return elevesDaoToDomain(found), nil
}

// ListPourMarquage returns the students eligible for attendance marking on a
// month: the enrolled ones when the month has enrollments, otherwise every
// active student.
func (r *EleveRepository) ListPourMarquage(ctx context.Context, annee, mois int) ([]domain.Eleve, error) {
	found, err := r.dao.ListPourMarquage(ctx, annee, mois)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListPourMarquage -> %w", err)
	}

	return elevesDaoToDomain(found), nil
}

func (r *EleveRepository) Update(ctx context.Context, eleve domain.Eleve) (domain.Eleve, error) {
	updated, err := r.dao.Update(ctx, eleveDomainToDao(eleve))
	if err != nil {
		return domain.Eleve{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return eleveDaoToDomain(updated), nil
}

func (r *EleveRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EleveRepository) CountActifs(ctx context.Context) (int64, error) {
	count, err := r.dao.CountActifs(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountActifs -> %w", err)
	}

	return count, nil
}

func eleveDomainToDao(e domain.Eleve) dao.Eleve {
	return dao.Eleve{
		ID:              e.ID,
		Prenom:          e.Prenom,
		Nom:             e.Nom,
		ClasseID:        e.ClasseID,
		DateInscription: e.DateInscription,
		Actif:           e.Actif,
		TelephoneParent: e.TelephoneParent,
		EmailParent:     e.EmailParent,
		Photo:           e.Photo,
		Notes:           e.Notes,
	}
}

func eleveDaoToDomain(e dao.Eleve) domain.Eleve {
	eleve := domain.Eleve{
		ID:              e.ID,
		Prenom:          e.Prenom,
		Nom:             e.Nom,
		ClasseID:        e.ClasseID,
		DateInscription: e.DateInscription,
		Actif:           e.Actif,
		TelephoneParent: e.TelephoneParent,
		EmailParent:     e.EmailParent,
		Photo:           e.Photo,
		Notes:           e.Notes,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
	if e.Classe != nil {
		classe := classeDaoToDomain(*e.Classe)
		eleve.Classe = &classe
	}

	return eleve
}

func elevesDaoToDomain(found []dao.Eleve) []domain.Eleve {
	eleves := make([]domain.Eleve, 0, len(found))
	for _, e := range found {
		eleves = append(eleves, eleveDaoToDomain(e))
	}

	return eleves
}
