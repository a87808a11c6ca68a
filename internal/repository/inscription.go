package repository

import (
	"context"
	"fmt"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository/dao"
)

var (
	ErrInscriptionExists   = dao.ErrInscriptionExists
	ErrInscriptionNotFound = dao.ErrInscriptionNotFound
)

// InscriptionFilter narrows enrollment listings.
type InscriptionFilter struct {
	Annee   int
	Mois    int
	EleveID *uint
}

type InscriptionDAO interface {
	Insert(ctx context.Context, inscription dao.InscriptionMensuelle) (dao.InscriptionMensuelle, error)
	FindByID(ctx context.Context, id uint) (dao.InscriptionMensuelle, error)
	List(ctx context.Context, filter dao.InscriptionFilter) ([]dao.InscriptionMensuelle, error)
	Update(ctx context.Context, inscription dao.InscriptionMensuelle) (dao.InscriptionMensuelle, error)
	Delete(ctx context.Context, id uint) error
	CountInscrits(ctx context.Context, annee, mois int) (int64, error)
}

type InscriptionRepository struct {
	dao InscriptionDAO
}

func NewInscriptionRepository(dao InscriptionDAO) *InscriptionRepository {
	return &InscriptionRepository{
		dao: dao,
	}
}

func (r *InscriptionRepository) Create(ctx context.Context, inscription domain.InscriptionMensuelle) (domain.InscriptionMensuelle, error) {
	created, err := r.dao.Insert(ctx, dao.InscriptionMensuelle{
		EleveID:     inscription.EleveID,
		Annee:       inscription.Annee,
		Mois:        inscription.Mois,
		Inscrit:     inscription.Inscrit,
		Notes:       inscription.Notes,
		CreatedByID: inscription.CreatedByID,
	})
	if err != nil {
		return domain.InscriptionMensuelle{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return inscriptionDaoToDomain(created), nil
}

func (r *InscriptionRepository) FindByID(ctx context.Context, id uint) (domain.InscriptionMensuelle, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.InscriptionMensuelle{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return inscriptionDaoToDomain(found), nil
}

func (r *InscriptionRepository) List(ctx context.Context, filter InscriptionFilter) ([]domain.InscriptionMensuelle, error) {
	found, err := r.dao.List(ctx, dao.InscriptionFilter{
		Annee:   filter.Annee,
		Mois:    filter.Mois,
		EleveID: filter.EleveID,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	inscriptions := make([]domain.InscriptionMensuelle, 0, len(found))
	for _, i := range found {
		inscriptions = append(inscriptions, inscriptionDaoToDomain(i))
	}

	return inscriptions, nil
}

func (r *InscriptionRepository) Update(ctx context.Context, inscription domain.InscriptionMensuelle) (domain.InscriptionMensuelle, error) {
	updated, err := r.dao.Update(ctx, dao.InscriptionMensuelle{
		ID:      inscription.ID,
		Inscrit: inscription.Inscrit,
		Notes:   inscription.Notes,
	})
	if err != nil {
		return domain.InscriptionMensuelle{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return inscriptionDaoToDomain(updated), nil
}

func (r *InscriptionRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *InscriptionRepository) CountInscrits(ctx context.Context, annee, mois int) (int64, error) {
	count, err := r.dao.CountInscrits(ctx, annee, mois)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountInscrits -> %w", err)
	}

	return count, nil
}

func inscriptionDaoToDomain(i dao.InscriptionMensuelle) domain.InscriptionMensuelle {
	inscription := domain.InscriptionMensuelle{
		ID:          i.ID,
		EleveID:     i.EleveID,
		Annee:       i.Annee,
		Mois:        i.Mois,
		Inscrit:     i.Inscrit,
		Notes:       i.Notes,
		CreatedAt:   i.CreatedAt,
		CreatedByID: i.CreatedByID,
	}
	if i.Eleve.ID != 0 {
		eleve := eleveDaoToDomain(i.Eleve)
		inscription.Eleve = &eleve
	}

	return inscription
}
