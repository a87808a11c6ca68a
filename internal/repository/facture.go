package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository/dao"
)

var (
	ErrFactureExists   = dao.ErrFactureExists
	ErrFactureNotFound = dao.ErrFactureNotFound
)

// FactureFilter narrows invoice listings.
type FactureFilter struct {
	Annee  int
	Mois   int
	Statut domain.FactureStatut
	Numero string
}

type FactureDAO interface {
	Insert(ctx context.Context, facture dao.Facture) (dao.Facture, error)
	FindByID(ctx context.Context, id uint) (dao.Facture, error)
	List(ctx context.Context, filter dao.FactureFilter) ([]dao.Facture, error)
	Update(ctx context.Context, facture dao.Facture) (dao.Facture, error)
	UpdateStatut(ctx context.Context, id uint, statut string, dateEmission, datePaiement *time.Time) (dao.Facture, error)
	Delete(ctx context.Context, id uint) error
	CountByStatut(ctx context.Context, statut string) (int64, error)
	SumMontantByStatut(ctx context.Context, statut string) (decimal.Decimal, error)
}

type FactureRepository struct {
	dao FactureDAO
}

func NewFactureRepository(dao FactureDAO) *FactureRepository {
	return &FactureRepository{
		dao: dao,
	}
}

// Create persists the invoice. A blank Numero is assigned from the global
// sequence inside the insert transaction.
func (r *FactureRepository) Create(ctx context.Context, facture domain.Facture) (domain.Facture, error) {
	created, err := r.dao.Insert(ctx, factureDomainToDao(facture))
	if err != nil {
		return domain.Facture{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return factureDaoToDomain(created), nil
}

func (r *FactureRepository) FindByID(ctx context.Context, id uint) (domain.Facture, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Facture{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return factureDaoToDomain(found), nil
}

func (r *FactureRepository) List(ctx context.Context, filter FactureFilter) ([]domain.Facture, error) {
	found, err := r.dao.List(ctx, dao.FactureFilter{
		Annee:  filter.Annee,
		Mois:   filter.Mois,
		Statut: string(filter.Statut),
		Numero: filter.Numero,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	factures := make([]domain.Facture, 0, len(found))
	for _, f := range found {
		factures = append(factures, factureDaoToDomain(f))
	}

	return factures, nil
}

func (r *FactureRepository) Update(ctx context.Context, facture domain.Facture) (domain.Facture, error) {
	updated, err := r.dao.Update(ctx, factureDomainToDao(facture))
	if err != nil {
		return domain.Facture{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return factureDaoToDomain(updated), nil
}

func (r *FactureRepository) UpdateStatut(ctx context.Context, id uint, statut domain.FactureStatut, dateEmission, datePaiement *time.Time) (domain.Facture, error) {
	updated, err := r.dao.UpdateStatut(ctx, id, string(statut), dateEmission, datePaiement)
	if err != nil {
		return domain.Facture{}, fmt.Errorf("r.dao.UpdateStatut -> %w", err)
	}

	return factureDaoToDomain(updated), nil
}

func (r *FactureRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *FactureRepository) CountByStatut(ctx context.Context, statut domain.FactureStatut) (int64, error) {
	count, err := r.dao.CountByStatut(ctx, string(statut))
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByStatut -> %w", err)
	}

	return count, nil
}

func (r *FactureRepository) SumMontantByStatut(ctx context.Context, statut domain.FactureStatut) (decimal.Decimal, error) {
	total, err := r.dao.SumMontantByStatut(ctx, string(statut))
	if err != nil {
		return decimal.Zero, fmt.Errorf("r.dao.SumMontantByStatut -> %w", err)
	}

	return total, nil
}

func factureDomainToDao(f domain.Facture) dao.Facture {
	return dao.Facture{
		ID:                 f.ID,
		Numero:             f.Numero,
		Annee:              f.Annee,
		Mois:               f.Mois,
		NombreJoursTravail: f.NombreJoursTravail,
		NombreRepasServis:  f.NombreRepasServis,
		PrixUnitaireRepas:  f.PrixUnitaireRepas,
		MontantTotal:       f.MontantTotal,
		Statut:             string(f.Statut),
		DateEmission:       f.DateEmission,
		DatePaiement:       f.DatePaiement,
		Notes:              f.Notes,
		CreatedByID:        f.CreatedByID,
	}
}

func factureDaoToDomain(f dao.Facture) domain.Facture {
	return domain.Facture{
		ID:                 f.ID,
		Numero:             f.Numero,
		Annee:              f.Annee,
		Mois:               f.Mois,
		NombreJoursTravail: f.NombreJoursTravail,
		NombreRepasServis:  f.NombreRepasServis,
		PrixUnitaireRepas:  f.PrixUnitaireRepas,
		MontantTotal:       f.MontantTotal,
		Statut:             domain.FactureStatut(f.Statut),
		DateEmission:       f.DateEmission,
		DatePaiement:       f.DatePaiement,
		Notes:              f.Notes,
		CreatedAt:          f.CreatedAt,
		CreatedByID:        f.CreatedByID,
	}
}
