package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository"
)

var (
	ErrFactureExists    = repository.ErrFactureExists
	ErrFactureNotFound  = repository.ErrFactureNotFound
	ErrTransitionStatut = errors.New("invalid invoice status transition")
	ErrStatutInvalide   = errors.New("invalid invoice status")
	ErrPeriodeInvalide  = errors.New("invalid billing period")
	ErrPrixInvalide     = errors.New("unit price must be positive")
)

type FactureRepository interface {
	Create(ctx context.Context, facture domain.Facture) (domain.Facture, error)
	FindByID(ctx context.Context, id uint) (domain.Facture, error)
	List(ctx context.Context, filter repository.FactureFilter) ([]domain.Facture, error)
	Update(ctx context.Context, facture domain.Facture) (domain.Facture, error)
	UpdateStatut(ctx context.Context, id uint, statut domain.FactureStatut, dateEmission, datePaiement *time.Time) (domain.Facture, error)
	Delete(ctx context.Context, id uint) error
	CountByStatut(ctx context.Context, statut domain.FactureStatut) (int64, error)
	SumMontantByStatut(ctx context.Context, statut domain.FactureStatut) (decimal.Decimal, error)
}

type FactureRepasService interface {
	DecompteMensuel(ctx context.Context, annee, mois int) (domain.DecompteMensuel, error)
}

type FactureService struct {
	repo  FactureRepository
	repas FactureRepasService
}

func NewFactureService(repo FactureRepository, repas FactureRepasService) *FactureService {
	return &FactureService{
		repo:  repo,
		repas: repas,
	}
}

// Create stores a new invoice. A blank number is generated from the global
// sequence, a zero total is computed from the meal count and unit price, and
// a new invoice always starts as a draft.
func (s *FactureService) Create(ctx context.Context, facture domain.Facture) (domain.Facture, error) {
	if err := validatePeriode(facture.Annee, facture.Mois); err != nil {
		return domain.Facture{}, err
	}
	if facture.PrixUnitaireRepas.Sign() <= 0 {
		return domain.Facture{}, ErrPrixInvalide
	}

	facture.Statut = domain.FactureBrouillon
	if facture.MontantTotal.IsZero() {
		facture.ComputeTotal()
	}
	if facture.DateEmission.IsZero() {
		facture.DateEmission = domain.DateOnly(time.Now())
	} else {
		facture.DateEmission = domain.DateOnly(facture.DateEmission)
	}

	created, err := s.repo.Create(ctx, facture)
	if err != nil {
		return domain.Facture{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// GenererDepuisDecompte drafts the invoice for a month straight from its meal
// tally.
func (s *FactureService) GenererDepuisDecompte(ctx context.Context, annee, mois int, prixUnitaire decimal.Decimal, createdBy *uint) (domain.Facture, error) {
	decompte, err := s.repas.DecompteMensuel(ctx, annee, mois)
	if err != nil {
		return domain.Facture{}, fmt.Errorf("s.repas.DecompteMensuel -> %w", err)
	}

	return s.Create(ctx, domain.Facture{
		Annee:              annee,
		Mois:               mois,
		NombreJoursTravail: decompte.NombreJoursTravail,
		NombreRepasServis:  decompte.NombreRepas,
		PrixUnitaireRepas:  prixUnitaire,
		CreatedByID:        createdBy,
	})
}

func (s *FactureService) Get(ctx context.Context, id uint) (domain.Facture, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Facture{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return found, nil
}

func (s *FactureService) List(ctx context.Context, filter repository.FactureFilter) ([]domain.Facture, error) {
	factures, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return factures, nil
}

// Update rewrites the economic fields of an invoice and always recomputes the
// total. The number and status are not touched here.
func (s *FactureService) Update(ctx context.Context, facture domain.Facture) (domain.Facture, error) {
	current, err := s.Get(ctx, facture.ID)
	if err != nil {
		return domain.Facture{}, err
	}

	if err := validatePeriode(facture.Annee, facture.Mois); err != nil {
		return domain.Facture{}, err
	}
	if facture.PrixUnitaireRepas.Sign() <= 0 {
		return domain.Facture{}, ErrPrixInvalide
	}

	facture.Numero = current.Numero
	facture.Statut = current.Statut
	facture.DateEmission = current.DateEmission
	facture.DatePaiement = current.DatePaiement
	facture.ComputeTotal()

	updated, err := s.repo.Update(ctx, facture)
	if err != nil {
		return domain.Facture{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// ChangerStatut walks the invoice lifecycle. Sending stamps the emission
// date, payment stamps the payment date, and terminal invoices refuse any
// further change.
func (s *FactureService) ChangerStatut(ctx context.Context, id uint, next domain.FactureStatut) (domain.Facture, error) {
	if !next.Valid() {
		return domain.Facture{}, ErrStatutInvalide
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return domain.Facture{}, err
	}

	if !current.Statut.CanTransitionTo(next) {
		return domain.Facture{}, ErrTransitionStatut
	}

	var dateEmission, datePaiement *time.Time
	now := domain.DateOnly(time.Now())
	switch next {
	case domain.FactureEnvoyee:
		dateEmission = &now
	case domain.FacturePayee:
		datePaiement = &now
	}

	updated, err := s.repo.UpdateStatut(ctx, id, next, dateEmission, datePaiement)
	if err != nil {
		return domain.Facture{}, fmt.Errorf("s.repo.UpdateStatut -> %w", err)
	}

	return updated, nil
}

func (s *FactureService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func validatePeriode(annee, mois int) error {
	if annee < 2000 || annee > 2100 || mois < 1 || mois > 12 {
		return ErrPeriodeInvalide
	}
	return nil
}
