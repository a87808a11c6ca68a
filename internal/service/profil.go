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

var ErrProfilNotFound = repository.ErrProfilNotFound

type ProfilRepository interface {
	FindByUserID(ctx context.Context, userID uint) (domain.ProfilPrestataire, error)
	FindByID(ctx context.Context, id uint) (domain.ProfilPrestataire, error)
	List(ctx context.Context, role domain.Role, actif *bool) ([]domain.ProfilPrestataire, error)
	Update(ctx context.Context, profil domain.ProfilPrestataire) (domain.ProfilPrestataire, error)
	Delete(ctx context.Context, id uint) error
}

// Dashboard is the landing-page snapshot: live headcount, today's and this
// month's service, and the money situation.
type Dashboard struct {
	ElevesActifs     int64           `json:"eleves_actifs"`
	RepasAujourdhui  int64           `json:"repas_aujourdhui"`
	RepasDuMois      int64           `json:"repas_du_mois"`
	InscritsDuMois   int64           `json:"inscrits_du_mois"`
	FacturesEnvoyees int64           `json:"factures_envoyees"`
	MontantEnAttente decimal.Decimal `json:"montant_en_attente"`
	MontantPaye      decimal.Decimal `json:"montant_paye"`
	MenuDuJour       *domain.Menu    `json:"menu_du_jour"`
}

type ProfilService struct {
	repo         ProfilRepository
	eleves       EleveRepository
	repas        RepasRepository
	menus        RepasMenuRepository
	inscriptions InscriptionRepository
	factures     FactureRepository
}

func NewProfilService(
	repo ProfilRepository,
	eleves EleveRepository,
	repas RepasRepository,
	menus RepasMenuRepository,
	inscriptions InscriptionRepository,
	factures FactureRepository,
) *ProfilService {
	return &ProfilService{
		repo:         repo,
		eleves:       eleves,
		repas:        repas,
		menus:        menus,
		inscriptions: inscriptions,
		factures:     factures,
	}
}

// MonProfil returns the profile of the authenticated user.
func (s *ProfilService) MonProfil(ctx context.Context, userID uint) (domain.ProfilPrestataire, error) {
	profil, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return domain.ProfilPrestataire{}, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	return profil, nil
}

func (s *ProfilService) Get(ctx context.Context, id uint) (domain.ProfilPrestataire, error) {
	profil, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.ProfilPrestataire{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return profil, nil
}

func (s *ProfilService) List(ctx context.Context, role domain.Role, actif *bool) ([]domain.ProfilPrestataire, error) {
	profils, err := s.repo.List(ctx, role, actif)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return profils, nil
}

func (s *ProfilService) Update(ctx context.Context, profil domain.ProfilPrestataire) (domain.ProfilPrestataire, error) {
	if !profil.Role.Valid() {
		return domain.ProfilPrestataire{}, ErrRoleInvalide
	}

	updated, err := s.repo.Update(ctx, profil)
	if err != nil {
		return domain.ProfilPrestataire{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// Delete removes the profile and the login behind it.
func (s *ProfilService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// TableauDeBord assembles the dashboard counters.
func (s *ProfilService) TableauDeBord(ctx context.Context) (Dashboard, error) {
	now := time.Now()
	today := domain.DateOnly(now)
	from, to := moisBornes(now.Year(), int(now.Month()))

	dashboard := Dashboard{}

	var err error
	if dashboard.ElevesActifs, err = s.eleves.CountActifs(ctx); err != nil {
		return Dashboard{}, fmt.Errorf("s.eleves.CountActifs -> %w", err)
	}
	if dashboard.RepasAujourdhui, err = s.repas.Count(ctx, repository.RepasFilter{Date: &today}); err != nil {
		return Dashboard{}, fmt.Errorf("s.repas.Count -> %w", err)
	}
	if dashboard.RepasDuMois, err = s.repas.Count(ctx, repository.RepasFilter{DateFrom: &from, DateTo: &to}); err != nil {
		return Dashboard{}, fmt.Errorf("s.repas.Count -> %w", err)
	}
	if dashboard.InscritsDuMois, err = s.inscriptions.CountInscrits(ctx, now.Year(), int(now.Month())); err != nil {
		return Dashboard{}, fmt.Errorf("s.inscriptions.CountInscrits -> %w", err)
	}
	if dashboard.FacturesEnvoyees, err = s.factures.CountByStatut(ctx, domain.FactureEnvoyee); err != nil {
		return Dashboard{}, fmt.Errorf("s.factures.CountByStatut -> %w", err)
	}
	if dashboard.MontantEnAttente, err = s.factures.SumMontantByStatut(ctx, domain.FactureEnvoyee); err != nil {
		return Dashboard{}, fmt.Errorf("s.factures.SumMontantByStatut -> %w", err)
	}
	if dashboard.MontantPaye, err = s.factures.SumMontantByStatut(ctx, domain.FacturePayee); err != nil {
		return Dashboard{}, fmt.Errorf("s.factures.SumMontantByStatut -> %w", err)
	}

	menu, err := s.menus.FindByDate(ctx, today)
	switch {
	case err == nil:
		dashboard.MenuDuJour = &menu
	case errors.Is(err, ErrMenuNotFound):
		// no menu planned today
	default:
		return Dashboard{}, fmt.Errorf("s.menus.FindByDate -> %w", err)
	}

	return dashboard, nil
}
