package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository"
)

var (
	ErrInscriptionExists   = repository.ErrInscriptionExists
	ErrInscriptionNotFound = repository.ErrInscriptionNotFound
)

type InscriptionRepository interface {
	Create(ctx context.Context, inscription domain.InscriptionMensuelle) (domain.InscriptionMensuelle, error)
	FindByID(ctx context.Context, id uint) (domain.InscriptionMensuelle, error)
	List(ctx context.Context, filter repository.InscriptionFilter) ([]domain.InscriptionMensuelle, error)
	Update(ctx context.Context, inscription domain.InscriptionMensuelle) (domain.InscriptionMensuelle, error)
	Delete(ctx context.Context, id uint) error
	CountInscrits(ctx context.Context, annee, mois int) (int64, error)
}

type InscriptionService struct {
	repo   InscriptionRepository
	eleves EleveRepository
}

func NewInscriptionService(repo InscriptionRepository, eleves EleveRepository) *InscriptionService {
	return &InscriptionService{
		repo:   repo,
		eleves: eleves,
	}
}

func (s *InscriptionService) Create(ctx context.Context, inscription domain.InscriptionMensuelle) (domain.InscriptionMensuelle, error) {
	if _, err := s.eleves.FindByID(ctx, inscription.EleveID); err != nil {
		return domain.InscriptionMensuelle{}, fmt.Errorf("s.eleves.FindByID -> %w", err)
	}

	created, err := s.repo.Create(ctx, inscription)
	if err != nil {
		return domain.InscriptionMensuelle{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// InscrireGroupe enrolls a batch of students for one month. Students already
// enrolled for the month are skipped.
func (s *InscriptionService) InscrireGroupe(ctx context.Context, eleveIDs []uint, annee, mois int, createdBy *uint) (int, error) {
	count := 0
	for _, eleveID := range eleveIDs {
		_, err := s.Create(ctx, domain.InscriptionMensuelle{
			EleveID:     eleveID,
			Annee:       annee,
			Mois:        mois,
			Inscrit:     true,
			CreatedByID: createdBy,
		})
		if err != nil {
			if errors.Is(err, ErrInscriptionExists) || errors.Is(err, ErrEleveNotFound) {
				continue
			}

			return count, err
		}
		count++
	}

	return count, nil
}

func (s *InscriptionService) Get(ctx context.Context, id uint) (domain.InscriptionMensuelle, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.InscriptionMensuelle{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return found, nil
}

func (s *InscriptionService) List(ctx context.Context, filter repository.InscriptionFilter) ([]domain.InscriptionMensuelle, error) {
	inscriptions, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return inscriptions, nil
}

func (s *InscriptionService) Update(ctx context.Context, inscription domain.InscriptionMensuelle) (domain.InscriptionMensuelle, error) {
	updated, err := s.repo.Update(ctx, inscription)
	if err != nil {
		return domain.InscriptionMensuelle{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *InscriptionService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *InscriptionService) CountInscrits(ctx context.Context, annee, mois int) (int64, error) {
	count, err := s.repo.CountInscrits(ctx, annee, mois)
	if err != nil {
		return 0, fmt.Errorf("s.repo.CountInscrits -> %w", err)
	}

	return count, nil
}
