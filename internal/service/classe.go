package service

import (
	"context"
	"fmt"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository"
)

var (
	ErrClasseExists   = repository.ErrClasseExists
	ErrClasseNotFound = repository.ErrClasseNotFound
)

type ClasseRepository interface {
	Create(ctx context.Context, classe domain.Classe) (domain.Classe, error)
	FindByID(ctx context.Context, id uint) (domain.Classe, error)
	List(ctx context.Context) ([]domain.Classe, error)
	Update(ctx context.Context, classe domain.Classe) (domain.Classe, error)
	Delete(ctx context.Context, id uint) error
}

type ClasseService struct {
	repo ClasseRepository
}

func NewClasseService(repo ClasseRepository) *ClasseService {
	return &ClasseService{
		repo: repo,
	}
}

func (s *ClasseService) Create(ctx context.Context, classe domain.Classe) (domain.Classe, error) {
	created, err := s.repo.Create(ctx, classe)
	if err != nil {
		return domain.Classe{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ClasseService) Get(ctx context.Context, id uint) (domain.Classe, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Classe{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return found, nil
}

func (s *ClasseService) List(ctx context.Context) ([]domain.Classe, error) {
	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return classes, nil
}

func (s *ClasseService) Update(ctx context.Context, classe domain.Classe) (domain.Classe, error) {
	updated, err := s.repo.Update(ctx, classe)
	if err != nil {
		return domain.Classe{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// Delete removes the class. Its students survive without a class.
func (s *ClasseService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
