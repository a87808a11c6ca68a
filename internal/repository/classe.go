package repository

import (
	"context"
	"fmt"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository/dao"
)

var (
	ErrClasseExists   = dao.ErrClasseExists
	ErrClasseNotFound = dao.ErrClasseNotFound
)

type ClasseDAO interface {
	Insert(ctx context.Context, classe dao.Classe) (dao.Classe, error)
	FindByID(ctx context.Context, id uint) (dao.Classe, error)
	List(ctx context.Context) ([]dao.Classe, error)
	Update(ctx context.Context, classe dao.Classe) (dao.Classe, error)
	Delete(ctx context.Context, id uint) error
}

type ClasseRepository struct {
	dao ClasseDAO
}

func NewClasseRepository(dao ClasseDAO) *ClasseRepository {
	return &ClasseRepository{
		dao: dao,
	}
}

func (r *ClasseRepository) Create(ctx context.Context, classe domain.Classe) (domain.Classe, error) {
	created, err := r.dao.Insert(ctx, dao.Classe{
		Nom:    classe.Nom,
		Niveau: classe.Niveau,
	})
	if err != nil {
		return domain.Classe{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return classeDaoToDomain(created), nil
}

func (r *ClasseRepository) FindByID(ctx context.Context, id uint) (domain.Classe, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Classe{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return classeDaoToDomain(found), nil
}

func (r *ClasseRepository) List(ctx context.Context) ([]domain.Classe, error) {
	found, err := r.dao.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	classes := make([]domain.Classe, 0, len(found))
	for _, c := range found {
		classes = append(classes, classeDaoToDomain(c))
	}

	return classes, nil
}

func (r *ClasseRepository) Update(ctx context.Context, classe domain.Classe) (domain.Classe, error) {
	updated, err := r.dao.Update(ctx, dao.Classe{
		ID:     classe.ID,
		Nom:    classe.Nom,
		Niveau: classe.Niveau,
	})
	if err != nil {
		return domain.Classe{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return classeDaoToDomain(updated), nil
}

func (r *ClasseRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func classeDaoToDomain(c dao.Classe) domain.Classe {
	return domain.Classe{
		ID:        c.ID,
		Nom:       c.Nom,
		Niveau:    c.Niveau,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
