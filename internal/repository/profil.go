package repository

import (
	"context"
	"fmt"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository/dao"
)

var ErrProfilNotFound = dao.ErrProfilNotFound

type ProfilDAO interface {
	FindByUserID(ctx context.Context, userID uint) (dao.ProfilPrestataire, error)
	FindByID(ctx context.Context, id uint) (dao.ProfilPrestataire, error)
	List(ctx context.Context, role string, actif *bool) ([]dao.ProfilPrestataire, error)
	Update(ctx context.Context, profil dao.ProfilPrestataire) (dao.ProfilPrestataire, error)
	Delete(ctx context.Context, id uint) error
}

type ProfilRepository struct {
	dao ProfilDAO
}

func NewProfilRepository(dao ProfilDAO) *ProfilRepository {
	return &ProfilRepository{
		dao: dao,
	}
}

func (r *ProfilRepository) FindByUserID(ctx context.Context, userID uint) (domain.ProfilPrestataire, error) {
	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return domain.ProfilPrestataire{}, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	return profilDaoToDomain(found), nil
}

func (r *ProfilRepository) FindByID(ctx context.Context, id uint) (domain.ProfilPrestataire, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.ProfilPrestataire{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return profilDaoToDomain(found), nil
}

func (r *ProfilRepository) List(ctx context.Context, role domain.Role, actif *bool) ([]domain.ProfilPrestataire, error) {
	found, err := r.dao.List(ctx, string(role), actif)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	profils := make([]domain.ProfilPrestataire, 0, len(found))
	for _, p := range found {
		profils = append(profils, profilDaoToDomain(p))
	}

	return profils, nil
}

func (r *ProfilRepository) Update(ctx context.Context, profil domain.ProfilPrestataire) (domain.ProfilPrestataire, error) {
	updated, err := r.dao.Update(ctx, dao.ProfilPrestataire{
		ID:         profil.ID,
		Role:       string(profil.Role),
		Telephone:  profil.Telephone,
		Entreprise: profil.Entreprise,
		Actif:      profil.Actif,
	})
	if err != nil {
		return domain.ProfilPrestataire{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return profilDaoToDomain(updated), nil
}

// Delete removes the profile and the user identity behind it.
func (r *ProfilRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func profilDaoToDomain(p dao.ProfilPrestataire) domain.ProfilPrestataire {
	return domain.ProfilPrestataire{
		ID:         p.ID,
		UserID:     p.UserID,
		User:       userDaoToDomain(p.User),
		Role:       domain.Role(p.Role),
		Telephone:  p.Telephone,
		Entreprise: p.Entreprise,
		Actif:      p.Actif,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
