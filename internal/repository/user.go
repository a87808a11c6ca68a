package repository

import (
	"context"
	"fmt"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository/dao"
)

var (
	ErrUserExists   = dao.ErrUserExists
	ErrUserNotFound = dao.ErrUserNotFound
)

type UserDAO interface {
	InsertWithProfil(ctx context.Context, user dao.User, profil dao.ProfilPrestataire) (dao.User, dao.ProfilPrestataire, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByUsername(ctx context.Context, username string) (dao.User, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

// CreateWithProfil persists a new user identity together with its canteen
// profile, atomically.
func (r *UserRepository) CreateWithProfil(ctx context.Context, user domain.User, profil domain.ProfilPrestataire) (domain.ProfilPrestataire, error) {
	daoUser := dao.User{
		Username: user.Username,
		Email:    user.Email,
		Password: user.Password,
		Prenom:   user.Prenom,
		Nom:      user.Nom,
	}
	daoProfil := dao.ProfilPrestataire{
		Role:       string(profil.Role),
		Telephone:  profil.Telephone,
		Entreprise: profil.Entreprise,
		Actif:      profil.Actif,
	}

	createdUser, createdProfil, err := r.dao.InsertWithProfil(ctx, daoUser, daoProfil)
	if err != nil {
		return domain.ProfilPrestataire{}, fmt.Errorf("r.dao.InsertWithProfil -> %w", err)
	}

	createdProfil.User = createdUser

	return profilDaoToDomain(createdProfil), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return userDaoToDomain(found), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	found, err := r.dao.FindByUsername(ctx, username)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByUsername -> %w", err)
	}

	return userDaoToDomain(found), nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	if err := r.dao.UpdatePassword(ctx, id, hash); err != nil {
		return fmt.Errorf("r.dao.UpdatePassword -> %w", err)
	}

	return nil
}

func userDaoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		Prenom:    u.Prenom,
		Nom:       u.Nom,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
