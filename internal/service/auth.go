package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository"
)

var (
	ErrUserExists    = repository.ErrUserExists
	ErrUserNotFound  = repository.ErrUserNotFound
	ErrWrongPassword = errors.New("wrong password")
	ErrProfilInactif = errors.New("profile is deactivated")
	ErrRoleInvalide  = errors.New("invalid role")
)

type AuthUserRepository interface {
	CreateWithProfil(ctx context.Context, user domain.User, profil domain.ProfilPrestataire) (domain.ProfilPrestataire, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
}

type AuthProfilRepository interface {
	FindByUserID(ctx context.Context, userID uint) (domain.ProfilPrestataire, error)
}

type AuthService struct {
	users   AuthUserRepository
	profils AuthProfilRepository
}

func NewAuthService(users AuthUserRepository, profils AuthProfilRepository) *AuthService {
	return &AuthService{
		users:   users,
		profils: profils,
	}
}

// Login authenticates by username and password. Accounts whose profile has
// been deactivated are rejected even with the right password.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Actor, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.Actor{}, ErrUserNotFound
		}

		return domain.Actor{}, fmt.Errorf("s.users.FindByUsername -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.Actor{}, ErrWrongPassword
	}

	actor, err := s.ResolveActor(ctx, user.ID)
	if err != nil {
		return domain.Actor{}, err
	}

	if actor.HasProfile() && !actor.Profil.Actif {
		return domain.Actor{}, ErrProfilInactif
	}

	return actor, nil
}

// CreateActor provisions a user identity and its canteen profile in one
// atomic step. A user row never exists without a profile row.
func (s *AuthService) CreateActor(ctx context.Context, user domain.User, profil domain.ProfilPrestataire) (domain.ProfilPrestataire, error) {
	if !profil.Role.Valid() {
		return domain.ProfilPrestataire{}, ErrRoleInvalide
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.ProfilPrestataire{}, err
	}
	user.Password = string(hash)

	created, err := s.users.CreateWithProfil(ctx, user, profil)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return domain.ProfilPrestataire{}, ErrUserExists
		}

		return domain.ProfilPrestataire{}, fmt.Errorf("s.users.CreateWithProfil -> %w", err)
	}

	return created, nil
}

// ResolveActor loads the user and its optional profile. A user without a
// profile resolves to an actor with Profil nil, which every role check
// denies.
func (s *AuthService) ResolveActor(ctx context.Context, userID uint) (domain.Actor, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.Actor{}, ErrUserNotFound
		}

		return domain.Actor{}, fmt.Errorf("s.users.FindByID -> %w", err)
	}

	actor := domain.Actor{User: user}

	profil, err := s.profils.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfilNotFound) {
			return actor, nil
		}

		return domain.Actor{}, fmt.Errorf("s.profils.FindByUserID -> %w", err)
	}
	actor.Profil = &profil

	return actor, nil
}

// ChangePassword verifies the current password before storing the new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}

		return fmt.Errorf("s.users.FindByID -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err = s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("s.users.UpdatePassword -> %w", err)
	}

	return nil
}
