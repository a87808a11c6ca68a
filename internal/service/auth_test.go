package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository"
	"github.com/scolarest/cantine-api/internal/repository/dao"
)

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(
		repository.NewUserRepository(dao.NewUserDAO(db)),
		repository.NewProfilRepository(dao.NewProfilDAO(db)),
	)
}

func createActor(t *testing.T, svc *AuthService, username string, role domain.Role, actif bool) domain.ProfilPrestataire {
	t.Helper()

	profil, err := svc.CreateActor(context.Background(),
		domain.User{Username: username, Password: "motdepasse1", Email: username + "@example.org"},
		domain.ProfilPrestataire{Role: role, Actif: actif},
	)
	if err != nil {
		t.Fatalf("create actor: %v", err)
	}

	return profil
}

func TestAuthLogin(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := newAuthService(db)

	createActor(t, svc, "admin", domain.RoleAdmin, true)

	actor, err := svc.Login(ctx, "admin", "motdepasse1")
	require.NoError(t, err)
	assert.Equal(t, "admin", actor.User.Username)
	assert.True(t, actor.IsAdmin())
	// The hash never leaves the service as the raw password.
	assert.NotEqual(t, "motdepasse1", actor.User.Password)
}

func TestAuthLoginRejets(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := newAuthService(db)

	createActor(t, svc, "presta", domain.RolePrestataire, true)
	createActor(t, svc, "ancien", domain.RolePrestataire, false)

	_, err := svc.Login(ctx, "inconnu", "motdepasse1")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Login(ctx, "presta", "mauvais")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(ctx, "ancien", "motdepasse1")
	assert.ErrorIs(t, err, ErrProfilInactif)
}

func TestAuthCreateActor(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := newAuthService(db)

	profil := createActor(t, svc, "admin", domain.RoleAdmin, true)
	assert.Equal(t, domain.RoleAdmin, profil.Role)
	assert.Equal(t, "admin", profil.User.Username)

	_, err := svc.CreateActor(ctx,
		domain.User{Username: "admin", Password: "motdepasse1"},
		domain.ProfilPrestataire{Role: domain.RoleAdmin, Actif: true},
	)
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = svc.CreateActor(ctx,
		domain.User{Username: "autre", Password: "motdepasse1"},
		domain.ProfilPrestataire{Role: domain.Role("SUPERVISEUR"), Actif: true},
	)
	assert.ErrorIs(t, err, ErrRoleInvalide)
}

func TestAuthResolveActorSansProfil(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := newAuthService(db)

	user := dao.User{Username: "nu", Password: "x", Email: "nu@example.org"}
	require.NoError(t, db.Create(&user).Error)

	actor, err := svc.ResolveActor(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, actor.HasProfile())
	assert.False(t, actor.IsPrestataireOrAdmin())
}

func TestAuthChangePassword(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := newAuthService(db)

	profil := createActor(t, svc, "presta", domain.RolePrestataire, true)

	err := svc.ChangePassword(ctx, profil.UserID, "mauvais", "nouveau12")
	assert.ErrorIs(t, err, ErrWrongPassword)

	require.NoError(t, svc.ChangePassword(ctx, profil.UserID, "motdepasse1", "nouveau12"))

	_, err = svc.Login(ctx, "presta", "motdepasse1")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(ctx, "presta", "nouveau12")
	assert.NoError(t, err)
}
