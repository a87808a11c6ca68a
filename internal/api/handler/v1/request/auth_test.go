package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginRequestValidate(t *testing.T) {
	valid := LoginRequest{Username: "admin", Password: "motdepasse1"}
	assert.NoError(t, valid.Validate())

	sansUsername := LoginRequest{Password: "motdepasse1"}
	assert.Error(t, sansUsername.Validate())

	sansPassword := LoginRequest{Username: "admin"}
	assert.Error(t, sansPassword.Validate())
}

func TestCreateActorRequestValidate(t *testing.T) {
	base := CreateActorRequest{
		Username:        "presta",
		Password:        "motdepasse1",
		ConfirmPassword: "motdepasse1",
		Email:           "presta@example.org",
		Role:            "PRESTATAIRE",
	}
	assert.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*CreateActorRequest)
	}{
		{"username trop court", func(r *CreateActorRequest) { r.Username = "ab" }},
		{"role inconnu", func(r *CreateActorRequest) { r.Role = "SUPERVISEUR" }},
		{"email invalide", func(r *CreateActorRequest) { r.Email = "pas-un-email" }},
		{"mot de passe trop court", func(r *CreateActorRequest) {
			r.Password = "abc1"
			r.ConfirmPassword = "abc1"
		}},
		{"mot de passe sans chiffre", func(r *CreateActorRequest) {
			r.Password = "motdepasse"
			r.ConfirmPassword = "motdepasse"
		}},
		{"mot de passe sans lettre", func(r *CreateActorRequest) {
			r.Password = "12345678"
			r.ConfirmPassword = "12345678"
		}},
		{"confirmation differente", func(r *CreateActorRequest) { r.ConfirmPassword = "autrechose1" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestChangePasswordRequestValidate(t *testing.T) {
	valid := ChangePasswordRequest{
		CurrentPassword: "ancien123",
		NewPassword:     "nouveau12",
		ConfirmPassword: "nouveau12",
	}
	assert.NoError(t, valid.Validate())

	faible := valid
	faible.NewPassword = "court1"
	faible.ConfirmPassword = "court1"
	assert.ErrorIs(t, faible.Validate(), errInvalidPassword)

	differente := valid
	differente.ConfirmPassword = "autre1234"
	assert.ErrorIs(t, differente.Validate(), errConfirmPasswordMismatch)
}
