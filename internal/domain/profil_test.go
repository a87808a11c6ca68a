package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RolePrestataire.Valid())
	assert.False(t, Role("SUPERVISEUR").Valid())
	assert.False(t, Role("").Valid())
}

func TestActorPredicates(t *testing.T) {
	sansProfil := Actor{}
	assert.False(t, sansProfil.HasProfile())
	assert.False(t, sansProfil.IsAdmin())
	assert.False(t, sansProfil.IsPrestataireOrAdmin())

	admin := Actor{Profil: &ProfilPrestataire{Role: RoleAdmin, Actif: true}}
	assert.True(t, admin.HasProfile())
	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.IsPrestataireOrAdmin())

	prestataire := Actor{Profil: &ProfilPrestataire{Role: RolePrestataire, Actif: true}}
	assert.True(t, prestataire.HasProfile())
	assert.False(t, prestataire.IsAdmin())
	assert.True(t, prestataire.IsPrestataireOrAdmin())

	inactif := Actor{Profil: &ProfilPrestataire{Role: RoleAdmin, Actif: false}}
	assert.True(t, inactif.HasProfile())
	assert.False(t, inactif.IsAdmin())
	assert.False(t, inactif.IsPrestataireOrAdmin())
}

func TestEleveDisplayName(t *testing.T) {
	avec := Eleve{Prenom: "Awa", Nom: "Diop", Classe: &Classe{Nom: "CM2"}}
	assert.Equal(t, "Awa Diop (CM2)", avec.DisplayName())

	sans := Eleve{Prenom: "Awa", Nom: "Diop"}
	assert.Equal(t, "Awa Diop (Sans classe)", sans.DisplayName())
}
