package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserFullName(t *testing.T) {
	assert.Equal(t, "Awa Diop", User{Prenom: "Awa", Nom: "Diop"}.FullName())
	assert.Equal(t, "Diop", User{Nom: "Diop"}.FullName())
	assert.Equal(t, "Awa", User{Prenom: "Awa"}.FullName())
	assert.Equal(t, "adiop", User{Username: "adiop"}.FullName())
}
