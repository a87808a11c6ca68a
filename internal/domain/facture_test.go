package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactureStatutValid(t *testing.T) {
	for _, statut := range []FactureStatut{FactureBrouillon, FactureEnvoyee, FacturePayee, FactureAnnulee} {
		assert.True(t, statut.Valid(), "statut %s", statut)
	}
	assert.False(t, FactureStatut("EN_COURS").Valid())
	assert.False(t, FactureStatut("").Valid())
}

func TestFactureStatutTransitions(t *testing.T) {
	tests := []struct {
		from FactureStatut
		to   FactureStatut
		ok   bool
	}{
		{FactureBrouillon, FactureEnvoyee, true},
		{FactureBrouillon, FactureAnnulee, true},
		{FactureBrouillon, FacturePayee, false},
		{FactureEnvoyee, FacturePayee, true},
		{FactureEnvoyee, FactureAnnulee, true},
		{FactureEnvoyee, FactureBrouillon, false},
		{FactureEnvoyee, FactureEnvoyee, false},
		{FacturePayee, FactureAnnulee, false},
		{FacturePayee, FactureEnvoyee, false},
		{FactureAnnulee, FactureEnvoyee, false},
		{FactureAnnulee, FacturePayee, false},
		{FactureBrouillon, FactureStatut("EN_COURS"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestFactureStatutTerminal(t *testing.T) {
	assert.False(t, FactureBrouillon.Terminal())
	assert.False(t, FactureEnvoyee.Terminal())
	assert.True(t, FacturePayee.Terminal())
	assert.True(t, FactureAnnulee.Terminal())
}

func TestFactureComputeTotal(t *testing.T) {
	facture := Facture{
		NombreRepasServis: 142,
		PrixUnitaireRepas: decimal.RequireFromString("3.50"),
	}

	facture.ComputeTotal()

	require.True(t, facture.MontantTotal.Equal(decimal.RequireFromString("497.00")),
		"got %s", facture.MontantTotal)
}

func TestFactureComputeTotalZeroRepas(t *testing.T) {
	facture := Facture{
		PrixUnitaireRepas: decimal.RequireFromString("3.50"),
	}

	facture.ComputeTotal()

	require.True(t, facture.MontantTotal.IsZero())
}

func TestFormatNumero(t *testing.T) {
	assert.Equal(t, "FAC-2024-01-0001", FormatNumero(2024, 1, 1))
	assert.Equal(t, "FAC-2025-12-0042", FormatNumero(2025, 12, 42))
	assert.Equal(t, "FAC-2026-09-10000", FormatNumero(2026, 9, 10000))
}
