package dao

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseFacture(annee, mois int) Facture {
	return Facture{
		Annee:             annee,
		Mois:              mois,
		NombreRepasServis: 100,
		PrixUnitaireRepas: decimal.RequireFromString("3.50"),
		MontantTotal:      decimal.RequireFromString("350.00"),
		Statut:            "BROUILLON",
		DateEmission:      time.Date(annee, time.Month(mois), 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestFactureNumeroSequence(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	d := NewFactureDAO(db)

	premiere, err := d.Insert(ctx, baseFacture(2026, 1))
	require.NoError(t, err)
	assert.Equal(t, "FAC-2026-01-0001", premiere.Numero)

	deuxieme, err := d.Insert(ctx, baseFacture(2026, 1))
	require.NoError(t, err)
	assert.Equal(t, "FAC-2026-01-0002", deuxieme.Numero)

	// The sequence is global, it keeps counting across periods.
	troisieme, err := d.Insert(ctx, baseFacture(2026, 2))
	require.NoError(t, err)
	assert.Equal(t, "FAC-2026-02-0003", troisieme.Numero)
}

func TestFactureInsertKeepsExplicitNumero(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	d := NewFactureDAO(db)

	facture := baseFacture(2026, 3)
	facture.Numero = "FAC-2026-03-0099"

	inserted, err := d.Insert(ctx, facture)
	require.NoError(t, err)
	assert.Equal(t, "FAC-2026-03-0099", inserted.Numero)

	_, err = d.Insert(ctx, facture)
	assert.ErrorIs(t, err, ErrFactureExists)
}

func TestFactureListFilters(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	d := NewFactureDAO(db)

	_, err := d.Insert(ctx, baseFacture(2026, 1))
	require.NoError(t, err)
	envoyee := baseFacture(2026, 2)
	envoyee.Statut = "ENVOYEE"
	_, err = d.Insert(ctx, envoyee)
	require.NoError(t, err)

	parMois, err := d.List(ctx, FactureFilter{Annee: 2026, Mois: 1})
	require.NoError(t, err)
	require.Len(t, parMois, 1)
	assert.Equal(t, 1, parMois[0].Mois)

	parStatut, err := d.List(ctx, FactureFilter{Statut: "ENVOYEE"})
	require.NoError(t, err)
	require.Len(t, parStatut, 1)
	assert.Equal(t, 2, parStatut[0].Mois)

	parNumero, err := d.List(ctx, FactureFilter{Numero: "2026-02"})
	require.NoError(t, err)
	assert.Len(t, parNumero, 1)
}

func TestFactureSumMontantByStatut(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	d := NewFactureDAO(db)

	for _, montant := range []string{"350.00", "120.50"} {
		facture := baseFacture(2026, 4)
		facture.Statut = "PAYEE"
		facture.MontantTotal = decimal.RequireFromString(montant)
		_, err := d.Insert(ctx, facture)
		require.NoError(t, err)
	}
	_, err := d.Insert(ctx, baseFacture(2026, 5))
	require.NoError(t, err)

	count, err := d.CountByStatut(ctx, "PAYEE")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	total, err := d.SumMontantByStatut(ctx, "PAYEE")
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("470.50")), "got %s", total)
}

func TestFactureUpdateStatutStamps(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	d := NewFactureDAO(db)

	facture, err := d.Insert(ctx, baseFacture(2026, 6))
	require.NoError(t, err)

	paiement := time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC)
	updated, err := d.UpdateStatut(ctx, facture.ID, "PAYEE", nil, &paiement)
	require.NoError(t, err)
	assert.Equal(t, "PAYEE", updated.Statut)
	require.NotNil(t, updated.DatePaiement)
	assert.Equal(t, paiement, updated.DatePaiement.UTC())

	_, err = d.UpdateStatut(ctx, 9999, "PAYEE", nil, nil)
	assert.ErrorIs(t, err, ErrFactureNotFound)
}
