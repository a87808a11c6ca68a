package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scolarest/cantine-api/internal/domain"
)

func TestFactureCreateDefaults(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	facture, err := newFactureService(db).Create(ctx, domain.Facture{
		Annee:             2026,
		Mois:              9,
		NombreRepasServis: 120,
		PrixUnitaireRepas: decimal.RequireFromString("3.50"),
	})
	require.NoError(t, err)

	assert.Equal(t, "FAC-2026-09-0001", facture.Numero)
	assert.Equal(t, domain.FactureBrouillon, facture.Statut)
	assert.True(t, facture.MontantTotal.Equal(decimal.RequireFromString("420.00")),
		"got %s", facture.MontantTotal)
	assert.False(t, facture.DateEmission.IsZero())
	assert.Nil(t, facture.DatePaiement)
}

func TestFactureCreateRejetsInvalides(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := newFactureService(db)

	prix := decimal.RequireFromString("3.50")

	_, err := svc.Create(ctx, domain.Facture{Annee: 2026, Mois: 13, PrixUnitaireRepas: prix})
	assert.ErrorIs(t, err, ErrPeriodeInvalide)

	_, err = svc.Create(ctx, domain.Facture{Annee: 1999, Mois: 9, PrixUnitaireRepas: prix})
	assert.ErrorIs(t, err, ErrPeriodeInvalide)

	_, err = svc.Create(ctx, domain.Facture{Annee: 2026, Mois: 9})
	assert.ErrorIs(t, err, ErrPrixInvalide)

	_, err = svc.Create(ctx, domain.Facture{Annee: 2026, Mois: 9, PrixUnitaireRepas: decimal.RequireFromString("-1")})
	assert.ErrorIs(t, err, ErrPrixInvalide)
}

func TestFactureGenererDepuisDecompte(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	awa := createEleve(t, db, "Awa", "Diop", true)
	malik := createEleve(t, db, "Malik", "Sow", true)

	lundi := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	marquerRepas(t, db, awa.ID, lundi)
	marquerRepas(t, db, malik.ID, lundi)
	marquerRepas(t, db, awa.ID, lundi.AddDate(0, 0, 1))

	facture, err := newFactureService(db).GenererDepuisDecompte(ctx, 2026, 9, decimal.RequireFromString("3.50"), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, facture.NombreRepasServis)
	assert.Equal(t, 2, facture.NombreJoursTravail)
	assert.True(t, facture.MontantTotal.Equal(decimal.RequireFromString("10.50")),
		"got %s", facture.MontantTotal)
	assert.Equal(t, domain.FactureBrouillon, facture.Statut)
}

func TestFactureChangerStatutLifecycle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := newFactureService(db)

	facture, err := svc.Create(ctx, domain.Facture{
		Annee:             2026,
		Mois:              9,
		NombreRepasServis: 10,
		PrixUnitaireRepas: decimal.RequireFromString("3.50"),
	})
	require.NoError(t, err)

	envoyee, err := svc.ChangerStatut(ctx, facture.ID, domain.FactureEnvoyee)
	require.NoError(t, err)
	assert.Equal(t, domain.FactureEnvoyee, envoyee.Statut)

	payee, err := svc.ChangerStatut(ctx, facture.ID, domain.FacturePayee)
	require.NoError(t, err)
	assert.Equal(t, domain.FacturePayee, payee.Statut)
	require.NotNil(t, payee.DatePaiement)
	assert.Equal(t, domain.DateOnly(time.Now()), domain.DateOnly(*payee.DatePaiement))

	// Paid is terminal.
	_, err = svc.ChangerStatut(ctx, facture.ID, domain.FactureAnnulee)
	assert.ErrorIs(t, err, ErrTransitionStatut)
}

func TestFactureChangerStatutRejets(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := newFactureService(db)

	facture, err := svc.Create(ctx, domain.Facture{
		Annee:             2026,
		Mois:              9,
		NombreRepasServis: 10,
		PrixUnitaireRepas: decimal.RequireFromString("3.50"),
	})
	require.NoError(t, err)

	_, err = svc.ChangerStatut(ctx, facture.ID, domain.FactureStatut("EN_COURS"))
	assert.ErrorIs(t, err, ErrStatutInvalide)

	// A draft cannot be paid without being sent first.
	_, err = svc.ChangerStatut(ctx, facture.ID, domain.FacturePayee)
	assert.ErrorIs(t, err, ErrTransitionStatut)

	_, err = svc.ChangerStatut(ctx, 9999, domain.FactureEnvoyee)
	assert.ErrorIs(t, err, ErrFactureNotFound)
}

func TestFactureUpdateRecalculeTotal(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := newFactureService(db)

	facture, err := svc.Create(ctx, domain.Facture{
		Annee:             2026,
		Mois:              9,
		NombreRepasServis: 10,
		PrixUnitaireRepas: decimal.RequireFromString("3.50"),
	})
	require.NoError(t, err)

	facture.NombreRepasServis = 20
	updated, err := svc.Update(ctx, facture)
	require.NoError(t, err)

	assert.Equal(t, facture.Numero, updated.Numero)
	assert.True(t, updated.MontantTotal.Equal(decimal.RequireFromString("70.00")),
		"got %s", updated.MontantTotal)
}
