package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scolarest/cantine-api/internal/domain"
)

func TestMarquerAttacheMenuDuJour(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	awa := createEleve(t, db, "Awa", "Diop", true)
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	menu, err := newMenuService(db).Create(ctx, domain.Menu{
		Date:          date,
		PlatPrincipal: "Couscous",
		Disponible:    true,
	})
	require.NoError(t, err)

	repas, err := newRepasService(db).Marquer(ctx, awa.ID, date, "sans sauce", nil)
	require.NoError(t, err)
	require.NotNil(t, repas.MenuID)
	assert.Equal(t, menu.ID, *repas.MenuID)
	assert.Equal(t, "sans sauce", repas.Note)
}

func TestMarquerSansMenu(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	awa := createEleve(t, db, "Awa", "Diop", true)

	repas, err := newRepasService(db).Marquer(ctx, awa.ID, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), "", nil)
	require.NoError(t, err)
	assert.Nil(t, repas.MenuID)
}

func TestMarquerEleveInactif(t *testing.T) {
	db := openTestDB(t)

	fatou := createEleve(t, db, "Fatou", "Ba", false)

	_, err := newRepasService(db).Marquer(context.Background(), fatou.ID, time.Now(), "", nil)
	assert.ErrorIs(t, err, ErrEleveInactif)
}

func TestMarquerDeuxFois(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := newRepasService(db)

	awa := createEleve(t, db, "Awa", "Diop", true)
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	_, err := svc.Marquer(ctx, awa.ID, date, "", nil)
	require.NoError(t, err)

	_, err = svc.Marquer(ctx, awa.ID, date, "", nil)
	assert.ErrorIs(t, err, ErrRepasExists)
}

func TestMarquerMultiplesPartiel(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := newRepasService(db)

	awa := createEleve(t, db, "Awa", "Diop", true)
	malik := createEleve(t, db, "Malik", "Sow", true)
	fatou := createEleve(t, db, "Fatou", "Ba", false)

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	marquerRepas(t, db, malik.ID, date)

	result, err := svc.MarquerMultiples(ctx, []uint{awa.ID, malik.ID, fatou.ID, 9999}, date, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.RepasCrees)
	assert.Equal(t, []uint{malik.ID, fatou.ID, 9999}, result.Ignores)

	// Replaying the batch creates nothing new.
	result, err = svc.MarquerMultiples(ctx, []uint{awa.ID, malik.ID}, date, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.RepasCrees)
	assert.Equal(t, []uint{awa.ID, malik.ID}, result.Ignores)
}

func TestDecompteJournalier(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	awa := createEleve(t, db, "Awa", "Diop", true)
	malik := createEleve(t, db, "Malik", "Sow", true)
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	marquerRepas(t, db, awa.ID, date)
	marquerRepas(t, db, malik.ID, date)
	marquerRepas(t, db, awa.ID, date.AddDate(0, 0, 1))

	decompte, err := newRepasService(db).DecompteJournalier(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, 2, decompte.NombreRepas)
	assert.Equal(t, 2, decompte.ElevesServis)
	assert.Nil(t, decompte.Menu)
	assert.Len(t, decompte.Repas, 2)
}

func TestDecompteMensuel(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	awa := createEleve(t, db, "Awa", "Diop", true)
	malik := createEleve(t, db, "Malik", "Sow", true)

	lundi := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	marquerRepas(t, db, awa.ID, lundi)
	marquerRepas(t, db, malik.ID, lundi)
	marquerRepas(t, db, awa.ID, lundi.AddDate(0, 0, 1))
	// Outside the month, must not count.
	marquerRepas(t, db, awa.ID, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))

	decompte, err := newRepasService(db).DecompteMensuel(ctx, 2026, 9)
	require.NoError(t, err)
	assert.Equal(t, 3, decompte.NombreRepas)
	assert.Equal(t, 2, decompte.NombreJoursTravail)
	assert.Equal(t, 2, decompte.ElevesServis)
	require.Len(t, decompte.RepasParJour, 2)
	assert.Equal(t, 2, decompte.RepasParJour[0].Count)
}
