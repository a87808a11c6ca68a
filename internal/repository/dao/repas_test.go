package dao

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepasInsertDuplicate(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	d := NewRepasDAO(db)

	eleve := seedEleve(t, db, "Awa", "Diop", true)
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	_, err := d.Insert(ctx, Repas{EleveID: eleve.ID, Date: date})
	require.NoError(t, err)

	_, err = d.Insert(ctx, Repas{EleveID: eleve.ID, Date: date})
	assert.ErrorIs(t, err, ErrRepasExists)
}

func TestRepasInsertIfAbsent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	d := NewRepasDAO(db)

	eleve := seedEleve(t, db, "Awa", "Diop", true)
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	created, err := d.InsertIfAbsent(ctx, Repas{EleveID: eleve.ID, Date: date})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = d.InsertIfAbsent(ctx, Repas{EleveID: eleve.ID, Date: date})
	require.NoError(t, err)
	assert.False(t, created)

	count, err := d.Count(ctx, RepasFilter{Date: &date})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// An other date for the same student is a new row.
	lendemain := date.AddDate(0, 0, 1)
	created, err = d.InsertIfAbsent(ctx, Repas{EleveID: eleve.ID, Date: lendemain})
	require.NoError(t, err)
	assert.True(t, created)
}

func TestRepasAggregates(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	d := NewRepasDAO(db)

	awa := seedEleve(t, db, "Awa", "Diop", true)
	malik := seedEleve(t, db, "Malik", "Sow", true)

	lundi := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	mardi := lundi.AddDate(0, 0, 1)

	mustInsertRepas(t, db, awa.ID, lundi)
	mustInsertRepas(t, db, malik.ID, lundi)
	mustInsertRepas(t, db, awa.ID, mardi)

	from, to := lundi, lundi.AddDate(0, 0, 6)

	count, err := d.Count(ctx, RepasFilter{DateFrom: &from, DateTo: &to})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	eleves, err := d.CountDistinctEleves(ctx, from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(2), eleves)

	jours, err := d.CountDistinctDates(ctx, from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(2), jours)

	parJour, err := d.CountParJour(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, parJour, 2)
	assert.Equal(t, 2, parJour[0].Count)
	assert.Equal(t, 1, parJour[1].Count)

	parEleve, err := d.CountParEleve(ctx, from, to, 1)
	require.NoError(t, err)
	require.Len(t, parEleve, 1)
	assert.Equal(t, awa.ID, parEleve[0].EleveID)
	assert.Equal(t, "Diop", parEleve[0].Nom)
	assert.Equal(t, 2, parEleve[0].Count)
}

func TestRepasEleveIDsPourDate(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	d := NewRepasDAO(db)

	awa := seedEleve(t, db, "Awa", "Diop", true)
	malik := seedEleve(t, db, "Malik", "Sow", true)

	lundi := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	mustInsertRepas(t, db, awa.ID, lundi)
	mustInsertRepas(t, db, malik.ID, lundi.AddDate(0, 0, 1))

	ids, err := d.EleveIDsPourDate(ctx, lundi)
	require.NoError(t, err)
	assert.Equal(t, []uint{awa.ID}, ids)
}
