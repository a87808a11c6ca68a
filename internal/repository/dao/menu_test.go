package dao

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuDeleteDetacheRepas(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	d := NewMenuDAO(db)

	menu, err := d.Insert(ctx, Menu{
		Date:          time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		JourSemaine:   "LUNDI",
		PlatPrincipal: "Thieboudienne",
		Disponible:    true,
	})
	require.NoError(t, err)

	awa := seedEleve(t, db, "Awa", "Diop", true)
	repas, err := NewRepasDAO(db).Insert(ctx, Repas{
		EleveID: awa.ID,
		Date:    menu.Date,
		MenuID:  &menu.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, repas.MenuID)

	require.NoError(t, d.Delete(ctx, menu.ID))

	// The meal row survives, detached from the deleted menu.
	var kept Repas
	require.NoError(t, db.First(&kept, repas.ID).Error)
	assert.Nil(t, kept.MenuID)
}
