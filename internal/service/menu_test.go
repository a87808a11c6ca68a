package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scolarest/cantine-api/internal/domain"
)

func TestMenuCreateRemplitJourSemaine(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := newMenuService(db)

	menu, err := svc.Create(ctx, domain.Menu{
		Date:          time.Date(2026, 9, 11, 10, 0, 0, 0, time.UTC),
		PlatPrincipal: "Poisson braise",
		Disponible:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, "VENDREDI", menu.JourSemaine)
	assert.Equal(t, time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC), domain.DateOnly(menu.Date))
}

func TestMenuCreateDateUnique(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := newMenuService(db)

	date := time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC)

	_, err := svc.Create(ctx, domain.Menu{Date: date, PlatPrincipal: "Poisson braise"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.Menu{Date: date, PlatPrincipal: "Couscous"})
	assert.ErrorIs(t, err, ErrMenuExists)
}

func TestMenuMois(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := newMenuService(db)

	for _, date := range []time.Time{
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	} {
		_, err := svc.Create(ctx, domain.Menu{Date: date, PlatPrincipal: "Plat du jour"})
		require.NoError(t, err)
	}

	menus, err := svc.Mois(ctx, 2026, 9)
	require.NoError(t, err)
	require.Len(t, menus, 2)
	assert.Equal(t, 1, menus[0].Date.Day())
	assert.Equal(t, 30, menus[1].Date.Day())
}

func TestMenuCalendrier(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := newMenuService(db)

	// September 2026 opens on a Tuesday, the grid starts Monday August 31.
	menuDate := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	menu, err := svc.Create(ctx, domain.Menu{Date: menuDate, PlatPrincipal: "Couscous"})
	require.NoError(t, err)

	grid, err := svc.Calendrier(ctx, 2026, 9)
	require.NoError(t, err)
	require.Len(t, grid, 42)

	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), grid[0].Date)
	assert.Equal(t, time.Monday, grid[0].Date.Weekday())
	assert.False(t, grid[0].DansLeMois)
	assert.True(t, grid[1].DansLeMois)

	var avecMenu int
	for _, cell := range grid {
		if cell.Menu == nil {
			continue
		}
		avecMenu++
		assert.Equal(t, menu.ID, cell.Menu.ID)
		assert.Equal(t, menuDate, domain.DateOnly(cell.Date))
		assert.True(t, cell.DansLeMois)
	}
	assert.Equal(t, 1, avecMenu)
}

func TestMoisBornes(t *testing.T) {
	from, to := moisBornes(2026, 2)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), to)

	from, to = moisBornes(2024, 2)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), to)

	_, to = moisBornes(2026, 12)
	assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), to)
}
