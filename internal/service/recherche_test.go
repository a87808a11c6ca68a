package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository"
	"github.com/scolarest/cantine-api/internal/repository/dao"
)

func TestRechercheGlobale(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	svc := NewRechercheService(
		repository.NewEleveRepository(dao.NewEleveDAO(db)),
		repository.NewMenuRepository(dao.NewMenuDAO(db)),
		repository.NewFactureRepository(dao.NewFactureDAO(db)),
	)

	createEleve(t, db, "Awa", "Diop", true)
	createEleve(t, db, "Malik", "Sow", true)

	_, err := newMenuService(db).Create(ctx, domain.Menu{
		Date:          time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		PlatPrincipal: "Couscous royal",
	})
	require.NoError(t, err)

	_, err = newFactureService(db).Create(ctx, domain.Facture{
		Annee:             2026,
		Mois:              9,
		NombreRepasServis: 10,
		PrixUnitaireRepas: decimal.RequireFromString("3.50"),
	})
	require.NoError(t, err)

	parNom, err := svc.Globale(ctx, "diop")
	require.NoError(t, err)
	assert.Len(t, parNom.Eleves, 1)
	assert.Empty(t, parNom.Menus)
	assert.Empty(t, parNom.Factures)

	parPlat, err := svc.Globale(ctx, "couscous")
	require.NoError(t, err)
	assert.Empty(t, parPlat.Eleves)
	assert.Len(t, parPlat.Menus, 1)

	parNumero, err := svc.Globale(ctx, "FAC-2026")
	require.NoError(t, err)
	assert.Len(t, parNumero.Factures, 1)
}

func TestRechercheGlobaleRequeteVide(t *testing.T) {
	db := openTestDB(t)

	svc := NewRechercheService(
		repository.NewEleveRepository(dao.NewEleveDAO(db)),
		repository.NewMenuRepository(dao.NewMenuDAO(db)),
		repository.NewFactureRepository(dao.NewFactureDAO(db)),
	)

	result, err := svc.Globale(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, result.Eleves)
	assert.Empty(t, result.Menus)
	assert.Empty(t, result.Factures)
}
