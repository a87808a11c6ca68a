package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository"
	"github.com/scolarest/cantine-api/internal/repository/dao"
)

func newProfilService(db *gorm.DB) *ProfilService {
	return NewProfilService(
		repository.NewProfilRepository(dao.NewProfilDAO(db)),
		repository.NewEleveRepository(dao.NewEleveDAO(db)),
		repository.NewRepasRepository(dao.NewRepasDAO(db)),
		repository.NewMenuRepository(dao.NewMenuDAO(db)),
		repository.NewInscriptionRepository(dao.NewInscriptionDAO(db)),
		repository.NewFactureRepository(dao.NewFactureDAO(db)),
	)
}

func TestTableauDeBord(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	awa := createEleve(t, db, "Awa", "Diop", true)
	createEleve(t, db, "Malik", "Sow", true)
	createEleve(t, db, "Fatou", "Ba", false)

	today := domain.DateOnly(time.Now())
	marquerRepas(t, db, awa.ID, today)

	menu, err := newMenuService(db).Create(ctx, domain.Menu{
		Date:          today,
		PlatPrincipal: "Couscous",
		Disponible:    true,
	})
	require.NoError(t, err)

	factures := newFactureService(db)
	facture, err := factures.Create(ctx, domain.Facture{
		Annee:             today.Year(),
		Mois:              int(today.Month()),
		NombreRepasServis: 10,
		PrixUnitaireRepas: decimal.RequireFromString("3.50"),
	})
	require.NoError(t, err)
	_, err = factures.ChangerStatut(ctx, facture.ID, domain.FactureEnvoyee)
	require.NoError(t, err)

	dashboard, err := newProfilService(db).TableauDeBord(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), dashboard.ElevesActifs)
	assert.Equal(t, int64(1), dashboard.RepasAujourdhui)
	assert.Equal(t, int64(1), dashboard.RepasDuMois)
	assert.Equal(t, int64(0), dashboard.InscritsDuMois)
	assert.Equal(t, int64(1), dashboard.FacturesEnvoyees)
	assert.True(t, dashboard.MontantEnAttente.Equal(decimal.RequireFromString("35.00")),
		"got %s", dashboard.MontantEnAttente)
	assert.True(t, dashboard.MontantPaye.IsZero())
	require.NotNil(t, dashboard.MenuDuJour)
	assert.Equal(t, menu.ID, dashboard.MenuDuJour.ID)
}

func TestTableauDeBordSansMenu(t *testing.T) {
	db := openTestDB(t)

	dashboard, err := newProfilService(db).TableauDeBord(context.Background())
	require.NoError(t, err)
	assert.Nil(t, dashboard.MenuDuJour)
	assert.Equal(t, int64(0), dashboard.ElevesActifs)
}

func TestProfilUpdateRoleInvalide(t *testing.T) {
	db := openTestDB(t)

	_, err := newProfilService(db).Update(context.Background(), domain.ProfilPrestataire{
		ID:   1,
		Role: domain.Role("SUPERVISEUR"),
	})
	assert.ErrorIs(t, err, ErrRoleInvalide)
}
