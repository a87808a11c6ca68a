package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository"
	"github.com/scolarest/cantine-api/internal/repository/dao"
)

func newInscriptionService(db *gorm.DB) *InscriptionService {
	return NewInscriptionService(
		repository.NewInscriptionRepository(dao.NewInscriptionDAO(db)),
		repository.NewEleveRepository(dao.NewEleveDAO(db)),
	)
}

func TestInscriptionCreateEleveInconnu(t *testing.T) {
	db := openTestDB(t)

	_, err := newInscriptionService(db).Create(context.Background(), domain.InscriptionMensuelle{
		EleveID: 9999,
		Annee:   2026,
		Mois:    9,
		Inscrit: true,
	})
	assert.ErrorIs(t, err, ErrEleveNotFound)
}

func TestInscrireGroupe(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := newInscriptionService(db)

	awa := createEleve(t, db, "Awa", "Diop", true)
	malik := createEleve(t, db, "Malik", "Sow", true)

	_, err := svc.Create(ctx, domain.InscriptionMensuelle{
		EleveID: awa.ID,
		Annee:   2026,
		Mois:    9,
		Inscrit: true,
	})
	require.NoError(t, err)

	// Already-enrolled and unknown students are skipped, not fatal.
	count, err := svc.InscrireGroupe(ctx, []uint{awa.ID, malik.ID, 9999}, 2026, 9, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	total, err := svc.CountInscrits(ctx, 2026, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
