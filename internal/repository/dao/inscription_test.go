package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInscriptionUniqueParMois(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	d := NewInscriptionDAO(db)

	awa := seedEleve(t, db, "Awa", "Diop", true)

	_, err := d.Insert(ctx, InscriptionMensuelle{EleveID: awa.ID, Annee: 2026, Mois: 9, Inscrit: true})
	require.NoError(t, err)

	_, err = d.Insert(ctx, InscriptionMensuelle{EleveID: awa.ID, Annee: 2026, Mois: 9, Inscrit: true})
	assert.ErrorIs(t, err, ErrInscriptionExists)

	// The same student may enroll for an other month.
	_, err = d.Insert(ctx, InscriptionMensuelle{EleveID: awa.ID, Annee: 2026, Mois: 10, Inscrit: true})
	assert.NoError(t, err)
}

func TestInscriptionCountInscrits(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	d := NewInscriptionDAO(db)

	awa := seedEleve(t, db, "Awa", "Diop", true)
	malik := seedEleve(t, db, "Malik", "Sow", true)

	_, err := d.Insert(ctx, InscriptionMensuelle{EleveID: awa.ID, Annee: 2026, Mois: 9, Inscrit: true})
	require.NoError(t, err)
	_, err = d.Insert(ctx, InscriptionMensuelle{EleveID: malik.ID, Annee: 2026, Mois: 9, Inscrit: false})
	require.NoError(t, err)

	count, err := d.CountInscrits(ctx, 2026, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestInscriptionListParEleve(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	d := NewInscriptionDAO(db)

	awa := seedEleve(t, db, "Awa", "Diop", true)
	malik := seedEleve(t, db, "Malik", "Sow", true)

	for _, mois := range []int{9, 10} {
		_, err := d.Insert(ctx, InscriptionMensuelle{EleveID: awa.ID, Annee: 2026, Mois: mois, Inscrit: true})
		require.NoError(t, err)
	}
	_, err := d.Insert(ctx, InscriptionMensuelle{EleveID: malik.ID, Annee: 2026, Mois: 9, Inscrit: true})
	require.NoError(t, err)

	inscriptions, err := d.List(ctx, InscriptionFilter{EleveID: &awa.ID})
	require.NoError(t, err)
	require.Len(t, inscriptions, 2)
	assert.Equal(t, 10, inscriptions[0].Mois)
	assert.Equal(t, "Diop", inscriptions[0].Eleve.Nom)
}
