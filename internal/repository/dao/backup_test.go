package dao

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupDumpRestoreRoundtrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	d := NewBackupDAO(db)

	classe := Classe{Nom: "CM2"}
	require.NoError(t, db.Create(&classe).Error)

	awa := seedEleve(t, db, "Awa", "Diop", true)
	mustInsertRepas(t, db, awa.ID, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC))

	snapshot, err := d.Dump(ctx)
	require.NoError(t, err)
	assert.Equal(t, SnapshotVersion, snapshot.Version)
	assert.Len(t, snapshot.Classes, 1)
	assert.Len(t, snapshot.Eleves, 1)
	assert.Len(t, snapshot.Repas, 1)

	// Diverge from the snapshot, then restore it.
	seedEleve(t, db, "Malik", "Sow", true)
	require.NoError(t, db.Create(&Classe{Nom: "CE1"}).Error)

	require.NoError(t, d.Restore(ctx, snapshot))

	var classes int64
	require.NoError(t, db.Model(&Classe{}).Count(&classes).Error)
	assert.Equal(t, int64(1), classes)

	var eleves []Eleve
	require.NoError(t, db.Find(&eleves).Error)
	require.Len(t, eleves, 1)
	assert.Equal(t, awa.ID, eleves[0].ID)
	assert.Equal(t, "Diop", eleves[0].Nom)

	var repas int64
	require.NoError(t, db.Model(&Repas{}).Count(&repas).Error)
	assert.Equal(t, int64(1), repas)
}

func TestBackupRestoreEmptySnapshot(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	d := NewBackupDAO(db)

	seedEleve(t, db, "Awa", "Diop", true)

	require.NoError(t, d.Restore(ctx, Snapshot{Version: SnapshotVersion}))

	var eleves int64
	require.NoError(t, db.Model(&Eleve{}).Count(&eleves).Error)
	assert.Equal(t, int64(0), eleves)
}
