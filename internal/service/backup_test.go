package service

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scolarest/cantine-api/internal/repository"
	"github.com/scolarest/cantine-api/internal/repository/dao"
)

func TestBackupSauvegarderListerRestaurer(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := NewBackupService(dao.NewBackupDAO(db), t.TempDir())

	awa := createEleve(t, db, "Awa", "Diop", true)

	name, err := svc.Sauvegarder(ctx)
	require.NoError(t, err)
	assert.Contains(t, name, "cantine_")
	assert.Contains(t, name, ".json")

	backups, err := svc.Lister()
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Equal(t, name, backups[0].Nom)
	assert.Greater(t, backups[0].Taille, int64(0))

	// Diverge from the backup, then replay it.
	createEleve(t, db, "Malik", "Sow", true)

	require.NoError(t, svc.Restaurer(ctx, name))

	eleves, err := repository.NewEleveRepository(dao.NewEleveDAO(db)).List(ctx, repository.EleveFilter{})
	require.NoError(t, err)
	require.Len(t, eleves, 1)
	assert.Equal(t, awa.ID, eleves[0].ID)
}

func TestBackupExportJSON(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := NewBackupService(dao.NewBackupDAO(db), t.TempDir())

	createEleve(t, db, "Awa", "Diop", true)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportJSON(ctx, &buf))

	var snapshot dao.Snapshot
	require.NoError(t, json.Unmarshal(buf.Bytes(), &snapshot))
	assert.Equal(t, dao.SnapshotVersion, snapshot.Version)
	assert.Len(t, snapshot.Eleves, 1)
}

func TestBackupRestaurerNomInvalide(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	dir := t.TempDir()
	svc := NewBackupService(dao.NewBackupDAO(db), dir)

	// A stray file outside the backup directory must stay unreachable.
	outside := filepath.Join(dir, "..", "evasion.json")
	require.NoError(t, os.WriteFile(outside, []byte("{}"), 0o644))
	defer os.Remove(outside)

	assert.ErrorIs(t, svc.Restaurer(ctx, "../evasion.json"), ErrBackupNotFound)
	assert.ErrorIs(t, svc.Restaurer(ctx, "pas_un_json.txt"), ErrBackupNotFound)
	assert.ErrorIs(t, svc.Restaurer(ctx, "absent.json"), ErrBackupNotFound)
}

func TestBackupRestaurerJSONInvalide(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := NewBackupService(dao.NewBackupDAO(db), t.TempDir())

	err := svc.RestaurerJSON(ctx, bytes.NewBufferString("pas du json"))
	assert.ErrorIs(t, err, ErrSnapshotInvalid)

	err = svc.RestaurerJSON(ctx, bytes.NewBufferString(`{"version": 99}`))
	assert.ErrorIs(t, err, ErrSnapshotVersion)
}

func TestBackupListerRepertoireAbsent(t *testing.T) {
	db := openTestDB(t)
	svc := NewBackupService(dao.NewBackupDAO(db), filepath.Join(t.TempDir(), "inexistant"))

	backups, err := svc.Lister()
	require.NoError(t, err)
	assert.Empty(t, backups)
}
