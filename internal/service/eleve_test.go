package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository"
	"github.com/scolarest/cantine-api/internal/repository/dao"
)

func classeurEleves(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	header := []any{"Prenom", "Nom", "Classe", "Telephone parent", "Email parent"}
	if err := f.SetSheetRow(f.GetSheetName(0), "A1", &header); err != nil {
		t.Fatalf("header: %v", err)
	}
	for i, row := range rows {
		axis, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(f.GetSheetName(0), axis, &row); err != nil {
			t.Fatalf("row %d: %v", i, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	return &buf
}

func TestEleveImportExcel(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := newEleveService(db)

	buf := classeurEleves(t, [][]any{
		{"Awa", "Diop", "CM2", "0612345678", "parent.diop@example.org"},
		{"Malik", "Sow", "", "", ""},
		{"", "Ba", "CM2", "", ""},
	})

	result, err := svc.ImportExcel(ctx, buf)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Crees)
	require.Len(t, result.Ignores, 1)
	assert.Contains(t, result.Ignores[0], "ligne 4")

	eleves, err := svc.List(ctx, repository.EleveFilter{})
	require.NoError(t, err)
	require.Len(t, eleves, 2)

	// The unknown class was created on the fly.
	classes, err := repository.NewClasseRepository(dao.NewClasseDAO(db)).List(ctx)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "CM2", classes[0].Nom)

	for _, e := range eleves {
		assert.True(t, e.Actif)
		if e.Nom == "Diop" {
			require.NotNil(t, e.Classe)
			assert.Equal(t, "CM2", e.Classe.Nom)
			assert.Equal(t, "0612345678", e.TelephoneParent)
		} else {
			assert.Nil(t, e.ClasseID)
		}
	}
}

func TestEleveImportExcelReutiliseLaClasse(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := newEleveService(db)

	classes := repository.NewClasseRepository(dao.NewClasseDAO(db))
	existante, err := classes.Create(ctx, domain.Classe{Nom: "CM2"})
	require.NoError(t, err)

	buf := classeurEleves(t, [][]any{
		{"Awa", "Diop", "cm2", "", ""},
	})

	result, err := svc.ImportExcel(ctx, buf)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Crees)

	eleves, err := svc.List(ctx, repository.EleveFilter{})
	require.NoError(t, err)
	require.Len(t, eleves, 1)
	require.NotNil(t, eleves[0].ClasseID)
	assert.Equal(t, existante.ID, *eleves[0].ClasseID)
}

func TestEleveExportExcel(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	svc := newEleveService(db)

	createEleve(t, db, "Awa", "Diop", true)
	createEleve(t, db, "Malik", "Sow", true)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportExcel(ctx, repository.EleveFilter{}, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Eleves")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Prenom", rows[0][0])
	assert.Equal(t, "Awa", rows[1][0])
	assert.Equal(t, "Diop", rows[1][1])
}
