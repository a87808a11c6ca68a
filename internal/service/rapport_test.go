package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository"
	"github.com/scolarest/cantine-api/internal/repository/dao"
)

func TestPeriode(t *testing.T) {
	// 2026-09-09 is a Wednesday.
	mercredi := time.Date(2026, 9, 9, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		typ   RapportType
		debut time.Time
		fin   time.Time
	}{
		{
			name:  "journalier",
			typ:   RapportJournalier,
			debut: time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC),
			fin:   time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "hebdomadaire",
			typ:   RapportHebdomadaire,
			debut: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
			fin:   time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "mensuel",
			typ:   RapportMensuel,
			debut: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			fin:   time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debut, fin, err := Periode(tt.typ, mercredi)
			require.NoError(t, err)
			assert.Equal(t, tt.debut, debut)
			assert.Equal(t, tt.fin, fin)
		})
	}
}

func TestPeriodeSemaineDepuisLundi(t *testing.T) {
	lundi := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	debut, fin, err := Periode(RapportHebdomadaire, lundi)
	require.NoError(t, err)
	assert.Equal(t, lundi, debut)
	assert.Equal(t, lundi.AddDate(0, 0, 6), fin)
}

func TestPeriodeSemaineDepuisDimanche(t *testing.T) {
	dimanche := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)

	debut, _, err := Periode(RapportHebdomadaire, dimanche)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), debut)
}

func TestPeriodeTypeInconnu(t *testing.T) {
	_, _, err := Periode(RapportType("ANNUEL"), time.Now())
	assert.ErrorIs(t, err, ErrRapportType)
}

func TestCompiler(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	awa := createEleve(t, db, "Awa", "Diop", true)
	malik := createEleve(t, db, "Malik", "Sow", true)

	lundi := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	_, err := newMenuService(db).Create(ctx, domain.Menu{
		Date:          lundi,
		PlatPrincipal: "Couscous",
		Disponible:    true,
	})
	require.NoError(t, err)

	marquerRepas(t, db, awa.ID, lundi)
	marquerRepas(t, db, malik.ID, lundi)
	marquerRepas(t, db, awa.ID, lundi.AddDate(0, 0, 1))
	// Outside the week, must not appear.
	marquerRepas(t, db, awa.ID, lundi.AddDate(0, 0, 7))

	svc := NewRapportService(repository.NewRepasRepository(dao.NewRepasDAO(db)))
	rapport, err := svc.Compiler(ctx, RapportHebdomadaire, lundi)
	require.NoError(t, err)

	assert.Equal(t, RapportHebdomadaire, rapport.Type)
	assert.Equal(t, lundi, rapport.Debut)
	assert.Equal(t, lundi.AddDate(0, 0, 6), rapport.Fin)
	assert.Equal(t, 3, rapport.TotalRepas)
	assert.Equal(t, 2, rapport.ElevesServis)
	assert.Equal(t, 2, rapport.JoursServis)
	require.Len(t, rapport.Lignes, 3)

	for _, ligne := range rapport.Lignes {
		if ligne.Date == "2026-09-07" {
			assert.Equal(t, "Couscous", ligne.PlatPrincipal)
		} else {
			assert.Empty(t, ligne.PlatPrincipal)
		}
		assert.NotEmpty(t, ligne.Eleve)
	}
}

func TestExporterFormatInconnu(t *testing.T) {
	db := openTestDB(t)
	svc := NewRapportService(repository.NewRepasRepository(dao.NewRepasDAO(db)))

	err := svc.Exporter(context.Background(), RapportJournalier, RapportFormat("CSV"), time.Now(), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrRapportFormat)
}

func TestRapportRenderExcel(t *testing.T) {
	rapport := Rapport{
		Type:  RapportJournalier,
		Debut: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		Fin:   time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		Lignes: []RapportRow{
			{Date: "2026-09-07", Eleve: "Awa Diop", Classe: "CM2", PlatPrincipal: "Couscous"},
		},
		TotalRepas:   1,
		ElevesServis: 1,
		JoursServis:  1,
	}

	var buf bytes.Buffer
	require.NoError(t, rapport.RenderExcel(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Rapport")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Date", "Eleve", "Classe", "Plat principal"}, rows[3])
	assert.Equal(t, []string{"2026-09-07", "Awa Diop", "CM2", "Couscous"}, rows[4])
}

func TestRapportRenderPDF(t *testing.T) {
	rapport := Rapport{
		Type:  RapportJournalier,
		Debut: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		Fin:   time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		Lignes: []RapportRow{
			{Date: "2026-09-07", Eleve: "Awa Diop", Classe: "CM2", PlatPrincipal: "Couscous"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, rapport.RenderPDF(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
