package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/xuri/excelize/v2"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository"
)

var (
	ErrRapportType   = errors.New("unknown report type")
	ErrRapportFormat = errors.New("unknown report format")
)

// RapportType selects the period a report covers around its reference date.
type RapportType string

const (
	RapportJournalier   RapportType = "JOURNALIER"
	RapportHebdomadaire RapportType = "HEBDOMADAIRE"
	RapportMensuel      RapportType = "MENSUEL"
)

// RapportFormat selects the rendered output.
type RapportFormat string

const (
	FormatPDF  RapportFormat = "PDF"
	FormatXLSX RapportFormat = "XLSX"
)

const rapportSheetName = "Rapport"

// RapportRow is one served meal, flattened for rendering. Both output
// formats derive from the same rows so their content never diverges.
type RapportRow struct {
	Date          string `json:"date"`
	Eleve         string `json:"eleve"`
	Classe        string `json:"classe"`
	PlatPrincipal string `json:"plat_principal"`
}

// Rapport is the compiled report: its period, the rows and the tallies.
type Rapport struct {
	Type         RapportType  `json:"type"`
	Debut        time.Time    `json:"debut"`
	Fin          time.Time    `json:"fin"`
	Lignes       []RapportRow `json:"lignes"`
	TotalRepas   int          `json:"total_repas"`
	ElevesServis int          `json:"eleves_servis"`
	JoursServis  int          `json:"jours_servis"`
}

type RapportRepasRepository interface {
	List(ctx context.Context, filter repository.RepasFilter) ([]domain.Repas, error)
}

type RapportService struct {
	repas RapportRepasRepository
}

func NewRapportService(repas RapportRepasRepository) *RapportService {
	return &RapportService{
		repas: repas,
	}
}

// Periode resolves a report type and reference date to its date range. Weeks
// start on Monday.
func Periode(t RapportType, ref time.Time) (time.Time, time.Time, error) {
	ref = domain.DateOnly(ref)

	switch t {
	case RapportJournalier:
		return ref, ref, nil
	case RapportHebdomadaire:
		offset := (int(ref.Weekday()) + 6) % 7
		debut := ref.AddDate(0, 0, -offset)
		return debut, debut.AddDate(0, 0, 6), nil
	case RapportMensuel:
		debut, fin := moisBornes(ref.Year(), int(ref.Month()))
		return debut, fin, nil
	default:
		return time.Time{}, time.Time{}, ErrRapportType
	}
}

// Compiler builds the report for a type and reference date.
func (s *RapportService) Compiler(ctx context.Context, t RapportType, ref time.Time) (Rapport, error) {
	debut, fin, err := Periode(t, ref)
	if err != nil {
		return Rapport{}, err
	}

	repas, err := s.repas.List(ctx, repository.RepasFilter{DateFrom: &debut, DateTo: &fin})
	if err != nil {
		return Rapport{}, fmt.Errorf("s.repas.List -> %w", err)
	}

	rapport := Rapport{
		Type:   t,
		Debut:  debut,
		Fin:    fin,
		Lignes: make([]RapportRow, 0, len(repas)),
	}

	eleves := make(map[uint]struct{})
	jours := make(map[string]struct{})
	for _, r := range repas {
		row := RapportRow{
			Date: r.Date.Format("2006-01-02"),
		}
		if r.Eleve != nil {
			row.Eleve = r.Eleve.Prenom + " " + r.Eleve.Nom
			if r.Eleve.Classe != nil {
				row.Classe = r.Eleve.Classe.Nom
			}
		}
		if r.Menu != nil {
			row.PlatPrincipal = r.Menu.PlatPrincipal
		}
		rapport.Lignes = append(rapport.Lignes, row)

		eleves[r.EleveID] = struct{}{}
		jours[row.Date] = struct{}{}
	}

	rapport.TotalRepas = len(repas)
	rapport.ElevesServis = len(eleves)
	rapport.JoursServis = len(jours)

	return rapport, nil
}

// Exporter compiles and renders a report in the requested format.
func (s *RapportService) Exporter(ctx context.Context, t RapportType, format RapportFormat, ref time.Time, w io.Writer) error {
	rapport, err := s.Compiler(ctx, t, ref)
	if err != nil {
		return err
	}

	switch format {
	case FormatPDF:
		return rapport.RenderPDF(w)
	case FormatXLSX:
		return rapport.RenderExcel(w)
	default:
		return ErrRapportFormat
	}
}

func (r Rapport) titre() string {
	return fmt.Sprintf("Rapport cantine %s du %s au %s",
		r.Type, r.Debut.Format("02/01/2006"), r.Fin.Format("02/01/2006"))
}

func (r Rapport) resume() string {
	return fmt.Sprintf("Repas servis: %d    Eleves servis: %d    Jours de service: %d",
		r.TotalRepas, r.ElevesServis, r.JoursServis)
}

// RenderPDF writes the report as a PDF document.
func (r Rapport) RenderPDF(w io.Writer) error {
	cfg := config.NewBuilder().WithPageNumber().Build()
	m := maroto.New(cfg)

	m.AddRow(12, text.NewCol(12, r.titre(),
		props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Center}))
	m.AddRow(8, text.NewCol(12, r.resume(), props.Text{Size: 10}))

	m.AddRow(8,
		text.NewCol(3, "Date", props.Text{Style: fontstyle.Bold}),
		text.NewCol(4, "Eleve", props.Text{Style: fontstyle.Bold}),
		text.NewCol(2, "Classe", props.Text{Style: fontstyle.Bold}),
		text.NewCol(3, "Plat principal", props.Text{Style: fontstyle.Bold}),
	)
	for _, ligne := range r.Lignes {
		m.AddRow(6,
			text.NewCol(3, ligne.Date),
			text.NewCol(4, ligne.Eleve),
			text.NewCol(2, ligne.Classe),
			text.NewCol(3, ligne.PlatPrincipal),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("m.Generate -> %w", err)
	}

	if _, err := w.Write(doc.GetBytes()); err != nil {
		return fmt.Errorf("w.Write -> %w", err)
	}

	return nil
}

// RenderExcel writes the report as a spreadsheet.
func (r Rapport) RenderExcel(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), rapportSheetName); err != nil {
		return fmt.Errorf("f.SetSheetName -> %w", err)
	}

	titre := []any{r.titre()}
	if err := f.SetSheetRow(rapportSheetName, "A1", &titre); err != nil {
		return fmt.Errorf("f.SetSheetRow -> %w", err)
	}
	resume := []any{r.resume()}
	if err := f.SetSheetRow(rapportSheetName, "A2", &resume); err != nil {
		return fmt.Errorf("f.SetSheetRow -> %w", err)
	}

	headers := []any{"Date", "Eleve", "Classe", "Plat principal"}
	if err := f.SetSheetRow(rapportSheetName, "A4", &headers); err != nil {
		return fmt.Errorf("f.SetSheetRow -> %w", err)
	}
	for i, ligne := range r.Lignes {
		row := []any{ligne.Date, ligne.Eleve, ligne.Classe, ligne.PlatPrincipal}
		axis := fmt.Sprintf("A%d", i+5)
		if err := f.SetSheetRow(rapportSheetName, axis, &row); err != nil {
			return fmt.Errorf("f.SetSheetRow -> %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("f.Write -> %w", err)
	}

	return nil
}

// FacturePDF renders one invoice as a PDF document.
func FacturePDF(facture domain.Facture, w io.Writer) error {
	cfg := config.NewBuilder().Build()
	m := maroto.New(cfg)

	m.AddRow(12, text.NewCol(12,
		fmt.Sprintf("Facture %s", facture.Numero),
		props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Center},
	))
	m.AddRow(8, text.NewCol(12,
		fmt.Sprintf("Periode: %02d/%d    Statut: %s", facture.Mois, facture.Annee, facture.Statut),
		props.Text{Size: 10},
	))
	m.AddRow(8, text.NewCol(12,
		fmt.Sprintf("Emise le %s", facture.DateEmission.Format("02/01/2006")),
		props.Text{Size: 10},
	))

	m.AddRow(8,
		text.NewCol(6, "Repas servis", props.Text{Style: fontstyle.Bold}),
		text.NewCol(6, fmt.Sprintf("%d", facture.NombreRepasServis), props.Text{Align: align.Right}),
	)
	m.AddRow(8,
		text.NewCol(6, "Prix unitaire", props.Text{Style: fontstyle.Bold}),
		text.NewCol(6, facture.PrixUnitaireRepas.StringFixed(2)+" EUR", props.Text{Align: align.Right}),
	)
	m.AddRow(10,
		text.NewCol(6, "Montant total", props.Text{Style: fontstyle.Bold, Size: 12}),
		text.NewCol(6, facture.MontantTotal.StringFixed(2)+" EUR", props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("m.Generate -> %w", err)
	}

	if _, err := w.Write(doc.GetBytes()); err != nil {
		return fmt.Errorf("w.Write -> %w", err)
	}

	return nil
}
