package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository"
)

var ErrEleveNotFound = repository.ErrEleveNotFound

const eleveSheetName = "Eleves"

type EleveRepository interface {
	Create(ctx context.Context, eleve domain.Eleve) (domain.Eleve, error)
	FindByID(ctx context.Context, id uint) (domain.Eleve, error)
	List(ctx context.Context, filter repository.EleveFilter) ([]domain.Eleve, error)
	ListPourMarquage(ctx context.Context, annee, mois int) ([]domain.Eleve, error)
	Update(ctx context.Context, eleve domain.Eleve) (domain.Eleve, error)
	Delete(ctx context.Context, id uint) error
	CountActifs(ctx context.Context) (int64, error)
}

// ImportResult summarizes a spreadsheet import. Bad rows are skipped and
// reported, they never abort the rows that parse.
type ImportResult struct {
	Crees   int      `json:"crees"`
	Ignores []string `json:"ignores,omitempty"`
}

type EleveService struct {
	repo    EleveRepository
	classes ClasseRepository
}

func NewEleveService(repo EleveRepository, classes ClasseRepository) *EleveService {
	return &EleveService{
		repo:    repo,
		classes: classes,
	}
}

func (s *EleveService) Create(ctx context.Context, eleve domain.Eleve) (domain.Eleve, error) {
	if eleve.DateInscription.IsZero() {
		eleve.DateInscription = domain.DateOnly(time.Now())
	} else {
		eleve.DateInscription = domain.DateOnly(eleve.DateInscription)
	}

	created, err := s.repo.Create(ctx, eleve)
	if err != nil {
		return domain.Eleve{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EleveService) Get(ctx context.Context, id uint) (domain.Eleve, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Eleve{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return found, nil
}

func (s *EleveService) List(ctx context.Context, filter repository.EleveFilter) ([]domain.Eleve, error) {
	eleves, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return eleves, nil
}

// ListPourMarquage returns the students an attendance sheet should show for a
// month: the enrolled ones, or every active student when the month has no
// enrollment at all.
func (s *EleveService) ListPourMarquage(ctx context.Context, annee, mois int) ([]domain.Eleve, error) {
	eleves, err := s.repo.ListPourMarquage(ctx, annee, mois)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListPourMarquage -> %w", err)
	}

	return eleves, nil
}

func (s *EleveService) Update(ctx context.Context, eleve domain.Eleve) (domain.Eleve, error) {
	updated, err := s.repo.Update(ctx, eleve)
	if err != nil {
		return domain.Eleve{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *EleveService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// ImportExcel loads students from a spreadsheet. Expected columns, first row
// being a header: Prenom, Nom, Classe, Telephone parent, Email parent.
// Unknown class names are created on the fly.
func (s *EleveService) ImportExcel(ctx context.Context, r io.Reader) (ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("excelize.OpenReader -> %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return ImportResult{}, fmt.Errorf("f.GetRows -> %w", err)
	}

	classesParNom, err := s.classesParNom(ctx)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{}
	for i, row := range rows {
		if i == 0 {
			continue
		}

		prenom := cell(row, 0)
		nom := cell(row, 1)
		if prenom == "" || nom == "" {
			result.Ignores = append(result.Ignores, fmt.Sprintf("ligne %d: prenom ou nom manquant", i+1))
			continue
		}

		eleve := domain.Eleve{
			Prenom:          prenom,
			Nom:             nom,
			Actif:           true,
			TelephoneParent: cell(row, 3),
			EmailParent:     cell(row, 4),
		}

		if nomClasse := cell(row, 2); nomClasse != "" {
			classeID, err := s.resolveClasse(ctx, classesParNom, nomClasse)
			if err != nil {
				result.Ignores = append(result.Ignores, fmt.Sprintf("ligne %d: %v", i+1, err))
				continue
			}
			eleve.ClasseID = &classeID
		}

		if _, err := s.Create(ctx, eleve); err != nil {
			result.Ignores = append(result.Ignores, fmt.Sprintf("ligne %d: %v", i+1, err))
			continue
		}
		result.Crees++
	}

	return result, nil
}

// ExportExcel writes the student list as a spreadsheet.
func (s *EleveService) ExportExcel(ctx context.Context, filter repository.EleveFilter, w io.Writer) error {
	eleves, err := s.List(ctx, filter)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), eleveSheetName); err != nil {
		return fmt.Errorf("f.SetSheetName -> %w", err)
	}

	headers := []any{"Prenom", "Nom", "Classe", "Telephone parent", "Email parent", "Actif", "Date inscription"}
	if err := f.SetSheetRow(eleveSheetName, "A1", &headers); err != nil {
		return fmt.Errorf("f.SetSheetRow -> %w", err)
	}

	for i, e := range eleves {
		classe := ""
		if e.Classe != nil {
			classe = e.Classe.Nom
		}

		row := []any{
			e.Prenom,
			e.Nom,
			classe,
			e.TelephoneParent,
			e.EmailParent,
			e.Actif,
			e.DateInscription.Format("2006-01-02"),
		}
		axis := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(eleveSheetName, axis, &row); err != nil {
			return fmt.Errorf("f.SetSheetRow -> %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("f.Write -> %w", err)
	}

	return nil
}

func (s *EleveService) classesParNom(ctx context.Context) (map[string]uint, error) {
	classes, err := s.classes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.classes.List -> %w", err)
	}

	byName := make(map[string]uint, len(classes))
	for _, c := range classes {
		byName[strings.ToLower(c.Nom)] = c.ID
	}

	return byName, nil
}

func (s *EleveService) resolveClasse(ctx context.Context, byName map[string]uint, nom string) (uint, error) {
	if id, ok := byName[strings.ToLower(nom)]; ok {
		return id, nil
	}

	created, err := s.classes.Create(ctx, domain.Classe{Nom: nom})
	if err != nil {
		if errors.Is(err, repository.ErrClasseExists) {
			return 0, fmt.Errorf("classe %q: %w", nom, err)
		}

		return 0, fmt.Errorf("s.classes.Create -> %w", err)
	}
	byName[strings.ToLower(nom)] = created.ID

	return created.ID, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
