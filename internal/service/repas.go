package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository"
)

var (
	ErrRepasExists   = repository.ErrRepasExists
	ErrRepasNotFound = repository.ErrRepasNotFound
	ErrEleveInactif  = errors.New("student is inactive")
)

type RepasRepository interface {
	Create(ctx context.Context, repas domain.Repas) (domain.Repas, error)
	CreateIfAbsent(ctx context.Context, repas domain.Repas) (bool, error)
	FindByID(ctx context.Context, id uint) (domain.Repas, error)
	List(ctx context.Context, filter repository.RepasFilter) ([]domain.Repas, error)
	Update(ctx context.Context, repas domain.Repas) (domain.Repas, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, filter repository.RepasFilter) (int64, error)
	CountDistinctEleves(ctx context.Context, from, to time.Time) (int64, error)
	CountDistinctDates(ctx context.Context, from, to time.Time) (int64, error)
	CountParJour(ctx context.Context, from, to time.Time) ([]domain.RepasParJour, error)
	CountParEleve(ctx context.Context, from, to time.Time, limit int) ([]domain.RepasParEleve, error)
	EleveIDsPourDate(ctx context.Context, date time.Time) ([]uint, error)
}

type RepasMenuRepository interface {
	FindByDate(ctx context.Context, date time.Time) (domain.Menu, error)
}

type RepasService struct {
	repo   RepasRepository
	eleves EleveRepository
	menus  RepasMenuRepository
}

func NewRepasService(repo RepasRepository, eleves EleveRepository, menus RepasMenuRepository) *RepasService {
	return &RepasService{
		repo:   repo,
		eleves: eleves,
		menus:  menus,
	}
}

// Marquer records one student's meal for a date. The day's menu is attached
// when one exists; attendance is captured either way.
func (s *RepasService) Marquer(ctx context.Context, eleveID uint, date time.Time, note string, createdBy *uint) (domain.Repas, error) {
	date = domain.DateOnly(date)

	eleve, err := s.eleves.FindByID(ctx, eleveID)
	if err != nil {
		return domain.Repas{}, fmt.Errorf("s.eleves.FindByID -> %w", err)
	}
	if !eleve.Actif {
		return domain.Repas{}, ErrEleveInactif
	}

	menuID, err := s.menuIDPourDate(ctx, date)
	if err != nil {
		return domain.Repas{}, err
	}

	created, err := s.repo.Create(ctx, domain.Repas{
		EleveID:     eleveID,
		MenuID:      menuID,
		Date:        date,
		Note:        note,
		CreatedByID: createdBy,
	})
	if err != nil {
		return domain.Repas{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// MarquerMultiples records meals for a batch of students on one date. The
// batch never fails as a whole: unknown students, inactive students and
// students already marked for the date are skipped and reported. Concurrent
// submissions of overlapping batches cannot double-mark a student.
func (s *RepasService) MarquerMultiples(ctx context.Context, eleveIDs []uint, date time.Time, createdBy *uint) (domain.MarquageResult, error) {
	date = domain.DateOnly(date)

	menuID, err := s.menuIDPourDate(ctx, date)
	if err != nil {
		return domain.MarquageResult{}, err
	}

	result := domain.MarquageResult{}
	for _, eleveID := range eleveIDs {
		eleve, err := s.eleves.FindByID(ctx, eleveID)
		if err != nil {
			if errors.Is(err, repository.ErrEleveNotFound) {
				result.Ignores = append(result.Ignores, eleveID)
				continue
			}

			return domain.MarquageResult{}, fmt.Errorf("s.eleves.FindByID -> %w", err)
		}
		if !eleve.Actif {
			result.Ignores = append(result.Ignores, eleveID)
			continue
		}

		created, err := s.repo.CreateIfAbsent(ctx, domain.Repas{
			EleveID:     eleveID,
			MenuID:      menuID,
			Date:        date,
			CreatedByID: createdBy,
		})
		if err != nil {
			return domain.MarquageResult{}, fmt.Errorf("s.repo.CreateIfAbsent -> %w", err)
		}
		if !created {
			result.Ignores = append(result.Ignores, eleveID)
			continue
		}
		result.RepasCrees++
	}

	return result, nil
}

func (s *RepasService) Get(ctx context.Context, id uint) (domain.Repas, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Repas{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return found, nil
}

func (s *RepasService) List(ctx context.Context, filter repository.RepasFilter) ([]domain.Repas, error) {
	repas, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return repas, nil
}

func (s *RepasService) Update(ctx context.Context, repas domain.Repas) (domain.Repas, error) {
	repas.Date = domain.DateOnly(repas.Date)

	updated, err := s.repo.Update(ctx, repas)
	if err != nil {
		return domain.Repas{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *RepasService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// Statistiques aggregates meal counts over a date range.
func (s *RepasService) Statistiques(ctx context.Context, from, to time.Time) (domain.RepasStatistiques, error) {
	from = domain.DateOnly(from)
	to = domain.DateOnly(to)

	total, err := s.repo.Count(ctx, repository.RepasFilter{DateFrom: &from, DateTo: &to})
	if err != nil {
		return domain.RepasStatistiques{}, fmt.Errorf("s.repo.Count -> %w", err)
	}

	parJour, err := s.repo.CountParJour(ctx, from, to)
	if err != nil {
		return domain.RepasStatistiques{}, fmt.Errorf("s.repo.CountParJour -> %w", err)
	}

	parEleve, err := s.repo.CountParEleve(ctx, from, to, 10)
	if err != nil {
		return domain.RepasStatistiques{}, fmt.Errorf("s.repo.CountParEleve -> %w", err)
	}

	return domain.RepasStatistiques{
		TotalRepas: int(total),
		ParJour:    parJour,
		ParEleve:   parEleve,
	}, nil
}

// DecompteJournalier tallies one day of service.
func (s *RepasService) DecompteJournalier(ctx context.Context, date time.Time) (domain.DecompteJournalier, error) {
	date = domain.DateOnly(date)

	repas, err := s.repo.List(ctx, repository.RepasFilter{Date: &date})
	if err != nil {
		return domain.DecompteJournalier{}, fmt.Errorf("s.repo.List -> %w", err)
	}

	decompte := domain.DecompteJournalier{
		Date:         date,
		NombreRepas:  len(repas),
		ElevesServis: len(repas),
		Repas:        repas,
	}

	menu, err := s.menus.FindByDate(ctx, date)
	if err == nil {
		decompte.Menu = &menu
	} else if !errors.Is(err, repository.ErrMenuNotFound) {
		return domain.DecompteJournalier{}, fmt.Errorf("s.menus.FindByDate -> %w", err)
	}

	return decompte, nil
}

// DecompteMensuel tallies one month: meals served, distinct students and the
// number of days with at least one meal. It is the source feeding invoice
// creation.
func (s *RepasService) DecompteMensuel(ctx context.Context, annee, mois int) (domain.DecompteMensuel, error) {
	from, to := moisBornes(annee, mois)

	total, err := s.repo.Count(ctx, repository.RepasFilter{DateFrom: &from, DateTo: &to})
	if err != nil {
		return domain.DecompteMensuel{}, fmt.Errorf("s.repo.Count -> %w", err)
	}

	eleves, err := s.repo.CountDistinctEleves(ctx, from, to)
	if err != nil {
		return domain.DecompteMensuel{}, fmt.Errorf("s.repo.CountDistinctEleves -> %w", err)
	}

	jours, err := s.repo.CountDistinctDates(ctx, from, to)
	if err != nil {
		return domain.DecompteMensuel{}, fmt.Errorf("s.repo.CountDistinctDates -> %w", err)
	}

	parJour, err := s.repo.CountParJour(ctx, from, to)
	if err != nil {
		return domain.DecompteMensuel{}, fmt.Errorf("s.repo.CountParJour -> %w", err)
	}

	return domain.DecompteMensuel{
		Annee:              annee,
		Mois:               mois,
		NombreRepas:        int(total),
		NombreJoursTravail: int(jours),
		ElevesServis:       int(eleves),
		RepasParJour:       parJour,
	}, nil
}

func (s *RepasService) menuIDPourDate(ctx context.Context, date time.Time) (*uint, error) {
	menu, err := s.menus.FindByDate(ctx, date)
	if err != nil {
		if errors.Is(err, repository.ErrMenuNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("s.menus.FindByDate -> %w", err)
	}

	return &menu.ID, nil
}
