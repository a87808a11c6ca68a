package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository"
)

// Recherche is the cross-entity search result.
type Recherche struct {
	Eleves   []domain.Eleve   `json:"eleves"`
	Menus    []domain.Menu    `json:"menus"`
	Factures []domain.Facture `json:"factures"`
}

type RechercheService struct {
	eleves   EleveRepository
	menus    MenuRepository
	factures FactureRepository
}

func NewRechercheService(eleves EleveRepository, menus MenuRepository, factures FactureRepository) *RechercheService {
	return &RechercheService{
		eleves:   eleves,
		menus:    menus,
		factures: factures,
	}
}

// Globale searches students by name, menus by dish and invoices by number
// with one query string. A blank query returns empty results.
func (s *RechercheService) Globale(ctx context.Context, query string) (Recherche, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Recherche{}, nil
	}

	eleves, err := s.eleves.List(ctx, repository.EleveFilter{Search: query})
	if err != nil {
		return Recherche{}, fmt.Errorf("s.eleves.List -> %w", err)
	}

	menus, err := s.menus.List(ctx, repository.MenuFilter{Search: query})
	if err != nil {
		return Recherche{}, fmt.Errorf("s.menus.List -> %w", err)
	}

	factures, err := s.factures.List(ctx, repository.FactureFilter{Numero: query})
	if err != nil {
		return Recherche{}, fmt.Errorf("s.factures.List -> %w", err)
	}

	return Recherche{
		Eleves:   eleves,
		Menus:    menus,
		Factures: factures,
	}, nil
}
