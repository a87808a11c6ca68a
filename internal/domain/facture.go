package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FactureStatut is the closed set of invoice states.
type FactureStatut string

const (
	FactureBrouillon FactureStatut = "BROUILLON"
	FactureEnvoyee   FactureStatut = "ENVOYEE"
	FacturePayee     FactureStatut = "PAYEE"
	FactureAnnulee   FactureStatut = "ANNULEE"
)

func (s FactureStatut) Valid() bool {
	switch s {
	case FactureBrouillon, FactureEnvoyee, FacturePayee, FactureAnnulee:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transition may leave this state.
func (s FactureStatut) Terminal() bool {
	return s == FacturePayee || s == FactureAnnulee
}

// CanTransitionTo enforces the invoice lifecycle: BROUILLON -> ENVOYEE ->
// PAYEE, with ANNULEE reachable from any non-terminal state.
func (s FactureStatut) CanTransitionTo(next FactureStatut) bool {
	if !next.Valid() || s.Terminal() {
		return false
	}
	switch next {
	case FactureAnnulee:
		return true
	case FactureEnvoyee:
		return s == FactureBrouillon
	case FacturePayee:
		return s == FactureEnvoyee
	default:
		return false
	}
}

// Facture is the provider's monthly bill to the school: a meal count priced
// at a unit rate.
type Facture struct {
	ID                 uint            `json:"id"`
	Numero             string          `json:"numero"`
	Annee              int             `json:"annee"`
	Mois               int             `json:"mois"`
	NombreJoursTravail int             `json:"nombre_jours_travail"`
	NombreRepasServis  int             `json:"nombre_repas_servis"`
	PrixUnitaireRepas  decimal.Decimal `json:"prix_unitaire_repas"`
	MontantTotal       decimal.Decimal `json:"montant_total"`
	Statut             FactureStatut   `json:"statut"`
	DateEmission       time.Time       `json:"date_emission"`
	DatePaiement       *time.Time      `json:"date_paiement"`
	Notes              string          `json:"notes"`
	CreatedAt          time.Time       `json:"created_at"`
	CreatedByID        *uint           `json:"created_by"`
}

// ComputeTotal recomputes the total as meals served times unit price.
func (f *Facture) ComputeTotal() {
	f.MontantTotal = decimal.NewFromInt(int64(f.NombreRepasServis)).Mul(f.PrixUnitaireRepas)
}

// FormatNumero renders the invoice number for a year, month and sequence
// value: FAC-2024-01-0001.
func FormatNumero(annee, mois, seq int) string {
	return fmt.Sprintf("FAC-%d-%02d-%04d", annee, mois, seq)
}
