package domain

import "time"

// InscriptionMensuelle registers a student's intent to eat at the canteen for
// a given month. Unique per (eleve, annee, mois). Enrollment is advisory: the
// attendance-marking flow falls back to all active students when a month has
// no enrollment rows at all.
type InscriptionMensuelle struct {
	ID          uint      `json:"id"`
	EleveID     uint      `json:"eleve_id"`
	Eleve       *Eleve    `json:"eleve,omitempty"`
	Annee       int       `json:"annee"`
	Mois        int       `json:"mois"`
	Inscrit     bool      `json:"inscrit"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedByID *uint     `json:"created_by"`
}
