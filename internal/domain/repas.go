package domain

import "time"

// Repas records that one student ate on one date. At most one meal exists per
// (eleve, date) pair. The menu reference is optional: attendance is captured
// even when no menu was defined for the date.
type Repas struct {
	ID          uint      `json:"id"`
	EleveID     uint      `json:"eleve_id"`
	Eleve       *Eleve    `json:"eleve,omitempty"`
	MenuID      *uint     `json:"menu_id"`
	Menu        *Menu     `json:"menu,omitempty"`
	Date        time.Time `json:"date"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedByID *uint     `json:"created_by"`
}

// MarquageResult is the outcome of a bulk attendance-marking run. The batch
// never fails as a whole: students already marked, unknown or inactive are
// reported in Ignores.
type MarquageResult struct {
	RepasCrees int    `json:"repas_crees"`
	Ignores    []uint `json:"ignores,omitempty"`
}

// RepasStatistiques aggregates meal counts for a date range.
type RepasStatistiques struct {
	TotalRepas int               `json:"total_repas"`
	ParJour    []RepasParJour    `json:"par_jour"`
	ParEleve   []RepasParEleve   `json:"par_eleve"`
}

type RepasParJour struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

type RepasParEleve struct {
	EleveID uint   `json:"eleve_id"`
	Nom     string `json:"nom"`
	Prenom  string `json:"prenom"`
	Count   int    `json:"count"`
}

// DecompteJournalier is the daily tally of served meals.
type DecompteJournalier struct {
	Date         time.Time `json:"date"`
	NombreRepas  int       `json:"nombre_repas"`
	ElevesServis int       `json:"eleves_servis"`
	Menu         *Menu     `json:"menu,omitempty"`
	Repas        []Repas   `json:"repas"`
}

// DecompteMensuel is the monthly tally: total meals, distinct served students
// and the number of days on which at least one meal was recorded.
type DecompteMensuel struct {
	Annee              int            `json:"annee"`
	Mois               int            `json:"mois"`
	NombreRepas        int            `json:"nombre_repas"`
	NombreJoursTravail int            `json:"nombre_jours_travail"`
	ElevesServis       int            `json:"eleves_servis"`
	RepasParJour       []RepasParJour `json:"repas_par_jour"`
}
