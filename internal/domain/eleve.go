package domain

import "time"

// Eleve is a student registered with the canteen. A student belongs to at
// most one class; the class reference survives as nil when the class goes
// away. Students are retired through the Actif flag rather than deleted.
type Eleve struct {
	ID              uint       `json:"id"`
	Prenom          string     `json:"prenom"`
	Nom             string     `json:"nom"`
	ClasseID        *uint      `json:"classe_id"`
	Classe          *Classe    `json:"classe,omitempty"`
	DateInscription time.Time  `json:"date_inscription"`
	Actif           bool       `json:"actif"`
	TelephoneParent string     `json:"telephone_parent"`
	EmailParent     string     `json:"email_parent"`
	Photo           string     `json:"photo"`
	Notes           string     `json:"notes"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// DisplayName renders "Prenom Nom (Classe)" the way lists and reports show a
// student. Students without a class read "Sans classe".
func (e Eleve) DisplayName() string {
	classe := "Sans classe"
	if e.Classe != nil {
		classe = e.Classe.Nom
	}
	return e.Prenom + " " + e.Nom + " (" + classe + ")"
}
