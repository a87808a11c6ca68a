package domain

import "time"

// joursSemaine maps Go weekdays to the French labels stored on a menu. The
// table is fixed so the label never depends on the process locale.
var joursSemaine = map[time.Weekday]string{
	time.Monday:    "LUNDI",
	time.Tuesday:   "MARDI",
	time.Wednesday: "MERCREDI",
	time.Thursday:  "JEUDI",
	time.Friday:    "VENDREDI",
	time.Saturday:  "SAMEDI",
	time.Sunday:    "DIMANCHE",
}

// JourSemaine returns the uppercase French weekday label for a date.
func JourSemaine(date time.Time) string {
	return joursSemaine[date.Weekday()]
}

// Menu is the canteen menu for one calendar date. Exactly one menu may exist
// per date.
type Menu struct {
	ID             uint      `json:"id"`
	Date           time.Time `json:"date"`
	JourSemaine    string    `json:"jour_semaine"`
	PlatPrincipal  string    `json:"plat_principal"`
	Accompagnement string    `json:"accompagnement"`
	Dessert        string    `json:"dessert"`
	Image          string    `json:"image"`
	Disponible     bool      `json:"disponible"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FillJourSemaine derives the weekday label from the date when none was
// supplied.
func (m *Menu) FillJourSemaine() {
	if m.JourSemaine == "" {
		m.JourSemaine = JourSemaine(m.Date)
	}
}
