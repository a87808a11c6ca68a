package domain

import "time"

// Classe is a school class (6ème, Seconde, ...). Nom is unique.
type Classe struct {
	ID        uint      `json:"id"`
	Nom       string    `json:"nom"`
	Niveau    string    `json:"niveau"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
