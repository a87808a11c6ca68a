package domain

import "time"

type User struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Prenom    string    `json:"prenom"`
	Nom       string    `json:"nom"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName returns "Prenom Nom", falling back to the username when both
// name fields are empty.
func (u User) FullName() string {
	if u.Prenom == "" && u.Nom == "" {
		return u.Username
	}
	if u.Prenom == "" {
		return u.Nom
	}
	if u.Nom == "" {
		return u.Prenom
	}
	return u.Prenom + " " + u.Nom
}
