package domain

import "time"

// Role is the closed set of roles a canteen actor can hold.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RolePrestataire Role = "PRESTATAIRE"
)

// Valid reports whether the role is one of the supported values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RolePrestataire
}

// ProfilPrestataire is the canteen profile attached one-to-one to a user
// identity. Its role decides what the actor may do.
type ProfilPrestataire struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	User       User      `json:"user"`
	Role       Role      `json:"role"`
	Telephone  string    `json:"telephone"`
	Entreprise string    `json:"entreprise"`
	Actif      bool      `json:"actif"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (p ProfilPrestataire) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p ProfilPrestataire) IsPrestataire() bool {
	return p.Role == RolePrestataire
}

// Actor is the resolved identity of an authenticated request. Exactly one of
// the three states holds: admin profile, prestataire profile, or no profile
// at all. Access-control branches switch on this instead of probing for an
// optional association.
type Actor struct {
	User   User
	Profil *ProfilPrestataire
}

// HasProfile reports whether the actor carries any canteen profile.
func (a Actor) HasProfile() bool {
	return a.Profil != nil
}

// IsAdmin reports whether the actor holds an active admin profile.
func (a Actor) IsAdmin() bool {
	return a.Profil != nil && a.Profil.Actif && a.Profil.IsAdmin()
}

// IsPrestataireOrAdmin reports whether the actor holds any active profile.
// Prestataire operations are open to admins as well.
func (a Actor) IsPrestataireOrAdmin() bool {
	return a.Profil != nil && a.Profil.Actif
}
