package response

import (
	"github.com/scolarest/cantine-api/internal/domain"
)

type LoginResponse struct {
	Token  string                    `json:"token"`
	User   domain.User               `json:"user"`
	Profil *domain.ProfilPrestataire `json:"profil,omitempty"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type InscriptionGroupeResponse struct {
	Message  string `json:"message"`
	Inscrits int    `json:"inscrits"`
}

type ImportElevesResponse struct {
	Message string   `json:"message"`
	Crees   int      `json:"crees"`
	Ignores []string `json:"ignores"`
}
