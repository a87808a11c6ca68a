package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type UpdateProfilRequest struct {
	Role       string `json:"role"`
	Telephone  string `json:"telephone"`
	Entreprise string `json:"entreprise"`
	Actif      *bool  `json:"actif"`
}

func (req *UpdateProfilRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Role, validation.Required, validation.In("ADMIN", "PRESTATAIRE")),
		validation.Field(&req.Actif, validation.NotNil),
		validation.Field(&req.Telephone, validation.Length(0, 20)),
		validation.Field(&req.Entreprise, validation.Length(0, 200)),
	)
}

type RestaurerBackupRequest struct {
	Nom string `json:"nom"`
}

func (req *RestaurerBackupRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Nom, validation.Required),
	)
}
