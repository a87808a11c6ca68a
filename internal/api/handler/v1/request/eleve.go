package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type EleveRequest struct {
	Prenom          string `json:"prenom"`
	Nom             string `json:"nom"`
	ClasseID        *uint  `json:"classe_id"`
	DateInscription string `json:"date_inscription"`
	Actif           *bool  `json:"actif"`
	TelephoneParent string `json:"telephone_parent"`
	EmailParent     string `json:"email_parent"`
	Photo           string `json:"photo"`
	Notes           string `json:"notes"`
}

func (req *EleveRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Prenom, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Nom, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.DateInscription, validation.Date(DateLayout)),
		validation.Field(&req.EmailParent, is.Email),
		validation.Field(&req.TelephoneParent, validation.Length(0, 20)),
	)
}
