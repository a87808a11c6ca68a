package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type ClasseRequest struct {
	Nom    string `json:"nom"`
	Niveau string `json:"niveau"`
}

func (req *ClasseRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Nom, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Niveau, validation.Length(0, 50)),
	)
}
