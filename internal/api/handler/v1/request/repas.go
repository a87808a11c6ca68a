package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type MarquerRepasRequest struct {
	EleveID uint   `json:"eleve_id"`
	Date    string `json:"date"`
	Note    string `json:"note"`
}

func (req *MarquerRepasRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EleveID, validation.Required),
		validation.Field(&req.Date, validation.Required, validation.Date(DateLayout)),
	)
}

type MarquerMultiplesRequest struct {
	EleveIDs []uint `json:"eleve_ids"`
	Date     string `json:"date"`
}

func (req *MarquerMultiplesRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EleveIDs, validation.Required),
		validation.Field(&req.Date, validation.Required, validation.Date(DateLayout)),
	)
}

type UpdateRepasRequest struct {
	EleveID uint   `json:"eleve_id"`
	MenuID  *uint  `json:"menu_id"`
	Date    string `json:"date"`
	Note    string `json:"note"`
}

func (req *UpdateRepasRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EleveID, validation.Required),
		validation.Field(&req.Date, validation.Required, validation.Date(DateLayout)),
	)
}
