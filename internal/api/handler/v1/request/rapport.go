package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type RapportRequest struct {
	Type   string `json:"type"`
	Format string `json:"format"`
	Date   string `json:"date"`
}

func (r RapportRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Type, validation.Required, validation.In("JOURNALIER", "HEBDOMADAIRE", "MENSUEL")),
		validation.Field(&r.Format, validation.Required, validation.In("PDF", "XLSX")),
		validation.Field(&r.Date, validation.Date(DateLayout)),
	)
}
