package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type MenuRequest struct {
	Date           string `json:"date"`
	PlatPrincipal  string `json:"plat_principal"`
	Accompagnement string `json:"accompagnement"`
	Dessert        string `json:"dessert"`
	Image          string `json:"image"`
	Disponible     *bool  `json:"disponible"`
	Notes          string `json:"notes"`
}

func (req *MenuRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Date, validation.Required, validation.Date(DateLayout)),
		validation.Field(&req.PlatPrincipal, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Accompagnement, validation.Length(0, 200)),
		validation.Field(&req.Dessert, validation.Length(0, 200)),
	)
}
