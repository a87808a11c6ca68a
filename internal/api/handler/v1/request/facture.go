package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type FactureRequest struct {
	Annee              int    `json:"annee"`
	Mois               int    `json:"mois"`
	NombreJoursTravail int    `json:"nombre_jours_travail"`
	NombreRepasServis  int    `json:"nombre_repas_servis"`
	PrixUnitaireRepas  string `json:"prix_unitaire_repas"`
	Notes              string `json:"notes"`
}

func (req *FactureRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Annee, validation.Required, validation.Min(2000), validation.Max(2100)),
		validation.Field(&req.Mois, validation.Required, validation.Min(1), validation.Max(12)),
		validation.Field(&req.NombreRepasServis, validation.Min(0)),
		validation.Field(&req.NombreJoursTravail, validation.Min(0)),
		validation.Field(&req.PrixUnitaireRepas, validation.Required),
	)
}

type GenererFactureRequest struct {
	Annee             int    `json:"annee"`
	Mois              int    `json:"mois"`
	PrixUnitaireRepas string `json:"prix_unitaire_repas"`
}

func (req *GenererFactureRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Annee, validation.Required, validation.Min(2000), validation.Max(2100)),
		validation.Field(&req.Mois, validation.Required, validation.Min(1), validation.Max(12)),
	)
}

type ChangerStatutRequest struct {
	Statut string `json:"statut"`
}

func (req *ChangerStatutRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Statut, validation.Required,
			validation.In("BROUILLON", "ENVOYEE", "PAYEE", "ANNULEE")),
	)
}
