package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type InscriptionRequest struct {
	EleveID uint   `json:"eleve_id"`
	Annee   int    `json:"annee"`
	Mois    int    `json:"mois"`
	Inscrit *bool  `json:"inscrit"`
	Notes   string `json:"notes"`
}

func (req *InscriptionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EleveID, validation.Required),
		validation.Field(&req.Annee, validation.Required, validation.Min(2000), validation.Max(2100)),
		validation.Field(&req.Mois, validation.Required, validation.Min(1), validation.Max(12)),
	)
}

type InscrireGroupeRequest struct {
	EleveIDs []uint `json:"eleve_ids"`
	Annee    int    `json:"annee"`
	Mois     int    `json:"mois"`
}

func (req *InscrireGroupeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EleveIDs, validation.Required),
		validation.Field(&req.Annee, validation.Required, validation.Min(2000), validation.Max(2100)),
		validation.Field(&req.Mois, validation.Required, validation.Min(1), validation.Max(12)),
	)
}

type UpdateInscriptionRequest struct {
	Inscrit *bool  `json:"inscrit"`
	Notes   string `json:"notes"`
}

func (req *UpdateInscriptionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Inscrit, validation.NotNil),
	)
}
