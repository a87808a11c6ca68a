package dao

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrFactureExists   = errors.New("facture already exists")
	ErrFactureNotFound = errors.New("facture not found")
)

type Facture struct {
	ID uint `gorm:"primaryKey"`

	Numero string `gorm:"size:50;not null;uniqueIndex"`

	Annee int `gorm:"not null;index:idx_facture_periode,priority:1"`
	Mois  int `gorm:"not null;index:idx_facture_periode,priority:2"`

	NombreJoursTravail int             `gorm:"not null;default:0"`
	NombreRepasServis  int             `gorm:"not null;default:0"`
	PrixUnitaireRepas  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	MontantTotal       decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Statut string `gorm:"size:20;not null;default:'BROUILLON';index"`

	DateEmission time.Time  `gorm:"type:date;not null"`
	DatePaiement *time.Time `gorm:"type:date"`
	Notes        string     `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	CreatedByID *uint
	CreatedBy   *User `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
}

// FactureFilter narrows invoice listings.
type FactureFilter struct {
	Annee  int
	Mois   int
	Statut string
	Numero string
}

type FactureDAO struct {
	db *gorm.DB
}

func NewFactureDAO(db *gorm.DB) *FactureDAO {
	return &FactureDAO{
		db: db,
	}
}

// Insert persists the invoice, generating its Numero inside the same
// transaction when it is blank. The sequence is read from the most recently
// inserted invoice regardless of its period, so numbers never repeat even
// across year or month boundaries.
func (d *FactureDAO) Insert(ctx context.Context, facture Facture) (Facture, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if facture.Numero == "" {
			seq, err := d.nextSequence(tx)
			if err != nil {
				return err
			}
			facture.Numero = formatNumero(facture.Annee, facture.Mois, seq)
		}

		if err := tx.Create(&facture).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrFactureExists
			}
			return err
		}

		return nil
	})
	if err != nil {
		return Facture{}, err
	}

	return d.FindByID(ctx, facture.ID)
}

// nextSequence parses the numeric suffix of the latest invoice number and
// increments it. The row is locked on postgres so concurrent inserts cannot
// observe the same sequence value.
func (d *FactureDAO) nextSequence(tx *gorm.DB) (int, error) {
	query := tx.Model(&Facture{}).Order("id DESC")
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var last Facture
	result := query.First(&last)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 1, nil
		}
		return 0, result.Error
	}

	idx := strings.LastIndex(last.Numero, "-")
	if idx < 0 || idx == len(last.Numero)-1 {
		return 1, nil
	}

	seq, err := strconv.Atoi(last.Numero[idx+1:])
	if err != nil {
		return 1, nil
	}

	return seq + 1, nil
}

func formatNumero(annee, mois, seq int) string {
	return fmt.Sprintf("FAC-%d-%02d-%04d", annee, mois, seq)
}

func (d *FactureDAO) FindByID(ctx context.Context, id uint) (Facture, error) {
	var facture Facture

	result := d.db.WithContext(ctx).First(&facture, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Facture{}, ErrFactureNotFound
		}

		return Facture{}, result.Error
	}

	return facture, nil
}

func (d *FactureDAO) List(ctx context.Context, filter FactureFilter) ([]Facture, error) {
	query := d.db.WithContext(ctx).Model(&Facture{})

	if filter.Annee != 0 {
		query = query.Where("annee = ?", filter.Annee)
	}
	if filter.Mois != 0 {
		query = query.Where("mois = ?", filter.Mois)
	}
	if filter.Statut != "" {
		query = query.Where("statut = ?", filter.Statut)
	}
	if filter.Numero != "" {
		query = query.Where("numero LIKE ?", "%"+filter.Numero+"%")
	}

	var factures []Facture
	if err := query.Order("annee DESC, mois DESC, id DESC").Find(&factures).Error; err != nil {
		return nil, err
	}

	return factures, nil
}

func (d *FactureDAO) Update(ctx context.Context, facture Facture) (Facture, error) {
	updates := map[string]any{
		"annee":                facture.Annee,
		"mois":                 facture.Mois,
		"nombre_jours_travail": facture.NombreJoursTravail,
		"nombre_repas_servis":  facture.NombreRepasServis,
		"prix_unitaire_repas":  facture.PrixUnitaireRepas,
		"montant_total":        facture.MontantTotal,
		"statut":               facture.Statut,
		"date_emission":        facture.DateEmission,
		"date_paiement":        facture.DatePaiement,
		"notes":                facture.Notes,
	}

	result := d.db.WithContext(ctx).Model(&Facture{}).
		Where("id = ?", facture.ID).
		Updates(updates)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Facture{}, ErrFactureExists
		}
		return Facture{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Facture{}, ErrFactureNotFound
	}

	return d.FindByID(ctx, facture.ID)
}

func (d *FactureDAO) UpdateStatut(ctx context.Context, id uint, statut string, dateEmission, datePaiement *time.Time) (Facture, error) {
	updates := map[string]any{
		"statut": statut,
	}
	if dateEmission != nil {
		updates["date_emission"] = *dateEmission
	}
	if datePaiement != nil {
		updates["date_paiement"] = *datePaiement
	}

	result := d.db.WithContext(ctx).Model(&Facture{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return Facture{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Facture{}, ErrFactureNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *FactureDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Facture{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFactureNotFound
	}

	return nil
}

func (d *FactureDAO) CountByStatut(ctx context.Context, statut string) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&Facture{}).
		Where("statut = ?", statut).
		Count(&count).Error
	return count, err
}

// SumMontantByStatut totals invoice amounts for one status. Sums are computed
// in Go from decimal columns rather than in SQL to avoid float rounding.
func (d *FactureDAO) SumMontantByStatut(ctx context.Context, statut string) (decimal.Decimal, error) {
	var factures []Facture
	err := d.db.WithContext(ctx).Model(&Facture{}).
		Select("montant_total").
		Where("statut = ?", statut).
		Find(&factures).Error
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, f := range factures {
		total = total.Add(f.MontantTotal)
	}

	return total, nil
}
