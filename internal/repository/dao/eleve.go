package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrEleveNotFound = errors.New("eleve not found")

type Eleve struct {
	ID uint `gorm:"primaryKey"`

	Prenom string `gorm:"size:100;not null;index:idx_eleves_nom_prenom,priority:2"`
	Nom    string `gorm:"size:100;not null;index:idx_eleves_nom_prenom,priority:1"`

	ClasseID *uint   `gorm:"index"`
	Classe   *Classe `gorm:"foreignKey:ClasseID;constraint:OnDelete:SET NULL"`

	DateInscription time.Time `gorm:"not null"`
	Actif           bool      `gorm:"not null;default:true;index"`
	TelephoneParent string    `gorm:"size:20"`
	EmailParent     string    `gorm:"size:254"`
	Photo           string    `gorm:"size:255"`
	Notes           string    `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// EleveFilter narrows student listings. AnneeInscrit/MoisInscrit restrict to
// students holding an enrollment for that month.
type EleveFilter struct {
	ClasseID     *uint
	Search       string
	Actif        *bool
	AnneeInscrit int
	MoisInscrit  int
}

type EleveDAO struct {
	db *gorm.DB
}

func NewEleveDAO(db *gorm.DB) *EleveDAO {
	return &EleveDAO{
		db: db,
	}
}

func (d *EleveDAO) Insert(ctx context.Context, eleve Eleve) (Eleve, error) {
	if eleve.DateInscription.IsZero() {
		eleve.DateInscription = time.Now()
	}
	result := d.db.WithContext(ctx).Create(&eleve)
	if result.Error != nil {
		return Eleve{}, result.Error
	}

	return d.FindByID(ctx, eleve.ID)
}

func (d *EleveDAO) FindByID(ctx context.Context, id uint) (Eleve, error) {
	var eleve Eleve

	result := d.db.WithContext(ctx).Preload("Classe").First(&eleve, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Eleve{}, ErrEleveNotFound
		}

		return Eleve{}, result.Error
	}

	return eleve, nil
}

func (d *EleveDAO) List(ctx context.Context, filter EleveFilter) ([]Eleve, error) {
	query := d.db.WithContext(ctx).Model(&Eleve{}).Preload("Classe")

	if filter.Actif != nil {
		query = query.Where("eleves.actif = ?", *filter.Actif)
	}
	if filter.ClasseID != nil {
		query = query.Where("eleves.classe_id = ?", *filter.ClasseID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("eleves.nom LIKE ? OR eleves.prenom LIKE ?", like, like)
	}
	if filter.AnneeInscrit != 0 && filter.MoisInscrit != 0 {
		query = query.
			Joins("JOIN inscription_mensuelles im ON im.eleve_id = eleves.id").
			Where("im.annee = ? AND im.mois = ? AND im.inscrit = ?", filter.AnneeInscrit, filter.MoisInscrit, true).
			Distinct("eleves.*")
	}

	var eleves []Eleve
	if err := query.Order("eleves.classe_id, eleves.nom, eleves.prenom").Find(&eleves).Error; err != nil {
		return nil, err
	}

	return eleves, nil
}

// ListPourMarquage returns the students eligible for attendance marking on a
// month: enrolled students when any enrollment exists, otherwise every active
// student. Enrollment is advisory, not a hard filter.
func (d *EleveDAO) ListPourMarquage(ctx context.Context, annee, mois int) ([]Eleve, error) {
	actif := true
	inscrits, err := d.List(ctx, EleveFilter{Actif: &actif, AnneeInscrit: annee, MoisInscrit: mois})
	if err != nil {
		return nil, err
	}
	if len(inscrits) > 0 {
		return inscrits, nil
	}

	return d.List(ctx, EleveFilter{Actif: &actif})
}

func (d *EleveDAO) Update(ctx context.Context, eleve Eleve) (Eleve, error) {
	result := d.db.WithContext(ctx).Model(&Eleve{}).
		Where("id = ?", eleve.ID).
		Updates(map[string]any{
			"prenom":           eleve.Prenom,
			"nom":              eleve.Nom,
			"classe_id":        eleve.ClasseID,
			"actif":            eleve.Actif,
			"telephone_parent": eleve.TelephoneParent,
			"email_parent":     eleve.EmailParent,
			"photo":            eleve.Photo,
			"notes":            eleve.Notes,
		})
	if result.Error != nil {
		return Eleve{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Eleve{}, ErrEleveNotFound
	}

	return d.FindByID(ctx, eleve.ID)
}

// Delete removes the student together with its meal and enrollment history
// (ON DELETE CASCADE on both FKs).
func (d *EleveDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Eleve{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEleveNotFound
	}

	return nil
}

func (d *EleveDAO) CountActifs(ctx context.Context) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&Eleve{}).Where("actif = ?", true).Count(&count).Error
	return count, err
}
