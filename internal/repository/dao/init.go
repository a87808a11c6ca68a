package dao

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// InitTables runs the schema migration for every canteen table. Uniqueness
// and foreign-key rules live here, in the storage layer, not only in
// application code.
func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&ProfilPrestataire{},
		&Classe{},
		&Eleve{},
		&Menu{},
		&InscriptionMensuelle{},
		&Repas{},
		&Facture{},
		&ActionLog{},
	)
}

// isUniqueViolation recognizes a unique-constraint failure from postgres or
// from the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
