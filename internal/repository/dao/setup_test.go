package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB opens an in-memory sqlite database scoped to the test name, so
// tests never observe each other's rows through the shared cache. Foreign keys
// are switched on so ON DELETE clauses behave like postgres.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := InitTables(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func seedEleve(t *testing.T, db *gorm.DB, prenom, nom string, actif bool) Eleve {
	t.Helper()

	eleve := Eleve{
		Prenom:          prenom,
		Nom:             nom,
		DateInscription: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Actif:           actif,
	}
	if err := db.Create(&eleve).Error; err != nil {
		t.Fatalf("seed eleve: %v", err)
	}

	return eleve
}

func mustInsertRepas(t *testing.T, db *gorm.DB, eleveID uint, date time.Time) Repas {
	t.Helper()

	repas, err := NewRepasDAO(db).Insert(context.Background(), Repas{
		EleveID: eleveID,
		Date:    date,
	})
	if err != nil {
		t.Fatalf("seed repas: %v", err)
	}

	return repas
}
