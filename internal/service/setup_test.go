package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository"
	"github.com/scolarest/cantine-api/internal/repository/dao"
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
	if err := dao.InitTables(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func newEleveService(db *gorm.DB) *EleveService {
	return NewEleveService(
		repository.NewEleveRepository(dao.NewEleveDAO(db)),
		repository.NewClasseRepository(dao.NewClasseDAO(db)),
	)
}

func newMenuService(db *gorm.DB) *MenuService {
	return NewMenuService(repository.NewMenuRepository(dao.NewMenuDAO(db)))
}

func newRepasService(db *gorm.DB) *RepasService {
	return NewRepasService(
		repository.NewRepasRepository(dao.NewRepasDAO(db)),
		repository.NewEleveRepository(dao.NewEleveDAO(db)),
		repository.NewMenuRepository(dao.NewMenuDAO(db)),
	)
}

func newFactureService(db *gorm.DB) *FactureService {
	return NewFactureService(
		repository.NewFactureRepository(dao.NewFactureDAO(db)),
		newRepasService(db),
	)
}

func createEleve(t *testing.T, db *gorm.DB, prenom, nom string, actif bool) domain.Eleve {
	t.Helper()

	eleve, err := newEleveService(db).Create(context.Background(), domain.Eleve{
		Prenom: prenom,
		Nom:    nom,
		Actif:  actif,
	})
	if err != nil {
		t.Fatalf("create eleve: %v", err)
	}

	return eleve
}

func marquerRepas(t *testing.T, db *gorm.DB, eleveID uint, date time.Time) domain.Repas {
	t.Helper()

	repas, err := newRepasService(db).Marquer(context.Background(), eleveID, date, "", nil)
	if err != nil {
		t.Fatalf("marquer repas: %v", err)
	}

	return repas
}
