package dao

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// SnapshotVersion is bumped whenever the snapshot layout changes. Restore
// refuses snapshots written by a different version.
const SnapshotVersion = 1

// Snapshot is a full dump of every canteen table, the unit of backup and
// restore.
type Snapshot struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`

	Users        []User                 `json:"users"`
	Profils      []ProfilPrestataire    `json:"profils"`
	Classes      []Classe               `json:"classes"`
	Eleves       []Eleve                `json:"eleves"`
	Menus        []Menu                 `json:"menus"`
	Inscriptions []InscriptionMensuelle `json:"inscriptions"`
	Repas        []Repas                `json:"repas"`
	Factures     []Facture              `json:"factures"`
	ActionLogs   []ActionLog            `json:"action_logs"`
}

type BackupDAO struct {
	db *gorm.DB
}

func NewBackupDAO(db *gorm.DB) *BackupDAO {
	return &BackupDAO{
		db: db,
	}
}

// Dump reads every table into a snapshot.
func (d *BackupDAO) Dump(ctx context.Context) (Snapshot, error) {
	snapshot := Snapshot{
		Version:   SnapshotVersion,
		CreatedAt: time.Now().UTC(),
	}

	db := d.db.WithContext(ctx)
	for _, step := range []struct {
		name string
		dest any
	}{
		{"users", &snapshot.Users},
		{"profils", &snapshot.Profils},
		{"classes", &snapshot.Classes},
		{"eleves", &snapshot.Eleves},
		{"menus", &snapshot.Menus},
		{"inscriptions", &snapshot.Inscriptions},
		{"repas", &snapshot.Repas},
		{"factures", &snapshot.Factures},
		{"action_logs", &snapshot.ActionLogs},
	} {
		if err := db.Order("id").Find(step.dest).Error; err != nil {
			return Snapshot{}, fmt.Errorf("dump %s -> %w", step.name, err)
		}
	}

	return snapshot, nil
}

// Restore replaces the entire database content with the snapshot, in one
// transaction. Tables are cleared children-first and refilled parents-first
// so foreign keys hold throughout.
func (d *BackupDAO) Restore(ctx context.Context, snapshot Snapshot) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&ActionLog{},
			&Facture{},
			&Repas{},
			&InscriptionMensuelle{},
			&Eleve{},
			&Menu{},
			&ProfilPrestataire{},
			&User{},
			&Classe{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T -> %w", model, err)
			}
		}

		for _, step := range []struct {
			name string
			rows any
			size int
		}{
			{"users", snapshot.Users, len(snapshot.Users)},
			{"classes", snapshot.Classes, len(snapshot.Classes)},
			{"profils", snapshot.Profils, len(snapshot.Profils)},
			{"eleves", snapshot.Eleves, len(snapshot.Eleves)},
			{"menus", snapshot.Menus, len(snapshot.Menus)},
			{"inscriptions", snapshot.Inscriptions, len(snapshot.Inscriptions)},
			{"repas", snapshot.Repas, len(snapshot.Repas)},
			{"factures", snapshot.Factures, len(snapshot.Factures)},
			{"action_logs", snapshot.ActionLogs, len(snapshot.ActionLogs)},
		} {
			if step.size == 0 {
				continue
			}
			if err := tx.CreateInBatches(step.rows, 500).Error; err != nil {
				return fmt.Errorf("restore %s -> %w", step.name, err)
			}
		}

		return d.resetSequences(tx)
	})
}

// resetSequences realigns postgres id sequences after rows were inserted with
// explicit ids. Other dialects need nothing.
func (d *BackupDAO) resetSequences(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}

	for _, table := range []string{
		"users", "profil_prestataires", "classes", "eleves", "menus",
		"inscription_mensuelles", "repas", "factures", "action_logs",
	} {
		stmt := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 1))",
			table, table,
		)
		if err := tx.Exec(stmt).Error; err != nil {
			return fmt.Errorf("reset sequence %s -> %w", table, err)
		}
	}

	return nil
}
