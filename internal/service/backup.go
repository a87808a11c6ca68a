package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/scolarest/cantine-api/internal/repository/dao"
)

var (
	ErrSnapshotVersion = errors.New("unsupported snapshot version")
	ErrSnapshotInvalid = errors.New("invalid snapshot file")
	ErrBackupNotFound  = errors.New("backup not found")
)

type BackupDAO interface {
	Dump(ctx context.Context) (dao.Snapshot, error)
	Restore(ctx context.Context, snapshot dao.Snapshot) error
}

// BackupInfo describes one stored backup file.
type BackupInfo struct {
	Nom       string    `json:"nom"`
	Taille    int64     `json:"taille"`
	CreatedAt time.Time `json:"created_at"`
}

// BackupService dumps the whole database to versioned JSON snapshots and
// restores from them. Snapshots live as files under the configured backup
// directory.
type BackupService struct {
	dao BackupDAO
	dir string
}

func NewBackupService(dao BackupDAO, dir string) *BackupService {
	return &BackupService{
		dao: dao,
		dir: dir,
	}
}

// ExportJSON streams a snapshot of the database.
func (s *BackupService) ExportJSON(ctx context.Context, w io.Writer) error {
	snapshot, err := s.dao.Dump(ctx)
	if err != nil {
		return fmt.Errorf("s.dao.Dump -> %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return fmt.Errorf("enc.Encode -> %w", err)
	}

	return nil
}

// Sauvegarder writes a snapshot file into the backup directory and returns
// its name.
func (s *BackupService) Sauvegarder(ctx context.Context) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll -> %w", err)
	}

	name := fmt.Sprintf("cantine_%s.json", time.Now().UTC().Format("20060102_150405"))

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("os.Create -> %w", err)
	}
	defer f.Close()

	if err := s.ExportJSON(ctx, f); err != nil {
		return "", err
	}

	return name, nil
}

// Lister returns the stored backups, newest first.
func (s *BackupService) Lister() ([]BackupInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("os.ReadDir -> %w", err)
	}

	backups := make([]BackupInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Nom:       entry.Name(),
			Taille:    info.Size(),
			CreatedAt: info.ModTime(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})

	return backups, nil
}

// RestaurerJSON validates a snapshot stream and replaces the database content
// with it.
func (s *BackupService) RestaurerJSON(ctx context.Context, r io.Reader) error {
	var snapshot dao.Snapshot
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return fmt.Errorf("%w: %v", ErrSnapshotInvalid, err)
	}
	if snapshot.Version != dao.SnapshotVersion {
		return ErrSnapshotVersion
	}

	if err := s.dao.Restore(ctx, snapshot); err != nil {
		return fmt.Errorf("s.dao.Restore -> %w", err)
	}

	return nil
}

// Restaurer replays a stored backup file by name.
func (s *BackupService) Restaurer(ctx context.Context, name string) error {
	// The name comes from the API, never trust it as a path.
	if name != filepath.Base(name) || !strings.HasSuffix(name, ".json") {
		return ErrBackupNotFound
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrBackupNotFound
		}

		return fmt.Errorf("os.Open -> %w", err)
	}
	defer f.Close()

	return s.RestaurerJSON(ctx, f)
}
