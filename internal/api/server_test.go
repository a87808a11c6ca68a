package api

import (
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/scolarest/cantine-api/internal/config"
	"github.com/scolarest/cantine-api/internal/repository/dao"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := dao.InitTables(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	conf := &config.AppConfig{
		API: &config.APIConfig{
			Environment:        "test",
			Port:               "8080",
			JWTSigningKey:      "test-signing-key",
			AllowedCORSDomains: []string{"*"},
		},
		Gin: &config.GinConfig{Mode: gin.TestMode},
		Cantine: &config.CantineConfig{
			BackupDir:          t.TempDir(),
			PrixRepasParDefaut: "3.50",
		},
	}

	return NewServer(conf, db)
}

func TestMountHandlersRoutes(t *testing.T) {
	s := newTestServer(t)

	mounted := make(map[string]bool)
	for _, route := range s.Router.Routes() {
		mounted[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"POST /api/v1/auth/login",
		"GET /api/v1/eleves",
		"POST /api/v1/repas/marquer_multiples",
		"PUT /api/v1/factures/:id/statut",
		"GET /api/v1/prestataires",
		"POST /api/v1/prestataires",
		"POST /api/v1/backup/restore",
		"GET /api/v1/journal",
		"GET /",
	} {
		require.True(t, mounted[want], "route not mounted: %s", want)
	}
}
