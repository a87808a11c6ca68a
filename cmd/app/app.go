package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/scolarest/cantine-api/internal/api"
	"github.com/scolarest/cantine-api/internal/config"
	"github.com/scolarest/cantine-api/internal/db"
	"github.com/scolarest/cantine-api/internal/logger"
)

// Start boots the canteen API: config, logger, database, then the HTTP server.
func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("config.Load -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("logger.Init -> %w", err)
	}

	gormDB, err := openDatabase(conf)
	if err != nil {
		return fmt.Errorf("openDatabase -> %w", err)
	}

	s := api.NewServer(conf, gormDB)

	addr := ":" + s.Config.API.Port
	zap.L().Info("starting server", zap.String("addr", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("s.Router.Run -> %w", err)
	}

	return nil
}

// openDatabase prefers a full DATABASE_URL, as injected by hosting platforms,
// over the per-field postgres config.
func openDatabase(conf *config.AppConfig) (*gorm.DB, error) {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return db.OpenPostgresWithURL(url)
	}

	return db.OpenPostgres(conf.Postgres)
}
