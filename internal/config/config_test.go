package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `api:
  environment: test
  base_url: localhost:8081
  port: 8081
  jwt_signing_key: cle-de-test
  allowed_cors_domains:
    - http://localhost:3000
gin:
  mode: test
postgres:
  host: localhost
  port: 5432
  user: postgres
  password: postgres
  db: cantine_test
  ssl_mode: disable
cantine:
  backup_dir: ./backups
  prix_repas_par_defaut: "3.50"
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o644))

	conf, err := Load(path)
	require.NoError(t, err)

	require.NotNil(t, conf.API)
	assert.Equal(t, "test", conf.API.Environment)
	assert.Equal(t, "8081", conf.API.Port)
	assert.Equal(t, "cle-de-test", conf.API.JWTSigningKey)
	assert.Equal(t, []string{"http://localhost:3000"}, conf.API.AllowedCORSDomains)

	require.NotNil(t, conf.Postgres)
	assert.Equal(t, "cantine_test", conf.Postgres.DB)

	require.NotNil(t, conf.Cantine)
	assert.Equal(t, "./backups", conf.Cantine.BackupDir)
	assert.Equal(t, "3.50", conf.Cantine.PrixRepasParDefaut)
}

func TestLoadFichierAbsent(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}
