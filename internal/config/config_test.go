package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDefaults(t *testing.T) {
	cfg := Init(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, filepath.Join("data", "users_db.json"), cfg.StorePath)
	assert.Equal(t, filepath.Join("data", "audit.db"), cfg.AuditDBPath)
	assert.Equal(t, "healthassist", cfg.JWT.Issuer)
	assert.Equal(t, 60, cfg.JWT.ExpMin)
	assert.Equal(t, "admin123", cfg.Seed.AdminPassword)
	assert.Equal(t, "doctor123", cfg.Seed.DoctorPassword)
	assert.Equal(t, "patient123", cfg.Seed.PatientPassword)
}

func TestInitReadsFile(t *testing.T) {
	yaml := `
assist:
  store_path: /tmp/x/users.json
  jwt:
    secret: super-secret
    exp_min: 15
  seed:
    admin_password: changeme
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg := Init(path)
	assert.Equal(t, "/tmp/x/users.json", cfg.StorePath)
	assert.Equal(t, "super-secret", cfg.JWT.Secret)
	assert.Equal(t, 15, cfg.JWT.ExpMin)
	assert.Equal(t, "changeme", cfg.Seed.AdminPassword)
	// untouched keys keep their defaults
	assert.Equal(t, "doctor123", cfg.Seed.DoctorPassword)
	assert.Equal(t, cfg, Get())
}
