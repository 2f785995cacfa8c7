package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsAndEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_ADDRESS", ":9090")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.Equal(t, 12*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, 15*time.Minute, cfg.S3.PresignExpiry)
	assert.Equal(t, int32(1), cfg.S3.PhotoRetentionDays)
	assert.False(t, cfg.S3.Enabled())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	doc := `
server:
  address: ":7000"
store:
  driver: mongo
database:
  uri: mongodb://db:27017
  name: coach
s3:
  bucket_name: photos
jwt:
  secret: from-file
  expiration: 30m
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(doc), 0o600))
	t.Setenv("JWT_EXPIRATION", "2h")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.Address)
	assert.Equal(t, StoreMongo, cfg.Store.Driver)
	assert.Equal(t, "coach", cfg.Database.Name)
	assert.True(t, cfg.S3.Enabled())
	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiration, "env overrides the file")
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := LoadConfig(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret")
}

func TestValidate(t *testing.T) {
	valid := Config{
		Server: ServerConfig{Mode: "release"},
		Store:  StoreConfig{Driver: StoreMemory},
		JWT:    JWTConfig{Secret: "s", Expiration: time.Hour},
	}
	require.NoError(t, valid.Validate())

	bad := valid
	bad.Store.Driver = "redis"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.JWT.Expiration = 0
	assert.Error(t, bad.Validate())

	bad = valid
	bad.S3.PhotoRetentionDays = -1
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Server.Mode = "production"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Store.Driver = StoreMongo
	bad.Database = DatabaseConfig{}
	assert.Error(t, bad.Validate())
}
