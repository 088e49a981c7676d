package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "memory")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.App.Port)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, DriverMemory, cfg.DB.Driver)
	assert.Equal(t, 360000*time.Second, cfg.Auth.TokenLifespan)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DSN", "postgres://u:p@localhost:5432/users")
	t.Setenv("PORT", "8080")
	t.Setenv("TOKEN_LIFESPAN", "1h")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, time.Hour, cfg.Auth.TokenLifespan)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "app:\n  port: \"7000\"\ndb:\n  driver: memory\nauth:\n  jwt_secret: from-file\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.App.Port)
	assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		var c Config
		c.Auth.JWTSecret = "s"
		c.Auth.TokenLifespan = time.Hour
		c.DB.Driver = DriverMemory
		return c
	}

	assert.NoError(t, base().Validate())

	noSecret := base()
	noSecret.Auth.JWTSecret = ""
	assert.Error(t, noSecret.Validate())

	pgNoDSN := base()
	pgNoDSN.DB.Driver = DriverPostgres
	assert.Error(t, pgNoDSN.Validate())

	unknown := base()
	unknown.DB.Driver = "mongo"
	assert.Error(t, unknown.Validate())
}
