package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8000", c.ServerURL)
	assert.Equal(t, "", c.AdminKey)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"server_url": "http://json:1",
		"admin_key":  "from-json",
	})
	t.Setenv("GOPHAUTH_CLIENT_ADMIN_KEY", "from-env")

	cfg, err := loadConfig([]string{"-c", path, "-s", "http://flag:2"})
	require.NoError(t, err)

	assert.Equal(t, "http://flag:2", cfg.ServerURL)
	assert.Equal(t, "from-env", cfg.AdminKey)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := loadConfig([]string{"-c", "/does/not/exist.json"})
	assert.Error(t, err)

	_, err = loadConfig([]string{"-i", "0"})
	assert.Error(t, err)

	t.Setenv("GOPHAUTH_CLIENT_REQUEST_TIMEOUT", "soon")
	_, err = loadConfig(nil)
	assert.Error(t, err)
}
