package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.Server.URL)
	assert.False(t, cfg.Server.InsecureSkipVerify)
	assert.Equal(t, 15*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 10*time.Second, cfg.WS.HandshakeTimeout)
	assert.Empty(t, cfg.Token.Redis.Host)
	assert.Equal(t, "voteroom:", cfg.Token.Redis.Prefix)
	assert.False(t, cfg.WireLog.Enabled)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  url: https://vote.example.com/
http:
  timeout: 3s
token:
  redis:
    host: redis.internal
    prefix: "staging:"
wirelog:
  enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Trailing slash is stripped so URL concatenation stays clean.
	assert.Equal(t, "https://vote.example.com", cfg.Server.URL)
	assert.Equal(t, 3*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "redis.internal", cfg.Token.Redis.Host)
	assert.Equal(t, "staging:", cfg.Token.Redis.Prefix)
	assert.True(t, cfg.WireLog.Enabled)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("VOTEROOM_SERVER", "https://env.example.com")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.Server.URL)
}

func TestLoad_BadScheme(t *testing.T) {
	t.Setenv("VOTEROOM_SERVER", "vote.example.com")

	_, err := Load("")
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
