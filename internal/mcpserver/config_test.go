package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearRestitchEnv clears all RESTITCH_* env vars to isolate tests from the
// ambient environment.
func clearRestitchEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"RESTITCH_CACHE_ENABLED", "RESTITCH_CACHE_MAX_SIZE",
		"RESTITCH_CACHE_FILE_TTL", "RESTITCH_CACHE_URL_TTL",
		"RESTITCH_CACHE_CONTENT_TTL", "RESTITCH_CACHE_SWEEP_INTERVAL",
		"RESTITCH_MAX_INLINE_SIZE", "RESTITCH_ALLOW_PRIVATE_IPS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearRestitchEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 5*time.Minute, c.CacheURLTTL)
	assert.Equal(t, 15*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.False(t, c.AllowPrivateIPs)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearRestitchEnv(t)
	t.Setenv("RESTITCH_CACHE_ENABLED", "false")
	t.Setenv("RESTITCH_CACHE_MAX_SIZE", "50")
	t.Setenv("RESTITCH_CACHE_FILE_TTL", "30m")
	t.Setenv("RESTITCH_CACHE_URL_TTL", "2m")
	t.Setenv("RESTITCH_MAX_INLINE_SIZE", "1024")
	t.Setenv("RESTITCH_ALLOW_PRIVATE_IPS", "true")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 50, c.CacheMaxSize)
	assert.Equal(t, 30*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 2*time.Minute, c.CacheURLTTL)
	assert.Equal(t, int64(1024), c.MaxInlineSize)
	assert.True(t, c.AllowPrivateIPs)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	clearRestitchEnv(t)
	t.Setenv("RESTITCH_CACHE_ENABLED", "not-a-bool")
	t.Setenv("RESTITCH_CACHE_MAX_SIZE", "-3")
	t.Setenv("RESTITCH_CACHE_FILE_TTL", "soon")
	t.Setenv("RESTITCH_MAX_INLINE_SIZE", "0")

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
}
