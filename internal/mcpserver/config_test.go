package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wordgrain/wgtools/differ"
)

// clearWGTOOLSEnv clears all WGTOOLS_* env vars to isolate tests from the ambient environment.
func clearWGTOOLSEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"WGTOOLS_CACHE_ENABLED", "WGTOOLS_CACHE_MAX_SIZE", "WGTOOLS_CACHE_TTL",
		"WGTOOLS_MAX_INLINE_SIZE", "WGTOOLS_RESULT_LIMIT", "WGTOOLS_MAX_LIMIT",
		"WGTOOLS_VALIDATE_NO_WARNINGS", "WGTOOLS_DIFF_ALIGN", "WGTOOLS_DIFF_NORMALIZED",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearWGTOOLSEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 32, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheTTL)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.Equal(t, 100, c.ResultLimit)
	assert.Equal(t, 1000, c.MaxLimit)
	assert.False(t, c.ValidateNoWarnings)
	assert.Equal(t, differ.AlignIdentity, c.DiffAlignment)
	assert.False(t, c.DiffNormalized)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearWGTOOLSEnv(t)
	t.Setenv("WGTOOLS_CACHE_ENABLED", "false")
	t.Setenv("WGTOOLS_CACHE_MAX_SIZE", "8")
	t.Setenv("WGTOOLS_CACHE_TTL", "90s")
	t.Setenv("WGTOOLS_MAX_INLINE_SIZE", "2048")
	t.Setenv("WGTOOLS_RESULT_LIMIT", "10")
	t.Setenv("WGTOOLS_MAX_LIMIT", "50")
	t.Setenv("WGTOOLS_VALIDATE_NO_WARNINGS", "true")
	t.Setenv("WGTOOLS_DIFF_ALIGN", "lcs")
	t.Setenv("WGTOOLS_DIFF_NORMALIZED", "1")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 8, c.CacheMaxSize)
	assert.Equal(t, 90*time.Second, c.CacheTTL)
	assert.Equal(t, int64(2048), c.MaxInlineSize)
	assert.Equal(t, 10, c.ResultLimit)
	assert.Equal(t, 50, c.MaxLimit)
	assert.True(t, c.ValidateNoWarnings)
	assert.Equal(t, differ.AlignLCS, c.DiffAlignment)
	assert.True(t, c.DiffNormalized)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	clearWGTOOLSEnv(t)
	t.Setenv("WGTOOLS_CACHE_ENABLED", "maybe")
	t.Setenv("WGTOOLS_CACHE_MAX_SIZE", "-3")
	t.Setenv("WGTOOLS_CACHE_TTL", "soon")
	t.Setenv("WGTOOLS_RESULT_LIMIT", "0")
	t.Setenv("WGTOOLS_DIFF_ALIGN", "myers")

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 32, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheTTL)
	assert.Equal(t, 100, c.ResultLimit)
	assert.Equal(t, differ.AlignIdentity, c.DiffAlignment)
}

func TestEnvDuration_NegativeFallsBack(t *testing.T) {
	t.Setenv("WGTOOLS_TEST_DURATION", "-5m")
	assert.Equal(t, time.Minute, envDuration("WGTOOLS_TEST_DURATION", time.Minute))
}
