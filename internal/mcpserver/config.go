package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/wordgrain/wgtools/differ"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Document cache settings.
	CacheEnabled bool
	CacheMaxSize int
	CacheTTL     time.Duration

	// Input and output limits.
	MaxInlineSize int64
	ResultLimit   int
	MaxLimit      int

	// Tool defaults.
	ValidateNoWarnings bool
	DiffAlignment      differ.Alignment
	DiffNormalized     bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from WGTOOLS_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("WGTOOLS_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("WGTOOLS_CACHE_MAX_SIZE", 32),
		CacheTTL:           envDuration("WGTOOLS_CACHE_TTL", 15*time.Minute),
		MaxInlineSize:      int64(envInt("WGTOOLS_MAX_INLINE_SIZE", 10*1024*1024)),
		ResultLimit:        envInt("WGTOOLS_RESULT_LIMIT", 100),
		MaxLimit:           envInt("WGTOOLS_MAX_LIMIT", 1000),
		ValidateNoWarnings: envBool("WGTOOLS_VALIDATE_NO_WARNINGS", false),
		DiffAlignment:      envAlignment("WGTOOLS_DIFF_ALIGN", differ.AlignIdentity),
		DiffNormalized:     envBool("WGTOOLS_DIFF_NORMALIZED", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

func envAlignment(key string, fallback differ.Alignment) differ.Alignment {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	a, err := differ.ParseAlignment(v)
	if err != nil {
		slog.Warn("invalid alignment env var, using default", "key", key, "value", v, "default", fallback.String())
		return fallback
	}
	return a
}
