package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWebDefaults(t *testing.T) {
	unsetenv(t, "GUESTBOOK_API_URL", "PORT", "PAGE_LANG", "SESSION_IDLE_TTL", "SESSION_LIMIT")

	cfg, err := LoadWeb()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api/guestbook", cfg.GuestbookEndpoint())
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "ko", cfg.PageLang)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 10000, cfg.SessionLimit)
}

func TestLoadWebEmptyURLFallsBack(t *testing.T) {
	t.Setenv("GUESTBOOK_API_URL", "")

	cfg, err := LoadWeb()
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, "http://localhost:8080/api/guestbook", cfg.GuestbookEndpoint())
}

func TestLoadWebOverride(t *testing.T) {
	t.Setenv("GUESTBOOK_API_URL", "https://guestbook.example.com/")
	t.Setenv("PORT", "4000")

	cfg, err := LoadWeb()
	require.NoError(t, err)

	assert.Equal(t, "https://guestbook.example.com/api/guestbook", cfg.GuestbookEndpoint())
	assert.Equal(t, 4000, cfg.Port)
}

func TestLoadAPIDefaultDSN(t *testing.T) {
	unsetenv(t, "DB_DSN", "PORT")

	cfg, err := LoadAPI()
	require.NoError(t, err)

	assert.Equal(t, DefaultDatabaseDSN, cfg.DatabaseDSN)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "guestbook.events", cfg.AMQPExchange)
}

func TestAllowedOrigins(t *testing.T) {
	cfg := APIConfig{CORSOrigins: " http://localhost:3000, ,https://gb.example.com"}
	assert.Equal(t, []string{"http://localhost:3000", "https://gb.example.com"}, cfg.AllowedOrigins())
}

// unsetenv removes keys for the duration of the test.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}
