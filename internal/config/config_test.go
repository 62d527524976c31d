package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("CONTENT_API_URL", "https://api.paladinopropiedades.com.ar/")
	t.Setenv("CONTENT_API_TIMEOUT", "")
	t.Setenv("USE_MOCK_DATA", "")
	t.Setenv("CONTENT_API_PROBE_TIMEOUT", "")
	t.Setenv("MAIL_PROVIDER", "zeptomail")

	cfg := FromEnv()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10*time.Second, cfg.ContentAPITimeout)

	opts := cfg.GatewayOptions()
	assert.Equal(t, "https://api.paladinopropiedades.com.ar", opts.BaseURL)
	assert.False(t, opts.ForceMock)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("USE_MOCK_DATA", "true")
	t.Setenv("CONTENT_API_TIMEOUT", "3s")
	t.Setenv("CONTACT_DEDUP_TTL", "not-a-duration")
	t.Setenv("MAIL_PROVIDER", "SES")

	cfg := FromEnv()
	assert.True(t, cfg.UseMockData)
	assert.Equal(t, 3*time.Second, cfg.ContentAPITimeout)
	assert.Equal(t, 10*time.Minute, cfg.ContactDedupTTL)
	assert.Equal(t, "ses", cfg.MailProvider)
}

func TestValidate(t *testing.T) {
	cfg := &Config{ContentAPIURL: "/relative", ContentAPITimeout: time.Second, ProbeTimeout: time.Second, MailProvider: "zeptomail"}
	assert.Error(t, cfg.Validate())

	cfg.ContentAPIURL = "https://api.example.com"
	assert.NoError(t, cfg.Validate())

	cfg.MailProvider = "smtp"
	assert.Error(t, cfg.Validate())
}
