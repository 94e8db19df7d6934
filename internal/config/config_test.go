package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var trackedEnv = []string{
	"BULLETIN_URL", "CACHE_FILE", "DOWNLOAD_DIR", "TIMEZONE", "HTTP_TIMEOUT",
	"LOG_LEVEL", "LOG_FILE", "DROPBOX_ACCESS_TOKEN", "DROPBOX_UPLOAD_PATH",
	"DROPBOX_API_URL", "NOTIFY_EMAIL", "SMTP_SERVER", "SMTP_PORT",
	"SMTP_USERNAME", "SMTP_PASSWORD", "GEMINI_API_KEY", "GEMINI_MODEL",
	"METRICS_FILE",
}

// clearEnv unsets every variable the loader reads, restoring them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range trackedEnv {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeEnvFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	conf, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, DefaultBulletinURL, conf.BulletinURL)
	assert.Equal(t, DefaultCacheFile, conf.CacheFile)
	assert.Equal(t, DefaultDownloadDir, conf.DownloadDir)
	assert.Equal(t, DefaultUploadPath, conf.Dropbox.UploadPath)
	assert.Equal(t, DefaultHTTPTimeout, conf.HTTPTimeout)
	assert.Equal(t, "info", conf.Log.Level)
	assert.Equal(t, "Europe/Istanbul", conf.Location().String())

	assert.False(t, conf.Dropbox.Enabled())
	assert.False(t, conf.Email.Enabled())
	assert.False(t, conf.Gemini.Enabled())
	assert.False(t, conf.Metrics.Enabled())
}

func TestLoad_NoEnvFile(t *testing.T) {
	clearEnv(t)

	conf, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultCacheFile, conf.CacheFile)
}

func TestLoad_FromEnvFile(t *testing.T) {
	clearEnv(t)
	path := writeEnvFile(t, `DROPBOX_ACCESS_TOKEN=sl.token
NOTIFY_EMAIL=me@example.com
SMTP_SERVER=smtp.example.com
SMTP_PORT=587
SMTP_USERNAME=bot@example.com
SMTP_PASSWORD=secret
DOWNLOAD_DIR=/tmp/bultenler
DROPBOX_UPLOAD_PATH=/Arsiv
HTTP_TIMEOUT=15s
`)

	conf, err := Load(path)
	require.NoError(t, err)

	assert.True(t, conf.Dropbox.Enabled())
	assert.Equal(t, "sl.token", conf.Dropbox.AccessToken)
	assert.Equal(t, "/Arsiv", conf.Dropbox.UploadPath)
	assert.Equal(t, "/tmp/bultenler", conf.DownloadDir)
	assert.Equal(t, 15*time.Second, conf.HTTPTimeout)

	require.True(t, conf.Email.Enabled())
	assert.Equal(t, EmailConfig{
		ToEmail:    "me@example.com",
		SMTPServer: "smtp.example.com",
		SMTPPort:   587,
		SMTPUser:   "bot@example.com",
		SMTPPass:   "secret",
	}, conf.Email)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeEnvFile(t, "CACHE_FILE=from-file.json\n")
	t.Setenv("CACHE_FILE", "from-env.json")

	conf, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.json", conf.CacheFile)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "loud")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_InvalidTimezone(t *testing.T) {
	clearEnv(t)
	t.Setenv("TIMEZONE", "Mars/Olympus_Mons")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_InvalidBulletinURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("BULLETIN_URL", "not a url")

	_, err := Load("")
	assert.Error(t, err)
}

func TestEmailConfig_Enabled(t *testing.T) {
	full := EmailConfig{
		ToEmail:    "me@example.com",
		SMTPServer: "smtp.example.com",
		SMTPPort:   587,
		SMTPUser:   "bot@example.com",
		SMTPPass:   "secret",
	}
	assert.True(t, full.Enabled())

	missing := []func(*EmailConfig){
		func(e *EmailConfig) { e.ToEmail = "" },
		func(e *EmailConfig) { e.SMTPServer = "" },
		func(e *EmailConfig) { e.SMTPPort = 0 },
		func(e *EmailConfig) { e.SMTPUser = "" },
		func(e *EmailConfig) { e.SMTPPass = "" },
	}
	for i, drop := range missing {
		e := full
		drop(&e)
		assert.False(t, e.Enabled(), "case %d", i)
	}
}
