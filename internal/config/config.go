/*
Package config loads the tracker's settings from the process environment and
an optional dotenv file.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/gookit/validate"
	"github.com/spf13/viper"
)

const (
	DefaultBulletinURL     = "https://www.ing.com.tr/tr/ing/ekonomi-sayfasi/aylik-ekonomi-bulteni"
	DefaultCacheFile       = "last_bulletins.json"
	DefaultDownloadDir     = "./downloads"
	DefaultUploadPath      = "/ING_Bultenler"
	DefaultDropboxAPIURL   = "https://content.dropboxapi.com"
	DefaultTimezone        = "Europe/Istanbul"
	DefaultHTTPTimeout     = 60 * time.Second
	DefaultLogLevel        = "info"
	DefaultLogFile         = "ing_bulten_tracker.log"
	DefaultGeminiModel     = "gemini-2.5-flash"
	DefaultEnvFile         = ".env"
	defaultSMTPPortUnknown = 0
)

// Config is the complete tracker configuration. Optional integrations are
// disabled, not broken, when their settings are absent.
type Config struct {
	BulletinURL string        `validate:"required|fullUrl"`
	CacheFile   string        `validate:"required"`
	DownloadDir string        `validate:"required"`
	Timezone    string        `validate:"required"`
	HTTPTimeout time.Duration `validate:"required"`

	Log     LogConfig
	Dropbox DropboxConfig
	Email   EmailConfig
	Gemini  GeminiConfig
	Metrics MetricsConfig

	location *time.Location
}

type LogConfig struct {
	Level string `validate:"required|in:trace,debug,info,warn,error"`
	File  string
}

type DropboxConfig struct {
	AccessToken string
	UploadPath  string `validate:"required"`
	APIURL      string `validate:"required|fullUrl"`
}

// Enabled reports whether uploads can be attempted.
func (d DropboxConfig) Enabled() bool {
	return d.AccessToken != ""
}

// EmailConfig holds SMTP configuration for sending notifications.
type EmailConfig struct {
	ToEmail    string
	SMTPServer string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
}

// Enabled reports whether every field needed to send a notification is set.
func (e EmailConfig) Enabled() bool {
	return e.ToEmail != "" &&
		e.SMTPServer != "" &&
		e.SMTPPort > 0 &&
		e.SMTPUser != "" &&
		e.SMTPPass != ""
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

func (g GeminiConfig) Enabled() bool {
	return g.APIKey != ""
}

type MetricsConfig struct {
	File string
}

func (m MetricsConfig) Enabled() bool {
	return m.File != ""
}

// Location is the time zone used to decide "today".
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("BULLETIN_URL", DefaultBulletinURL)
	v.SetDefault("CACHE_FILE", DefaultCacheFile)
	v.SetDefault("DOWNLOAD_DIR", DefaultDownloadDir)
	v.SetDefault("DROPBOX_UPLOAD_PATH", DefaultUploadPath)
	v.SetDefault("DROPBOX_API_URL", DefaultDropboxAPIURL)
	v.SetDefault("TIMEZONE", DefaultTimezone)
	v.SetDefault("HTTP_TIMEOUT", DefaultHTTPTimeout)
	v.SetDefault("LOG_LEVEL", DefaultLogLevel)
	v.SetDefault("LOG_FILE", DefaultLogFile)
	v.SetDefault("GEMINI_MODEL", DefaultGeminiModel)
	v.SetDefault("SMTP_PORT", defaultSMTPPortUnknown)
}

// Load reads envFile (if it exists) and the environment. Environment
// variables take precedence over the file.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read env file %s: %w", envFile, err)
			}
		}
	}

	conf := &Config{
		BulletinURL: v.GetString("BULLETIN_URL"),
		CacheFile:   v.GetString("CACHE_FILE"),
		DownloadDir: v.GetString("DOWNLOAD_DIR"),
		Timezone:    v.GetString("TIMEZONE"),
		HTTPTimeout: v.GetDuration("HTTP_TIMEOUT"),
		Log: LogConfig{
			Level: strings.ToLower(v.GetString("LOG_LEVEL")),
			File:  v.GetString("LOG_FILE"),
		},
		Dropbox: DropboxConfig{
			AccessToken: v.GetString("DROPBOX_ACCESS_TOKEN"),
			UploadPath:  v.GetString("DROPBOX_UPLOAD_PATH"),
			APIURL:      v.GetString("DROPBOX_API_URL"),
		},
		Email: EmailConfig{
			ToEmail:    v.GetString("NOTIFY_EMAIL"),
			SMTPServer: v.GetString("SMTP_SERVER"),
			SMTPPort:   v.GetInt("SMTP_PORT"),
			SMTPUser:   v.GetString("SMTP_USERNAME"),
			SMTPPass:   v.GetString("SMTP_PASSWORD"),
		},
		Gemini: GeminiConfig{
			APIKey: v.GetString("GEMINI_API_KEY"),
			Model:  v.GetString("GEMINI_MODEL"),
		},
		Metrics: MetricsConfig{
			File: v.GetString("METRICS_FILE"),
		},
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Validate checks field rules and resolves the time zone.
func (c *Config) Validate() error {
	for _, target := range []any{c, &c.Log, &c.Dropbox} {
		v := validate.Struct(target)
		if !v.Validate() {
			return fmt.Errorf("invalid configuration: %w", v.Errors)
		}
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid time zone name '%s': %w", c.Timezone, err)
	}
	c.location = loc

	return nil
}
