package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/paladino/propiedades-web/internal/gateway"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port"`
	Env             string        `json:"env"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	HTTPTimeout     time.Duration `json:"http_timeout"`
	CORSOrigins     string        `json:"cors_origins"`
	SiteURL         string        `json:"site_url"`

	// Content API
	ContentAPIURL     string        `json:"content_api_url"`
	UseMockData       bool          `json:"use_mock_data"`
	ContentAPITimeout time.Duration `json:"content_api_timeout"`
	ProbeURL          string        `json:"probe_url"`
	ProbeTimeout      time.Duration `json:"probe_timeout"`
	PlaceholderImage  string        `json:"placeholder_image"`

	// Redis configuration
	RedisURL    string `json:"redis_url"`
	RedisPrefix string `json:"redis_prefix"`

	// Contact form
	ContactDedupTTL       time.Duration `json:"contact_dedup_ttl"`
	ContactRequireCaptcha bool          `json:"contact_require_captcha"`
	InquiryPath           string        `json:"inquiry_path"`

	// Mail
	MailProvider   string `json:"mail_provider"`
	ZeptoAPIURL    string `json:"zepto_api_url"`
	ZeptoToken     string `json:"-"`
	MailFrom       string `json:"mail_from"`
	MailFromName   string `json:"mail_from_name"`
	MailTo         string `json:"mail_to"`
	AWSRegion      string `json:"aws_region"`

	// CloudFlare R2 Configuration
	R2Endpoint  string `json:"r2_endpoint"`
	R2AccessKey string `json:"-"`
	R2SecretKey string `json:"-"`
	R2Bucket    string `json:"r2_bucket"`
	R2AccountID string `json:"r2_account_id"`
	SitemapKey  string `json:"sitemap_key"`

	// Logging
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`
}

// Load loads configuration from environment variables and validates it
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := FromEnv()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	return cfg
}

// FromEnv reads the configuration without loading .env or validating.
func FromEnv() *Config {
	return &Config{
		// Server configuration
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
		SiteURL:         getEnv("SITE_URL", "https://paladinopropiedades.com.ar"),

		// Content API
		ContentAPIURL:     getEnv("CONTENT_API_URL", "https://api.paladinopropiedades.com.ar"),
		UseMockData:       getEnvAsBool("USE_MOCK_DATA", false),
		ContentAPITimeout: getEnvAsDuration("CONTENT_API_TIMEOUT", gateway.DefaultDataTimeout),
		ProbeURL:          getEnv("CONTENT_API_PROBE_URL", ""),
		ProbeTimeout:      getEnvAsDuration("CONTENT_API_PROBE_TIMEOUT", gateway.DefaultProbeTimeout),
		PlaceholderImage:  getEnv("PLACEHOLDER_IMAGE", gateway.DefaultPlaceholderImage),

		// Redis configuration; empty URL keeps dedup state in memory
		RedisURL:    getEnv("REDIS_URL", ""),
		RedisPrefix: getEnv("REDIS_PREFIX", "paladino:contact:"),

		// Contact form
		ContactDedupTTL:       getEnvAsDuration("CONTACT_DEDUP_TTL", 10*time.Minute),
		ContactRequireCaptcha: getEnvAsBool("CONTACT_REQUIRE_CAPTCHA", false),
		InquiryPath:           getEnv("INQUIRY_PATH", "./data/inquiries"),

		// Mail
		MailProvider: strings.ToLower(getEnv("MAIL_PROVIDER", "zeptomail")),
		ZeptoAPIURL:  getEnv("ZEPTO_API_URL", "https://api.zeptomail.com/v1.1/email"),
		ZeptoToken:   getEnv("ZEPTO_SMTP_TOKEN", ""),
		MailFrom:     getEnv("MAIL_FROM", "info@paladinopropiedades.com.ar"),
		MailFromName: getEnv("MAIL_FROM_NAME", "Web Paladino Propiedades"),
		MailTo:       getEnv("MAIL_TO", "info@paladinopropiedades.com.ar"),
		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),

		// CloudFlare R2 Configuration
		R2Endpoint:  getEnv("R2_ENDPOINT", ""),
		R2AccessKey: getEnv("R2_ACCESS_KEY", ""),
		R2SecretKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:    getEnv("R2_BUCKET", "paladino-web"),
		R2AccountID: getEnv("CLOUDFLARE_ACCOUNT_ID", ""),
		SitemapKey:  getEnv("SITEMAP_KEY", "sitemap.xml"),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	u, err := url.Parse(c.ContentAPIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("CONTENT_API_URL must be an absolute URL, got %q", c.ContentAPIURL)
	}
	if c.ContentAPITimeout <= 0 || c.ProbeTimeout <= 0 {
		return fmt.Errorf("content API timeouts must be positive")
	}
	switch c.MailProvider {
	case "zeptomail", "ses":
	default:
		return fmt.Errorf("MAIL_PROVIDER must be zeptomail or ses, got %q", c.MailProvider)
	}
	return nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// GatewayOptions derives the immutable content gateway configuration.
func (c *Config) GatewayOptions() gateway.Options {
	return gateway.Options{
		BaseURL:          strings.TrimRight(c.ContentAPIURL, "/"),
		ForceMock:        c.UseMockData,
		DataTimeout:      c.ContentAPITimeout,
		ProbeURL:         c.ProbeURL,
		ProbeTimeout:     c.ProbeTimeout,
		PlaceholderImage: c.PlaceholderImage,
	}
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %t", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
