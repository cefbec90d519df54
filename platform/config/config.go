// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Diagnosis runner modes.
const (
	DiagnosisRunnerInProcess = "inprocess"
	DiagnosisRunnerAsynq     = "asynq"
)

// Credential verification modes.
const (
	AuthModeAcceptAny  = "accept_any"
	AuthModeRegistered = "registered"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
	IsProduction() bool
}

// SessionConfig provides settings for signing and storing onboarding sessions.
type SessionConfig interface {
	GetSessionSecret() string
	GetSessionTTL() time.Duration
}

// CookieConfig provides settings for the session cookie.
type CookieConfig interface {
	GetSessionCookieName() string
	GetSessionCookieDomain() string
	GetSessionCookieSecure() bool
	GetSessionCookieSameSite() http.SameSite
	GetSessionTTL() time.Duration
}

// RedisConfig provides the optional Redis connection.
type RedisConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
}

// SchedulerConfig provides settings for the asynq task queue.
type SchedulerConfig interface {
	RedisConfig
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// DiagnosisConfig provides settings for the simulated diagnosis step.
type DiagnosisConfig interface {
	GetDiagnosisDelay() time.Duration
	GetDiagnosisRunner() string
}

// AuthConfig provides the credential verification mode.
type AuthConfig interface {
	GetAuthMode() string
}

// EmailConfig provides settings for SMTP email sending.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// NotificationConfig provides settings for the notification module.
type NotificationConfig interface {
	GetAppBaseURL() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                   string
	HTTPAddr              string
	CORSAllowAll          bool
	CORSOrigins           []string
	CORSAllowCreds        bool
	AppBaseURL            string
	SessionSecret         string
	SessionTTL            time.Duration
	SessionCookieName     string
	SessionCookieDomain   string
	SessionCookieSecure   bool
	SessionCookieSameSite http.SameSite
	RedisURL              string
	RedisTLSInsecure      bool
	AsynqQueueName        string
	AsynqConcurrency      int
	DiagnosisDelay        time.Duration
	DiagnosisRunner       string
	AuthMode              string
	EmailEnabled          bool
	SMTPHost              string
	SMTPPort              int
	SMTPUsername          string
	SMTPPassword          string
	EmailFromName         string
	EmailFromAddress      string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }
func (c *Config) IsProduction() bool       { return strings.EqualFold(c.Env, "production") }

// SessionConfig / CookieConfig implementation
func (c *Config) GetSessionSecret() string                { return c.SessionSecret }
func (c *Config) GetSessionTTL() time.Duration            { return c.SessionTTL }
func (c *Config) GetSessionCookieName() string            { return c.SessionCookieName }
func (c *Config) GetSessionCookieDomain() string          { return c.SessionCookieDomain }
func (c *Config) GetSessionCookieSecure() bool            { return c.SessionCookieSecure }
func (c *Config) GetSessionCookieSameSite() http.SameSite { return c.SessionCookieSameSite }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// DiagnosisConfig implementation
func (c *Config) GetDiagnosisDelay() time.Duration { return c.DiagnosisDelay }
func (c *Config) GetDiagnosisRunner() string       { return c.DiagnosisRunner }

// AuthConfig implementation
func (c *Config) GetAuthMode() string { return c.AuthMode }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool       { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }

// NotificationConfig implementation
func (c *Config) GetAppBaseURL() string { return c.AppBaseURL }

// =============================================================================
// Loading
// =============================================================================

// Load reads configuration from the environment (and an optional .env file).
func Load() (*Config, error) {
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "development")

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cookieSecure := strings.EqualFold(getEnv("SESSION_COOKIE_SECURE", ""), "true")
	if getEnv("SESSION_COOKIE_SECURE", "") == "" {
		cookieSecure = strings.EqualFold(env, "production")
	}

	sessionTTL, err := parseDuration("SESSION_TTL", "24h")
	if err != nil {
		return nil, err
	}
	diagnosisDelay, err := parseDuration("DIAGNOSIS_DELAY", "2s")
	if err != nil {
		return nil, err
	}
	smtpPort, err := parseInt("SMTP_PORT", "587")
	if err != nil {
		return nil, err
	}
	concurrency, err := parseInt("ASYNQ_CONCURRENCY", "10")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:                   env,
		HTTPAddr:              getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:          corsAllowAll,
		CORSOrigins:           corsOrigins,
		CORSAllowCreds:        strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		AppBaseURL:            getEnv("APP_BASE_URL", "http://localhost:5173"),
		SessionSecret:         getEnv("SESSION_SECRET", ""),
		SessionTTL:            sessionTTL,
		SessionCookieName:     getEnv("SESSION_COOKIE_NAME", "sst_session"),
		SessionCookieDomain:   getEnv("SESSION_COOKIE_DOMAIN", ""),
		SessionCookieSecure:   cookieSecure,
		SessionCookieSameSite: parseSameSite(getEnv("SESSION_COOKIE_SAMESITE", "Lax")),
		RedisURL:              getEnv("REDIS_URL", ""),
		RedisTLSInsecure:      strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:        getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:      concurrency,
		DiagnosisDelay:        diagnosisDelay,
		DiagnosisRunner:       strings.ToLower(getEnv("DIAGNOSIS_RUNNER", DiagnosisRunnerInProcess)),
		AuthMode:              strings.ToLower(getEnv("AUTH_MODE", AuthModeAcceptAny)),
		EmailEnabled:          strings.EqualFold(getEnv("EMAIL_ENABLED", "false"), "true"),
		SMTPHost:              getEnv("SMTP_HOST", ""),
		SMTPPort:              smtpPort,
		SMTPUsername:          getEnv("SMTP_USERNAME", ""),
		SMTPPassword:          getEnv("SMTP_PASSWORD", ""),
		EmailFromName:         getEnv("EMAIL_FROM_NAME", "SESI Saúde Connect"),
		EmailFromAddress:      getEnv("EMAIL_FROM_ADDRESS", ""),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.DiagnosisDelay < 0 {
		return fmt.Errorf("DIAGNOSIS_DELAY cannot be negative")
	}
	switch c.DiagnosisRunner {
	case DiagnosisRunnerInProcess:
	case DiagnosisRunnerAsynq:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when DIAGNOSIS_RUNNER is %q", DiagnosisRunnerAsynq)
		}
	default:
		return fmt.Errorf("unknown DIAGNOSIS_RUNNER %q", c.DiagnosisRunner)
	}
	switch c.AuthMode {
	case AuthModeAcceptAny, AuthModeRegistered:
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.AuthMode)
	}
	if c.EmailEnabled && (c.SMTPHost == "" || c.EmailFromAddress == "") {
		return fmt.Errorf("SMTP_HOST and EMAIL_FROM_ADDRESS are required when EMAIL_ENABLED is true")
	}
	if c.CORSAllowAll && c.CORSAllowCreds {
		return fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	raw := strings.TrimSpace(getEnv(key, fallback))
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func parseInt(key, fallback string) (int, error) {
	raw := strings.TrimSpace(getEnv(key, fallback))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return n, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}

func parseSameSite(value string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
