// Package config loads application configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Env         string
	HTTPAddr    string
	CORSOrigins []string

	// CRM webhook, e.g. https://example.bitrix24.kz/rest/1/token
	CRMWebhookURL string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
	MailTo   string

	RecaptchaSecret string

	ConsentCookieName string
}

// Load reads configuration from environment variables. godotenv.Load is
// expected to have run already (done in main).
func Load() *Config {
	return &Config{
		Env:               getEnv("ENV", "development"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "*")),
		CRMWebhookURL:     os.Getenv("CRM_WEBHOOK_URL"),
		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPPort:          getEnvInt("SMTP_PORT", 587),
		SMTPUser:          os.Getenv("SMTP_USER"),
		SMTPPass:          os.Getenv("SMTP_PASS"),
		MailFrom:          os.Getenv("MAIL_FROM"),
		MailTo:            os.Getenv("MAIL_TO"),
		RecaptchaSecret:   os.Getenv("RECAPTCHA_SECRET"),
		ConsentCookieName: getEnv("CONSENT_COOKIE_NAME", "cookie_consent"),
	}
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// CRMConfigured reports whether the CRM sink can be wired at all.
func (c *Config) CRMConfigured() bool {
	return c.CRMWebhookURL != ""
}

// SMTPConfigured requires the full transport config; a partially configured
// mail sink is treated as absent.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPass != "" &&
		c.MailFrom != "" && c.MailTo != ""
}

func (c *Config) RecaptchaConfigured() bool {
	return c.RecaptchaSecret != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
