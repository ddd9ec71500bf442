package config

import (
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting the server and the CLI read from the environment.
type Config struct {
	AppPort string
	AppID   string

	DBDriver    string
	DatabaseDSN string

	JWTSecret   string
	OwnerOpenID string

	OAuthIssuerURL    string
	OAuthClientID     string
	OAuthClientSecret string
	OAuthRedirectURL  string

	NotifyWebhookURL string
	NotifyAPIKey     string
	NotifyTimeout    time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
	MailFrom     string
	MailFromName string
	ContactPhone string
	EmailTimeout time.Duration

	RabbitMQURL    string
	CORSOrigin     string
	OrderRefPrefix string
}

var orderRefPrefixRe = regexp.MustCompile(`^[A-Z]{2}$`)

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ID", "artshop")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "artshop.db")
	v.SetDefault("NOTIFY_TIMEOUT", "30s")
	v.SetDefault("SMTP_HOST", "smtp.mail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("MAIL_FROM_NAME", "Benjamin Thomas Art")
	v.SetDefault("EMAIL_TIMEOUT", "60s")
	v.SetDefault("ORDER_REF_PREFIX", "BT")
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:           v.GetString("APP_PORT"),
		AppID:             v.GetString("APP_ID"),
		DBDriver:          v.GetString("DB_DRIVER"),
		DatabaseDSN:       v.GetString("DATABASE_DSN"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		OwnerOpenID:       v.GetString("OWNER_OPEN_ID"),
		OAuthIssuerURL:    v.GetString("OAUTH_ISSUER_URL"),
		OAuthClientID:     v.GetString("OAUTH_CLIENT_ID"),
		OAuthClientSecret: v.GetString("OAUTH_CLIENT_SECRET"),
		OAuthRedirectURL:  v.GetString("OAUTH_REDIRECT_URL"),
		NotifyWebhookURL:  v.GetString("NOTIFY_WEBHOOK_URL"),
		NotifyAPIKey:      v.GetString("NOTIFY_API_KEY"),
		NotifyTimeout:     v.GetDuration("NOTIFY_TIMEOUT"),
		SMTPHost:          v.GetString("SMTP_HOST"),
		SMTPPort:          v.GetInt("SMTP_PORT"),
		SMTPUser:          v.GetString("SMTP_USER"),
		SMTPPass:          v.GetString("SMTP_PASS"),
		MailFrom:          v.GetString("MAIL_FROM"),
		MailFromName:      v.GetString("MAIL_FROM_NAME"),
		ContactPhone:      v.GetString("CONTACT_PHONE"),
		EmailTimeout:      v.GetDuration("EMAIL_TIMEOUT"),
		RabbitMQURL:       v.GetString("RABBITMQ_URL"),
		CORSOrigin:        v.GetString("CORS_ORIGIN"),
		OrderRefPrefix:    v.GetString("ORDER_REF_PREFIX"),
	}
	if cfg.MailFrom == "" {
		cfg.MailFrom = cfg.SMTPUser
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail late at request time.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want postgres, mysql or sqlite)", c.DBDriver)
	}
	if c.JWTSecret == "" && c.DBDriver != "sqlite" {
		return fmt.Errorf("JWT_SECRET is required when DB_DRIVER is %s", c.DBDriver)
	}
	if !orderRefPrefixRe.MatchString(c.OrderRefPrefix) {
		return fmt.Errorf("ORDER_REF_PREFIX must be exactly two uppercase letters, got %q", c.OrderRefPrefix)
	}
	return nil
}

// OAuthEnabled reports whether enough settings are present to run the login flow.
func (c *Config) OAuthEnabled() bool {
	return c.OAuthIssuerURL != "" && c.OAuthClientID != "" && c.OAuthRedirectURL != ""
}

// SMTPAddr is the host:port pair handed to the mail transport.
func (c *Config) SMTPAddr() string {
	return fmt.Sprintf("%s:%d", c.SMTPHost, c.SMTPPort)
}
