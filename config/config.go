package config

import "time"

// Config is everything the service reads from the environment at startup.
type Config struct {
	Port     string
	BaseURL  string
	LogLevel string

	Database Database
	Mail     Mail
	SMTP     SMTP
	Sandra   Sandra
	Auth     Auth

	// ConfigCacheTTL bounds how long config lookups are served from memory.
	ConfigCacheTTL time.Duration
	// ConfigPurgeAfter is how long soft-deleted config rows are kept before the daily purge.
	ConfigPurgeAfter time.Duration
}

type Database struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

type Mail struct {
	Driver      string // "mandrill" | "smtp"
	APIKey      string
	APIURL      string
	TemplateDir string
	Timeout     time.Duration
	// RateLimit is the number of template mails one client may send per minute.
	RateLimit int
}

type SMTP struct {
	Host string
	Port int
	User string
	Pass string
}

type Sandra struct {
	KeyPath       string
	KeyPassphrase string
}

type Auth struct {
	// PublicKeyPEM verifies bearer tokens; literal "\n" sequences are accepted.
	PublicKeyPEM string
}

// Load reads the process environment. Call godotenv.Load first to pick up a .env file.
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "4000"),
		BaseURL:  getEnv("BASE_URL", "http://localhost:4000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Database: Database{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "sandra"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Mail: Mail{
			Driver:      getEnv("MAIL_DRIVER", "mandrill"),
			APIKey:      getEnv("MAIL_API_KEY", ""),
			APIURL:      getEnv("MAIL_API_URL", "https://mandrillapp.com/api/1.0"),
			TemplateDir: getEnv("MAIL_TEMPLATE_DIR", "templates/email"),
			Timeout:     getEnvDuration("MAIL_TIMEOUT", 10*time.Second),
			RateLimit:   getEnvInt("MAIL_RATE_LIMIT", 20),
		},
		SMTP: SMTP{
			Host: getEnv("SMTP_HOST", ""),
			Port: getEnvInt("SMTP_PORT", 587),
			User: getEnv("SMTP_USER", ""),
			Pass: getEnv("SMTP_PASS", ""),
		},
		Sandra: Sandra{
			KeyPath:       getEnv("SANDRA_KEY_PATH", "keys/sandra.pem"),
			KeyPassphrase: getEnv("SANDRA_KEY_PASSPHRASE", ""),
		},
		Auth: Auth{
			PublicKeyPEM: getEnv("RSA_PUBLIC_KEY", ""),
		},
		ConfigCacheTTL:   getEnvDuration("CONFIG_CACHE_TTL", time.Minute),
		ConfigPurgeAfter: getEnvDuration("CONFIG_PURGE_AFTER", 30*24*time.Hour),
	}
}
