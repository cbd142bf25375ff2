package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings" // strings trims and normalizes values
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Mail settings are optional: when MailHost
// is empty the server runs without a confirmation-email dispatcher and
// reservations are simply created without a delivery attempt.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign operator JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for operator password hashing

	PublicBaseURL string // base URL for check-in links embedded in QR codes

	MailHost    string // SMTP server host (empty disables email delivery)
	MailPort    int    // SMTP server port
	MailUser    string // SMTP username
	MailPass    string // SMTP password
	MailSender  string // From address; falls back to MailUser when empty

	QRServiceURL string // external QR image service endpoint (empty disables QR rendering)
	QRSize       int    // rendered QR size in pixels (square)

	AMQPURL string // broker URL for best-effort domain events (empty disables publishing)
}

// Load reads configuration values from environment variables and returns
// a Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Collaborator
// settings (mail, QR, broker) are optional and degrade to disabled.
func Load() Config {
	cfg := Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
		PublicBaseURL:  strings.TrimRight(must("PUBLIC_BASE_URL"), "/"),
		MailHost:       os.Getenv("MAIL_HOST"),
		MailPort:       envInt("MAIL_PORT", 587),
		MailUser:       os.Getenv("MAIL_USERNAME"),
		MailPass:       os.Getenv("MAIL_PASSWORD"),
		MailSender:     os.Getenv("MAIL_SENDER"),
		QRServiceURL:   os.Getenv("QR_SERVICE_URL"),
		QRSize:         envInt("QR_SIZE_PX", 300),
		AMQPURL:        os.Getenv("RABBITMQ_URL"),
	}
	if cfg.MailSender == "" {
		cfg.MailSender = cfg.MailUser
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
