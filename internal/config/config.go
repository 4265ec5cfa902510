package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
// The same struct is shared by the gateway, registration and email processes;
// each one reads only the fields it needs.
type Config struct {
	AppPort     string
	GatewayPort string
	NotifyPort  string
	AppEnv      string
	LogLevel    string

	AuthServiceURL     string // registration service, as seen by the gateway
	EmailServiceURL    string // email service, as seen by the registration service
	EmailServiceAPIKey string
	DownstreamTimeout  time.Duration
	NotifyTimeout      time.Duration
	OTPTTL             time.Duration

	Database Database

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	SNSRegion      string

	SMTPHost     string
	SMTPPort     int
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	AllowedOrigins []string // CORS allowed origins
	RateLimitRPS   float64
	RateLimitBurst int
	TrustedProxies []string // peers whose X-Forwarded-For is believed
}

// Database holds PostgreSQL connection and pool parameters.
type Database struct {
	User        string
	Password    string
	Host        string
	Port        string
	Name        string
	SSLMode     string
	PoolSize    int
	MaxOverflow int
	PoolTimeout time.Duration
	PoolRecycle time.Duration
	AutoMigrate bool
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	UserVerifications string
}

// defaultTrustedProxies covers loopback and the private ranges the services
// talk to each other over.
const defaultTrustedProxies = "127.0.0.1/32,::1/128,10.0.0.0/8,172.16.0.0/12,192.168.0.0/16"

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:     getEnv("APP_PORT", "8001"),
		GatewayPort: getEnv("GATEWAY_PORT", "8000"),
		NotifyPort:  getEnv("NOTIFY_PORT", "8002"),
		AppEnv:      getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		AuthServiceURL:     strings.TrimRight(getEnv("AUTH_SERVICE_URL", "http://localhost:8001"), "/"),
		EmailServiceURL:    strings.TrimRight(getEnv("EMAIL_SERVICE_URL", "http://localhost:8002"), "/"),
		EmailServiceAPIKey: getEnv("EMAIL_SERVICE_API_KEY", ""),
		DownstreamTimeout:  getEnvDuration("DOWNSTREAM_TIMEOUT", 10*time.Second),
		NotifyTimeout:      getEnvDuration("NOTIFY_TIMEOUT", 10*time.Second),
		OTPTTL:             getEnvDuration("OTP_TTL", 15*time.Minute),

		Database: Database{
			User:        getEnv("DATABASE_USER", ""),
			Password:    getEnv("DATABASE_PASSWORD", ""),
			Host:        getEnv("DATABASE_HOST", ""),
			Port:        getEnv("DATABASE_PORT", ""),
			Name:        getEnv("DATABASE_NAME", ""),
			SSLMode:     getEnv("DATABASE_SSLMODE", "disable"),
			PoolSize:    getEnvInt("DB_POOL_SIZE", 5),
			MaxOverflow: getEnvInt("DB_MAX_OVERFLOW", 10),
			PoolTimeout: time.Duration(getEnvInt("DB_POOL_TIMEOUT", 30)) * time.Second,
			PoolRecycle: time.Duration(getEnvInt("DB_POOL_RECYCLE", 1800)) * time.Second,
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", false),
		},

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			UserVerifications: getEnv("DYNAMO_TABLE_USER_VERIFICATIONS", "user_verifications"),
		},
		SNSRegion: getEnv("SNS_REGION", "us-east-1"),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 1025),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
		TrustedProxies: strings.Split(getEnv("TRUSTED_PROXIES", defaultTrustedProxies), ","),
	}
}

// DSN builds the PostgreSQL connection URL. All connection parameters are
// required; the error lists every missing one.
func (d Database) DSN() (string, error) {
	var missing []string
	for _, kv := range [][2]string{
		{"DATABASE_USER", d.User},
		{"DATABASE_PASSWORD", d.Password},
		{"DATABASE_HOST", d.Host},
		{"DATABASE_PORT", d.Port},
		{"DATABASE_NAME", d.Name},
	} {
		if kv[1] == "" {
			missing = append(missing, kv[0])
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("missing database configuration values: %s", strings.Join(missing, ", "))
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String(), nil
}

// MaxConns is the hard upper bound of the connection pool.
func (d Database) MaxConns() int32 {
	n := d.PoolSize + d.MaxOverflow
	if n < 1 {
		n = 1
	}
	return int32(n)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
