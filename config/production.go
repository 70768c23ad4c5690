// Package config provides configuration management and environment variable handling for the application
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

// ProductionConfig holds all configuration for production environment
type ProductionConfig struct {
	Server       ServerConfig       `json:"server"`
	Security     SecurityConfig     `json:"security"`
	JWT          JWTConfig          `json:"jwt"`
	Gateway      GatewayConfig      `json:"gateway"`
	Store        StoreConfig        `json:"store"`
	Database     DatabaseConfig     `json:"database"`
	Cache        CacheConfig        `json:"cache"`
	Notification NotificationConfig `json:"notification"`
	Logging      LoggingConfig      `json:"logging"`
	Metrics      MetricsConfig      `json:"metrics"`
	Deployment   DeploymentConfig   `json:"deployment"`
}

type ServerConfig struct {
	Host              string        `json:"host"`
	Port              int           `json:"port"`
	ReadTimeout       time.Duration `json:"read_timeout"`
	WriteTimeout      time.Duration `json:"write_timeout"`
	IdleTimeout       time.Duration `json:"idle_timeout"`
	ShutdownTimeout   time.Duration `json:"shutdown_timeout"`
	BodyLimit         int           `json:"body_limit"`
	EnableCompression bool          `json:"enable_compression"`
}

type SecurityConfig struct {
	// CORS
	AllowedOrigins   []string `json:"allowed_origins"`
	AllowedMethods   []string `json:"allowed_methods"`
	AllowedHeaders   []string `json:"allowed_headers"`
	AllowCredentials bool     `json:"allow_credentials"`
	CORSMaxAge       int      `json:"cors_max_age"`

	// Rate Limiting
	AuthRateLimit   int           `json:"auth_rate_limit"`   // requests per minute
	GlobalRateLimit int           `json:"global_rate_limit"` // requests per minute
	RateLimitWindow time.Duration `json:"rate_limit_window"`
}

type JWTConfig struct {
	SecretKey  string        `json:"secret_key"`
	PrivateKey string        `json:"private_key"`  // RSA private key in PEM format
	PublicKey  string        `json:"public_key"`   // RSA public key in PEM format
	UseRSAKeys bool          `json:"use_rsa_keys"` // Whether to use RSA keys instead of secret key
	TokenTTL   time.Duration `json:"token_ttl"`
	Issuer     string        `json:"issuer"`
	Audience   string        `json:"audience"`
}

// GatewayConfig holds the SMS/voice gateway credentials and service identifiers.
// None of these are required at startup; missing values are reported by the
// diagnostic endpoint and make the dependent operation fail fast.
type GatewayConfig struct {
	Provider            string        `json:"provider"` // twilio, mock
	AccountSID          string        `json:"account_sid"`
	AuthToken           string        `json:"-"`
	MessagingServiceSID string        `json:"messaging_service_sid"`
	PhoneNumber         string        `json:"phone_number"`
	VerifyServiceSID    string        `json:"verify_service_sid"`
	ProxyServiceSID     string        `json:"proxy_service_sid"`
	BaseURL             string        `json:"base_url"` // public URL used for status callbacks
	APIBaseURL          string        `json:"api_base_url"`
	VerifyBaseURL       string        `json:"verify_base_url"`
	ProxyBaseURL        string        `json:"proxy_base_url"`
	Timeout             time.Duration `json:"timeout"`
}

// HasCredentials reports whether both account credentials are present
func (g GatewayConfig) HasCredentials() bool {
	return g.AccountSID != "" && g.AuthToken != ""
}

// HasSender reports whether a sending identity is configured
func (g GatewayConfig) HasSender() bool {
	return g.MessagingServiceSID != "" || g.PhoneNumber != ""
}

type StoreConfig struct {
	Provider  string `json:"provider"` // redis, postgres, memory
	KeyPrefix string `json:"key_prefix"`
}

type DatabaseConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Name            string        `json:"name"`
	User            string        `json:"user"`
	Password        string        `json:"password"`
	SSLMode         string        `json:"ssl_mode"`
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `json:"conn_max_idle_time"`
}

type CacheConfig struct {
	RedisURL        string        `json:"redis_url"`
	RedisDB         int           `json:"redis_db"`
	CleanupInterval time.Duration `json:"cleanup_interval"`
}

type NotificationConfig struct {
	DedupeWindow     time.Duration `json:"dedupe_window"`
	Helpline         string        `json:"helpline"`
	RelaySessionTTL  time.Duration `json:"relay_session_ttl"`
	MaxMessageLength int           `json:"max_message_length"`
}

type LoggingConfig struct {
	Level      string `json:"level"`  // debug, info, warn, error
	Output     string `json:"output"` // stdout, file, both
	FilePath   string `json:"file_path"`
	MaxSize    int    `json:"max_size"` // MB
	MaxBackups int    `json:"max_backups"`
	MaxAge     int    `json:"max_age"` // days
	Compress   bool   `json:"compress"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

type DeploymentConfig struct {
	Environment string `json:"environment"`
	Version     string `json:"version"`
	CommitHash  string `json:"commit_hash"`
	BuildTime   string `json:"build_time"`
}

// LoadProductionConfig loads and validates configuration from environment variables
func LoadProductionConfig() (*ProductionConfig, error) {
	// Load environment variables from .env file
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &ProductionConfig{
		Server: ServerConfig{
			Host:              getEnvString("SERVER_HOST", "0.0.0.0"),
			Port:              getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:       getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:      getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:       getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout:   getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			BodyLimit:         getEnvInt("SERVER_BODY_LIMIT", 1024*1024), // 1MB
			EnableCompression: getEnvBool("SERVER_ENABLE_COMPRESSION", true),
		},
		Security: SecurityConfig{
			AllowedOrigins:   getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
			AllowedMethods:   getEnvStringSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "OPTIONS"}),
			AllowedHeaders:   getEnvStringSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"}),
			AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", false),
			CORSMaxAge:       getEnvInt("CORS_MAX_AGE", 86400),
			AuthRateLimit:    getEnvInt("AUTH_RATE_LIMIT", 20),
			GlobalRateLimit:  getEnvInt("GLOBAL_RATE_LIMIT", 2000),
			RateLimitWindow:  getEnvDuration("RATE_LIMIT_WINDOW", 1*time.Minute),
		},
		JWT: JWTConfig{
			SecretKey:  getEnvString("JWT_SECRET_KEY", ""),
			PrivateKey: getEnvString("JWT_PRIVATE_KEY", ""),
			PublicKey:  getEnvString("JWT_PUBLIC_KEY", ""),
			UseRSAKeys: getEnvBool("JWT_USE_RSA_KEYS", false),
			TokenTTL:   getEnvDuration("JWT_TOKEN_TTL", 24*time.Hour),
			Issuer:     getEnvString("JWT_ISSUER", "hobli-notify"),
			Audience:   getEnvString("JWT_AUDIENCE", "hobli-notify-api"),
		},
		Gateway: GatewayConfig{
			Provider:            getEnvString("TWILIO_PROVIDER", "twilio"),
			AccountSID:          getEnvString("TWILIO_ACCOUNT_SID", ""),
			AuthToken:           getEnvString("TWILIO_AUTH_TOKEN", ""),
			MessagingServiceSID: getEnvString("TWILIO_MESSAGING_SERVICE_SID", ""),
			PhoneNumber:         getEnvString("TWILIO_PHONE_NUMBER", ""),
			VerifyServiceSID:    getEnvString("TWILIO_VERIFY_SERVICE_SID", ""),
			ProxyServiceSID:     getEnvString("TWILIO_PROXY_SERVICE_SID", ""),
			BaseURL:             strings.TrimRight(getEnvString("BASE_URL", ""), "/"),
			APIBaseURL:          getEnvString("TWILIO_API_BASE_URL", "https://api.twilio.com"),
			VerifyBaseURL:       getEnvString("TWILIO_VERIFY_BASE_URL", "https://verify.twilio.com"),
			ProxyBaseURL:        getEnvString("TWILIO_PROXY_BASE_URL", "https://proxy.twilio.com"),
			Timeout:             getEnvDuration("TWILIO_TIMEOUT", 15*time.Second),
		},
		Store: StoreConfig{
			Provider:  getEnvString("STORE_PROVIDER", "redis"),
			KeyPrefix: getEnvString("STORE_KEY_PREFIX", ""),
		},
		Database: DatabaseConfig{
			Host:            getEnvString("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			Name:            getEnvString("DB_NAME", "postgres"),
			User:            getEnvString("DB_USER", "postgres"),
			Password:        getEnvString("DB_PASSWORD", ""),
			SSLMode:         getEnvString("DB_SSL_MODE", "require"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvDuration("DB_CONN_MAX_IDLE_TIME", 15*time.Minute),
		},
		Cache: CacheConfig{
			RedisURL:        getEnvString("CACHE_REDIS_URL", "redis://localhost:6379"),
			RedisDB:         getEnvInt("CACHE_REDIS_DB", 0),
			CleanupInterval: getEnvDuration("CACHE_CLEANUP_INTERVAL", 30*time.Second),
		},
		Notification: NotificationConfig{
			DedupeWindow:     getEnvDuration("NOTIFY_DEDUPE_WINDOW", 10*time.Minute),
			Helpline:         getEnvString("NOTIFY_HELPLINE", "1800-XXX-XXXX"),
			RelaySessionTTL:  getEnvDuration("RELAY_SESSION_TTL", 2*time.Hour),
			MaxMessageLength: getEnvInt("NOTIFY_MAX_MESSAGE_LENGTH", 160),
		},
		Logging: LoggingConfig{
			Level:      getEnvString("LOG_LEVEL", "info"),
			Output:     getEnvString("LOG_OUTPUT", "stdout"),
			FilePath:   getEnvString("LOG_FILE_PATH", "/var/log/hobli-notify/app.log"),
			MaxSize:    getEnvInt("LOG_MAX_SIZE", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 10),
			MaxAge:     getEnvInt("LOG_MAX_AGE", 30),
			Compress:   getEnvBool("LOG_COMPRESS", true),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Path:    getEnvString("METRICS_PATH", "/metrics"),
		},
		Deployment: DeploymentConfig{
			Environment: getEnvString("APP_ENV", "production"),
			Version:     getEnvString("VERSION", "1.0.0"),
			CommitHash:  getEnvString("COMMIT_HASH", "unknown"),
			BuildTime:   getEnvString("BUILD_TIME", "unknown"),
		},
	}

	// Validate the loaded configuration
	if err := ValidateProductionConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadEnvFile loads environment variables from .env file if it exists
func loadEnvFile() error {
	envFile := ".env"

	// Check if .env file exists
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		// .env file doesn't exist, continue with environment variables
		return nil
	}

	file, err := os.Open(envFile)
	if err != nil {
		return fmt.Errorf("failed to open .env file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		// Remove quotes if present
		if len(value) >= 2 && ((strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`)) ||
			(strings.HasPrefix(value, `'`) && strings.HasSuffix(value, `'`))) {
			value = value[1 : len(value)-1]
		}

		// Real environment wins over the file
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading .env file: %w", err)
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var result []string
		for _, item := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}

// ValidateProductionConfig validates the production configuration.
// Gateway settings are intentionally not validated here.
func ValidateProductionConfig(cfg *ProductionConfig) error {
	var result *multierror.Error

	// Validate JWT configuration
	if cfg.JWT.UseRSAKeys {
		if cfg.JWT.PrivateKey == "" || cfg.JWT.PublicKey == "" {
			result = multierror.Append(result, fmt.Errorf("JWT_PRIVATE_KEY and JWT_PUBLIC_KEY are required when JWT_USE_RSA_KEYS is set"))
		}
	} else if len(cfg.JWT.SecretKey) < 32 {
		result = multierror.Append(result, fmt.Errorf("JWT_SECRET_KEY must be at least 32 characters long"))
	}
	if cfg.JWT.TokenTTL <= 0 {
		result = multierror.Append(result, fmt.Errorf("JWT_TOKEN_TTL must be positive"))
	}

	// Validate server configuration
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		result = multierror.Append(result, fmt.Errorf("SERVER_PORT must be between 1 and 65535"))
	}
	if cfg.Server.ReadTimeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("SERVER_READ_TIMEOUT must be positive"))
	}
	if cfg.Server.WriteTimeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive"))
	}

	// Validate record store configuration
	switch cfg.Store.Provider {
	case "redis":
		if cfg.Cache.RedisURL == "" {
			result = multierror.Append(result, fmt.Errorf("CACHE_REDIS_URL is required when STORE_PROVIDER is redis"))
		}
	case "postgres":
		if cfg.Database.Host == "" {
			result = multierror.Append(result, fmt.Errorf("DB_HOST is required when STORE_PROVIDER is postgres"))
		}
		if cfg.Database.Port <= 0 || cfg.Database.Port > 65535 {
			result = multierror.Append(result, fmt.Errorf("DB_PORT must be between 1 and 65535"))
		}
		if cfg.Database.User == "" {
			result = multierror.Append(result, fmt.Errorf("DB_USER is required when STORE_PROVIDER is postgres"))
		}
	case "memory":
	default:
		result = multierror.Append(result, fmt.Errorf("STORE_PROVIDER must be one of: redis, postgres, memory"))
	}

	switch cfg.Gateway.Provider {
	case "twilio", "mock":
	default:
		result = multierror.Append(result, fmt.Errorf("TWILIO_PROVIDER must be one of: twilio, mock"))
	}

	// Validate notification configuration
	if cfg.Notification.DedupeWindow <= 0 {
		result = multierror.Append(result, fmt.Errorf("NOTIFY_DEDUPE_WINDOW must be positive"))
	}
	if cfg.Notification.RelaySessionTTL <= 0 {
		result = multierror.Append(result, fmt.Errorf("RELAY_SESSION_TTL must be positive"))
	}
	if cfg.Notification.MaxMessageLength <= 0 {
		result = multierror.Append(result, fmt.Errorf("NOTIFY_MAX_MESSAGE_LENGTH must be positive"))
	}

	// Validate logging configuration
	switch cfg.Logging.Output {
	case "stdout", "file", "both":
	default:
		result = multierror.Append(result, fmt.Errorf("LOG_OUTPUT must be one of: stdout, file, both"))
	}
	if cfg.Logging.Output != "stdout" && cfg.Logging.FilePath == "" {
		result = multierror.Append(result, fmt.Errorf("LOG_FILE_PATH is required when logging to a file"))
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	return nil
}
