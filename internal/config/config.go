package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/solstice-events/bookings-api/internal/secrets"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Warehouse WarehouseConfig
	Auth      AuthConfig
	Storage   StorageConfig
	Secrets   SecretsConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
	Jobs      JobsConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
}

// WarehouseConfig holds configuration for the MS SQL Server reporting
// warehouse. The connection is optional; paid invoices are exported to it.
type WarehouseConfig struct {
	Enabled bool
	// URL is the connection URL in format host:port/database
	URL      string
	User     string
	Password string
	// Schema is the target schema for exported rows
	Schema          string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	QueryTimeout    int
}

// AuthConfig holds token validation settings. Secret signs and verifies
// API tokens; APIKey is the shared key used by internal systems.
type AuthConfig struct {
	Secret string
	Issuer string
	APIKey string
}

type StorageConfig struct {
	Mode                  string
	LocalBasePath         string
	CloudConnectionString string
	CloudContainer        string
	MaxUploadSizeMB       int64
}

type SecretsConfig struct {
	// Source determines where secrets are loaded from: "environment", "vault", or "auto"
	Source       string
	KeyVaultName string
	CacheEnabled bool
	CacheTTL     int // seconds
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	HSTSPreload           bool
	ContentSecurityPolicy string
	FrameOptions          string
	ContentTypeNosniff    bool
	XSSProtection         string
	ReferrerPolicy        string
	PermissionsPolicy     string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled               bool
	RequestsPerMinute     int
	RequestsPerMinuteAuth int
	BurstSize             int
	WhitelistIPs          []string
	WhitelistPaths        []string
}

// JobsConfig holds cron schedules for background jobs
type JobsConfig struct {
	Enabled bool
	// OverdueReminderSchedule logs SENT and PARTIAL invoices past
	// their due date
	OverdueReminderSchedule string
	// WarehouseExportSchedule pushes paid invoices to the reporting
	// warehouse
	WarehouseExportSchedule string
}

// ConnectionString builds PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// RequestTimeoutDuration returns request timeout as duration
func (s *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (w *WarehouseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(w.ConnMaxLifetime) * time.Second
}

// QueryTimeoutDuration returns query timeout as duration
func (w *WarehouseConfig) QueryTimeoutDuration() time.Duration {
	return time.Duration(w.QueryTimeout) * time.Second
}

// Load loads configuration from file and environment variables.
// This is a basic load that doesn't fetch secrets from vault;
// use LoadWithSecrets for full secret resolution.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Auth settings from environment if not in config
	if cfg.Auth.Secret == "" {
		cfg.Auth.Secret = v.GetString("AUTH_TOKEN_SECRET")
	}
	if cfg.Auth.Issuer == "" {
		cfg.Auth.Issuer = v.GetString("AUTH_TOKEN_ISSUER")
	}
	if cfg.Auth.APIKey == "" {
		cfg.Auth.APIKey = v.GetString("ADMIN_API_KEY")
	}

	if cfg.Secrets.KeyVaultName == "" {
		cfg.Secrets.KeyVaultName = v.GetString("AZURE_KEY_VAULT_NAME")
	}

	if v.GetBool("WAREHOUSE_ENABLED") {
		cfg.Warehouse.Enabled = true
	}

	return &cfg, nil
}

// LoadWithSecrets loads configuration and resolves secrets from the
// configured source. In development, secrets come from env vars; in
// staging/production with USE_AZURE_KEY_VAULT=true they come from
// Azure Key Vault. Warehouse credentials are only ever loaded from
// Key Vault when the export is enabled.
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	useKeyVault := strings.ToLower(os.Getenv("USE_AZURE_KEY_VAULT")) == "true"
	isValidEnv := cfg.App.Environment == "staging" || cfg.App.Environment == "production"

	// Warehouse credentials are loaded from Key Vault regardless of
	// environment when the export is enabled and a vault is configured.
	if cfg.Warehouse.Enabled && cfg.Secrets.KeyVaultName != "" {
		if err := loadWarehouseSecrets(ctx, cfg, logger); err != nil {
			logger.Warn("failed to load warehouse secrets from Key Vault",
				zap.Error(err),
				zap.String("environment", cfg.App.Environment),
			)
			// Warehouse export is optional, don't fail startup
		}
	}

	if !useKeyVault {
		logger.Info("USE_AZURE_KEY_VAULT not enabled, using environment variables for secrets",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if !isValidEnv {
		logger.Warn("USE_AZURE_KEY_VAULT is enabled but environment is not staging or production, using environment variables",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if cfg.Secrets.KeyVaultName == "" {
		return nil, fmt.Errorf("AZURE_KEY_VAULT_NAME is required when USE_AZURE_KEY_VAULT=true")
	}

	logger.Info("Azure Key Vault enabled for secrets",
		zap.String("environment", cfg.App.Environment),
		zap.String("key_vault_name", cfg.Secrets.KeyVaultName),
	)

	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:       secrets.SourceVault,
		VaultName:    cfg.Secrets.KeyVaultName,
		Environment:  cfg.App.Environment,
		CacheEnabled: cfg.Secrets.CacheEnabled,
		CacheTTL:     time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets provider: %w", err)
	}

	logger.Info("Loading secrets from Azure Key Vault")

	if host, err := provider.GetSecretOrEnv(ctx, "POSTGRES-MAIN-HOST", "DATABASE_HOST"); err == nil && host != "" {
		cfg.Database.Host = host
	}
	if defaultDB := os.Getenv("DEFAULT_DATABASE"); defaultDB != "" {
		cfg.Database.Name = defaultDB
	}
	if user, err := provider.GetSecretOrEnv(ctx, "POSTGRES-MAIN-USER", "DATABASE_USER"); err == nil && user != "" {
		cfg.Database.User = user
	}
	if password, err := provider.GetSecretOrEnv(ctx, "POSTGRES-MAIN-PASSWORD", "DATABASE_PASSWORD"); err == nil && password != "" {
		cfg.Database.Password = password
	}
	if sslMode := os.Getenv("DATABASE_SSLMODE"); sslMode != "" {
		cfg.Database.SSLMode = sslMode
	}

	if secret, err := provider.GetSecretOrEnv(ctx, "auth-token-secret", "AUTH_TOKEN_SECRET"); err == nil && secret != "" {
		cfg.Auth.Secret = secret
	}
	if apiKey, err := provider.GetSecretOrEnv(ctx, "admin-api-key", "ADMIN_API_KEY"); err == nil && apiKey != "" {
		cfg.Auth.APIKey = apiKey
	}

	if connStr, err := provider.GetSecretOrEnv(ctx, "storage-connection-string", "STORAGE_CLOUDCONNECTIONSTRING"); err == nil && connStr != "" {
		cfg.Storage.CloudConnectionString = connStr
	}

	logger.Info("Secrets loaded from vault successfully")
	return cfg, nil
}

// loadWarehouseSecrets loads warehouse credentials from Azure Key Vault.
// There is no env var fallback for these.
func loadWarehouseSecrets(ctx context.Context, cfg *Config, logger *zap.Logger) error {
	logger.Info("Loading warehouse secrets from Key Vault",
		zap.String("key_vault_name", cfg.Secrets.KeyVaultName),
	)

	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:       secrets.SourceVault,
		VaultName:    cfg.Secrets.KeyVaultName,
		Environment:  cfg.App.Environment,
		CacheEnabled: cfg.Secrets.CacheEnabled,
		CacheTTL:     time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize vault client for warehouse: %w", err)
	}

	url, err := provider.GetSecret(ctx, "WAREHOUSE-URL")
	if err != nil {
		return fmt.Errorf("failed to get WAREHOUSE-URL from Key Vault: %w", err)
	}
	cfg.Warehouse.URL = url

	user, err := provider.GetSecret(ctx, "WAREHOUSE-USERNAME")
	if err != nil {
		return fmt.Errorf("failed to get WAREHOUSE-USERNAME from Key Vault: %w", err)
	}
	cfg.Warehouse.User = user

	password, err := provider.GetSecret(ctx, "WAREHOUSE-PASSWORD")
	if err != nil {
		return fmt.Errorf("failed to get WAREHOUSE-PASSWORD from Key Vault: %w", err)
	}
	cfg.Warehouse.Password = password

	logger.Info("Warehouse credentials loaded from Key Vault")
	return nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Solstice Bookings API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "bookings")
	v.SetDefault("database.user", "bookings_user")
	v.SetDefault("database.password", "bookings_password")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 300)

	// Warehouse defaults (MS SQL Server, optional)
	v.SetDefault("warehouse.enabled", false)
	v.SetDefault("warehouse.schema", "finance")
	v.SetDefault("warehouse.maxOpenConns", 10)
	v.SetDefault("warehouse.maxIdleConns", 2)
	v.SetDefault("warehouse.connMaxLifetime", 300)
	v.SetDefault("warehouse.queryTimeout", 30)

	// Auth defaults
	v.SetDefault("auth.issuer", "solstice-events")

	// Secrets defaults
	v.SetDefault("secrets.source", "auto")
	v.SetDefault("secrets.cacheEnabled", true)
	v.SetDefault("secrets.cacheTTL", 300)

	// Storage defaults
	v.SetDefault("storage.mode", "local")
	v.SetDefault("storage.localBasePath", "./storage")
	v.SetDefault("storage.maxUploadSizeMB", 25)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Server defaults
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)
	v.SetDefault("server.requestTimeout", 60)

	// CORS defaults, restrictive by default
	v.SetDefault("cors.allowedOrigins", []string{})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"Location", "X-Request-ID"})
	v.SetDefault("cors.allowCredentials", true)
	v.SetDefault("cors.maxAge", 300)

	// Security header defaults
	v.SetDefault("security.enableHSTS", false)
	v.SetDefault("security.hstsMaxAge", 31536000)
	v.SetDefault("security.hstsIncludeSubdomains", true)
	v.SetDefault("security.hstsPreload", false)
	v.SetDefault("security.contentSecurityPolicy", "default-src 'self'")
	v.SetDefault("security.frameOptions", "DENY")
	v.SetDefault("security.contentTypeNosniff", true)
	v.SetDefault("security.xssProtection", "1; mode=block")
	v.SetDefault("security.referrerPolicy", "strict-origin-when-cross-origin")
	v.SetDefault("security.permissionsPolicy", "geolocation=(), microphone=(), camera=()")

	// Rate limiting defaults
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 60)
	v.SetDefault("rateLimit.requestsPerMinuteAuth", 120)
	v.SetDefault("rateLimit.burstSize", 10)
	v.SetDefault("rateLimit.whitelistIPs", []string{"127.0.0.1", "::1"})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/health/ready"})

	// Job defaults
	v.SetDefault("jobs.enabled", true)
	// Schedules include a seconds field
	v.SetDefault("jobs.overdueReminderSchedule", "0 0 2 * * *")
	v.SetDefault("jobs.warehouseExportSchedule", "0 0 3 * * *")
}
