package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pocketledger/actions-api/internal/secrets"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Upstream  UpstreamConfig
	Journal   JournalConfig
	Cache     CacheConfig
	Auth      AuthConfig
	ApiKey    ApiKeyConfig
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

// UpstreamConfig holds connectivity and call policy for the Pocketledger core API.
// Per-kind call settings are the static configuration every action forwards with
// its request: attempt timeout, retry count, response-validation flag.
type UpstreamConfig struct {
	// BaseURL is the root of the core API, e.g. https://core.pocketledger.io/api
	BaseURL string
	// ApiKey authenticates the gateway to the core API (X-Service-Key header,
	// from the CORE-API-KEY secret)
	ApiKey string
	// UserAgent is sent on every upstream request
	UserAgent string
	// QueryTimeout is the per-attempt timeout for read calls (seconds)
	QueryTimeout int
	// MutationTimeout is the per-attempt timeout for mutation calls (seconds)
	MutationTimeout int
	// AuthTimeout is the per-attempt timeout for token calls (seconds)
	AuthTimeout int
	// QueryRetries is the retry count for read calls
	QueryRetries int
	// MutationRetries is the retry count for mutation calls
	MutationRetries int
	// ValidateResponses runs schema validation over decoded upstream payloads
	ValidateResponses bool
	// MaxIdleConns caps the shared transport's idle connection pool
	MaxIdleConns int
}

// JournalConfig holds the PostgreSQL connection for the action journal
type JournalConfig struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	// RetentionDays controls how long action records are kept before pruning
	RetentionDays int
}

// CacheConfig holds configuration for the tag-addressed response cache
type CacheConfig struct {
	// Mode selects the backing store: "memory" or "redis"
	Mode string
	// RedisAddr is the host:port of the Redis instance (redis mode only)
	RedisAddr string
	// RedisPassword is loaded from the REDIS-PASSWORD secret in vault mode
	RedisPassword string
	// RedisDB is the Redis logical database number
	RedisDB int
	// TTL is the payload time-to-live (seconds); invalidation does not wait for it
	TTL int
}

// AuthConfig holds verification settings for upstream-issued JWTs
type AuthConfig struct {
	// Secret is the HS256 signing secret shared with the core API's token
	// service (from the JWT-SIGNING-SECRET secret)
	Secret string
	// Issuer is the expected iss claim
	Issuer string
	// Audience is the expected aud claim; empty disables the audience check
	Audience string
	// Leeway tolerates clock skew when validating exp/nbf (seconds)
	Leeway int
}

type ApiKeyConfig struct {
	SecretName string
	Value      string // Loaded from secrets or environment
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
	// "auto" uses environment in development, vault in staging/production
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
	EnableSwagger  bool
	EnableMetrics  bool
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
	WhitelistIPs          []string
	WhitelistPaths        []string
}

// JobsConfig holds schedules for background jobs. Cron expressions use the
// robfig/cron format with an optional seconds field; empty disables a job.
type JobsConfig struct {
	WebhookRetryCron string
	// WebhookRetryBatchSize caps redeliveries attempted per sweep
	WebhookRetryBatchSize int
	CurrencyRefreshCron   string
	JournalPruneCron      string
}

// ConnectionString builds the PostgreSQL connection string for the journal
func (j *JournalConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		j.Host, j.Port, j.User, j.Password, j.Name, j.SSLMode,
	)
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (j *JournalConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(j.ConnMaxLifetime) * time.Second
}

// RetentionDuration returns the journal retention window as duration
func (j *JournalConfig) RetentionDuration() time.Duration {
	return time.Duration(j.RetentionDays) * 24 * time.Hour
}

// QueryTimeoutDuration returns the read-call timeout as duration
func (u *UpstreamConfig) QueryTimeoutDuration() time.Duration {
	return time.Duration(u.QueryTimeout) * time.Second
}

// MutationTimeoutDuration returns the mutation-call timeout as duration
func (u *UpstreamConfig) MutationTimeoutDuration() time.Duration {
	return time.Duration(u.MutationTimeout) * time.Second
}

// AuthTimeoutDuration returns the token-call timeout as duration
func (u *UpstreamConfig) AuthTimeoutDuration() time.Duration {
	return time.Duration(u.AuthTimeout) * time.Second
}

// TTLDuration returns the cache payload TTL as duration
func (c *CacheConfig) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

// LeewayDuration returns the JWT validation leeway as duration
func (a *AuthConfig) LeewayDuration() time.Duration {
	return time.Duration(a.Leeway) * time.Second
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

// Load loads configuration from file and environment variables
// This is a basic load that doesn't fetch secrets from vault
// Use LoadWithSecrets for full secret resolution
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read from config file
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

	// Load secrets from environment when not resolved through vault
	if cfg.Upstream.BaseURL == "" {
		cfg.Upstream.BaseURL = v.GetString("UPSTREAM_BASE_URL")
	}
	if cfg.Upstream.ApiKey == "" {
		cfg.Upstream.ApiKey = v.GetString("CORE_API_KEY")
	}
	if cfg.Auth.Secret == "" {
		cfg.Auth.Secret = v.GetString("JWT_SIGNING_SECRET")
	}
	if cfg.ApiKey.Value == "" {
		cfg.ApiKey.Value = v.GetString("ADMIN_API_KEY")
	}
	if cfg.Cache.RedisPassword == "" {
		cfg.Cache.RedisPassword = v.GetString("REDIS_PASSWORD")
	}

	// Load Azure Key Vault name from environment if not in config
	if cfg.Secrets.KeyVaultName == "" {
		cfg.Secrets.KeyVaultName = v.GetString("AZURE_KEY_VAULT_NAME")
	}

	return &cfg, nil
}

// LoadWithSecrets loads configuration and resolves secrets from the configured source
// In development (or when secrets.source = "environment"), secrets come from env vars
// In staging/production (or when secrets.source = "vault"), secrets come from Azure Key Vault
//
// Key Vault is used when BOTH conditions are met:
// 1. USE_AZURE_KEY_VAULT environment variable is set to "true"
// 2. Environment is "staging" or "production"
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	// First load basic config
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	useKeyVault := strings.ToLower(os.Getenv("USE_AZURE_KEY_VAULT")) == "true"
	isValidEnv := cfg.App.Environment == "staging" || cfg.App.Environment == "production"

	if !useKeyVault {
		logger.Info("USE_AZURE_KEY_VAULT not enabled, using environment variables for secrets",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if !isValidEnv {
		logger.Warn("USE_AZURE_KEY_VAULT is enabled but environment is not staging or production, using environment variables for secrets",
			zap.String("environment", cfg.App.Environment),
			zap.Bool("use_key_vault", useKeyVault),
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
		return nil, fmt.Errorf("failed to initialize secrets provider (USE_AZURE_KEY_VAULT=true requires valid vault): %w", err)
	}

	if !provider.IsVaultEnabled() {
		return nil, fmt.Errorf("vault provider not enabled despite USE_AZURE_KEY_VAULT=true")
	}

	logger.Info("Loading secrets from Azure Key Vault")

	// Journal database credentials
	if host, err := provider.GetSecretOrEnv(ctx, "POSTGRES-JOURNAL-HOST", "JOURNAL_HOST"); err == nil && host != "" {
		cfg.Journal.Host = host
	}
	if user, err := provider.GetSecretOrEnv(ctx, "POSTGRES-JOURNAL-USER", "JOURNAL_USER"); err == nil && user != "" {
		cfg.Journal.User = user
	}
	if password, err := provider.GetSecretOrEnv(ctx, "POSTGRES-JOURNAL-PASSWORD", "JOURNAL_PASSWORD"); err == nil && password != "" {
		cfg.Journal.Password = password
	}
	if sslMode := os.Getenv("JOURNAL_SSLMODE"); sslMode != "" {
		cfg.Journal.SSLMode = sslMode
	}

	// Upstream API credentials
	if apiKey, err := provider.GetSecretOrEnv(ctx, "CORE-API-KEY", "CORE_API_KEY"); err == nil && apiKey != "" {
		cfg.Upstream.ApiKey = apiKey
	}

	// JWT verification secret shared with the core token service
	if secret, err := provider.GetSecretOrEnv(ctx, "JWT-SIGNING-SECRET", "JWT_SIGNING_SECRET"); err == nil && secret != "" {
		cfg.Auth.Secret = secret
	}

	// Admin API key
	if apiKey, err := provider.GetSecretOrEnv(ctx, "admin-api-key", "ADMIN_API_KEY"); err == nil && apiKey != "" {
		cfg.ApiKey.Value = apiKey
	}

	// Redis password for the tag cache
	if password, err := provider.GetSecretOrEnv(ctx, "REDIS-PASSWORD", "REDIS_PASSWORD"); err == nil && password != "" {
		cfg.Cache.RedisPassword = password
	}

	// Storage connection string (for attachment blobs)
	if connStr, err := provider.GetSecretOrEnv(ctx, "storage-connection-string", "STORAGE_CLOUDCONNECTIONSTRING"); err == nil && connStr != "" {
		cfg.Storage.CloudConnectionString = connStr
	}

	logger.Info("Secrets loaded from vault successfully")
	return cfg, nil
}

// Validate checks that required settings are present before startup
func (c *Config) Validate() error {
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream.baseURL is required")
	}
	if c.Auth.Secret == "" && c.App.Environment != "development" {
		return fmt.Errorf("auth.secret is required outside development")
	}
	if c.Cache.Mode != "memory" && c.Cache.Mode != "redis" {
		return fmt.Errorf("cache.mode must be memory or redis, got %q", c.Cache.Mode)
	}
	if c.Cache.Mode == "redis" && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache.redisAddr is required in redis mode")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Pocketledger Actions API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)

	// Upstream defaults
	v.SetDefault("upstream.userAgent", "pocketledger-actions-api/1.0")
	v.SetDefault("upstream.queryTimeout", 10)
	v.SetDefault("upstream.mutationTimeout", 15)
	v.SetDefault("upstream.authTimeout", 5)
	v.SetDefault("upstream.queryRetries", 2)
	v.SetDefault("upstream.mutationRetries", 1)
	v.SetDefault("upstream.validateResponses", true)
	v.SetDefault("upstream.maxIdleConns", 32)

	// Journal database defaults
	v.SetDefault("journal.host", "localhost")
	v.SetDefault("journal.port", 5432)
	v.SetDefault("journal.name", "actions")
	v.SetDefault("journal.user", "actions_user")
	v.SetDefault("journal.password", "actions_password")
	v.SetDefault("journal.sslMode", "disable")
	v.SetDefault("journal.maxOpenConns", 25)
	v.SetDefault("journal.maxIdleConns", 5)
	v.SetDefault("journal.connMaxLifetime", 300)
	v.SetDefault("journal.retentionDays", 30)

	// Cache defaults
	v.SetDefault("cache.mode", "memory")
	v.SetDefault("cache.redisAddr", "localhost:6379")
	v.SetDefault("cache.redisDB", 0)
	v.SetDefault("cache.ttl", 300) // 5 minutes

	// Auth defaults
	v.SetDefault("auth.issuer", "pocketledger-core")
	v.SetDefault("auth.leeway", 30)

	// Secrets defaults
	v.SetDefault("secrets.source", "auto")
	v.SetDefault("secrets.cacheEnabled", true)
	v.SetDefault("secrets.cacheTTL", 300) // 5 minutes

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
	v.SetDefault("server.enableSwagger", true)
	v.SetDefault("server.enableMetrics", true)

	// CORS defaults - restrictive by default
	v.SetDefault("cors.allowedOrigins", []string{})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"Location", "X-Request-ID"})
	v.SetDefault("cors.allowCredentials", true)
	v.SetDefault("cors.maxAge", 300) // 5 minutes

	// Security header defaults - secure by default
	v.SetDefault("security.enableHSTS", false)    // Enable in production with HTTPS
	v.SetDefault("security.hstsMaxAge", 31536000) // 1 year
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
	v.SetDefault("rateLimit.requestsPerMinuteAuth", 240)
	v.SetDefault("rateLimit.whitelistIPs", []string{"127.0.0.1", "::1"})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/health/*", "/metrics"})

	// Job defaults
	v.SetDefault("jobs.webhookRetryCron", "0 */5 * * * *") // every 5 minutes
	v.SetDefault("jobs.webhookRetryBatchSize", 20)
	v.SetDefault("jobs.currencyRefreshCron", "@hourly")
	v.SetDefault("jobs.journalPruneCron", "0 30 3 * * *") // 03:30 daily
}
