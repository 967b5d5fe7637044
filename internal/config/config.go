package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	CORS     CORSConfig     `yaml:"cors"`
	Log      LogConfig      `yaml:"log"`
	Notify   NotifyConfig   `yaml:"notify"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host                string        `yaml:"host"                   env:"SERVER_HOST"                   env-default:"0.0.0.0"`
	Port                int           `yaml:"port"                   env:"SERVER_PORT"                   env-default:"8080"`
	ReadTimeout         time.Duration `yaml:"read_timeout"           env:"SERVER_READ_TIMEOUT"           env-default:"10s"`
	WriteTimeout        time.Duration `yaml:"write_timeout"          env:"SERVER_WRITE_TIMEOUT"          env-default:"30s"`
	IdleTimeout         time.Duration `yaml:"idle_timeout"           env:"SERVER_IDLE_TIMEOUT"           env-default:"60s"`
	ShutdownTimeout     time.Duration `yaml:"shutdown_timeout"       env:"SERVER_SHUTDOWN_TIMEOUT"       env-default:"10s"`
	WriteLimitPerMinute int           `yaml:"write_limit_per_minute" env:"SERVER_WRITE_LIMIT_PER_MINUTE" env-default:"120"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds bearer token validation settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"osf"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"1h"`
}

// CORSConfig holds CORS settings. An empty AllowedOrigins disables CORS.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"600"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// NotifyConfig configures the outbox relay. An empty WebhookURL leaves
// entries in the outbox.
type NotifyConfig struct {
	WebhookURL    string        `yaml:"webhook_url"    env:"NOTIFY_WEBHOOK_URL"`
	WebhookSecret string        `yaml:"webhook_secret" env:"NOTIFY_WEBHOOK_SECRET"`
	Schedule      string        `yaml:"schedule"       env:"NOTIFY_SCHEDULE"       env-default:"*/15 * * * * *"`
	BatchSize     int           `yaml:"batch_size"     env:"NOTIFY_BATCH_SIZE"     env-default:"100"`
	Concurrency   int           `yaml:"concurrency"    env:"NOTIFY_CONCURRENCY"    env-default:"4"`
	MaxAttempts   int           `yaml:"max_attempts"   env:"NOTIFY_MAX_ATTEMPTS"   env-default:"5"`
	Timeout       time.Duration `yaml:"timeout"        env:"NOTIFY_TIMEOUT"        env-default:"10s"`
	RetentionDays int           `yaml:"retention_days" env:"NOTIFY_RETENTION_DAYS" env-default:"30"`
	ClaimLease    time.Duration `yaml:"claim_lease"    env:"NOTIFY_CLAIM_LEASE"    env-default:"5m"`
}
