package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server       ServerConfig       `mapstructure:"server" validate:"required"`
	Database     DatabaseConfig     `mapstructure:"database" validate:"required"`
	Auth         AuthConfig         `mapstructure:"auth" validate:"required"`
	Credit       CreditConfig       `mapstructure:"credit" validate:"required"`
	Breaker      BreakerConfig      `mapstructure:"breaker" validate:"required"`
	Scoring      ScoringConfig      `mapstructure:"scoring" validate:"required"`
	Kafka        KafkaConfig        `mapstructure:"kafka"`
	Notification NotificationConfig `mapstructure:"notification"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gte=0"`
	// CORSAllowedOrigins lists origins allowed by the CORS middleware.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url" validate:"required,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
	// AutoMigrate applies pending migrations when the server starts.
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// AuthConfig holds the HTTP basic-auth credentials. Either Password or
// PasswordHash (bcrypt) must be set.
type AuthConfig struct {
	Username     string `mapstructure:"username" validate:"required"`
	Password     string `mapstructure:"password" validate:"required_without=PasswordHash"`
	PasswordHash string `mapstructure:"password_hash" validate:"required_without=Password"`
}

// CreditConfig parameterizes the credit-limit engine.
type CreditConfig struct {
	BaseLimit                int64   `mapstructure:"base_limit" validate:"required,gt=0"`
	IncreaseRatio            float64 `mapstructure:"increase_ratio" validate:"gte=0,lte=1"`
	DecreaseRatio            float64 `mapstructure:"decrease_ratio" validate:"gte=0,lte=1"`
	PositiveIntensityCeiling float64 `mapstructure:"positive_intensity_ceiling" validate:"gte=1,lte=10"`
	NegativeIntensityFloor   float64 `mapstructure:"negative_intensity_floor" validate:"gte=1,lte=10"`
}

// BreakerConfig configures the circuit breaker around the risk scorer.
type BreakerConfig struct {
	FailureThreshold int           `mapstructure:"failure_threshold" validate:"gt=0"`
	RecoveryTimeout  time.Duration `mapstructure:"recovery_timeout" validate:"gt=0"`
	MaxAttempts      int           `mapstructure:"max_attempts" validate:"gt=0"`
}

// ScoringConfig selects and configures the risk scorer.
type ScoringConfig struct {
	Provider     string        `mapstructure:"provider" validate:"required,oneof=baseline gemini"`
	GeminiAPIKey string        `mapstructure:"gemini_api_key" validate:"required_if=Provider gemini"`
	Model        string        `mapstructure:"model"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// KafkaConfig configures the signal broker. The broker is disabled when no
// brokers are configured.
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic" validate:"required_with=Brokers"`
	GroupID string   `mapstructure:"group_id" validate:"required_with=Brokers"`
}

// Enabled reports whether a broker is configured.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// NotificationConfig holds push delivery credentials. Push is disabled when
// either value is empty.
type NotificationConfig struct {
	GCPProjectID   string `mapstructure:"gcp_project_id"`
	GCPCredentials string `mapstructure:"gcp_credentials"`
}

// PushEnabled reports whether push delivery credentials are configured.
func (n NotificationConfig) PushEnabled() bool {
	return n.GCPProjectID != "" && n.GCPCredentials != ""
}
