package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration key when read from the
// environment, e.g. server.port becomes MINDCREDIT_SERVER_PORT.
const EnvPrefix = "MINDCREDIT"

// ConfigFileEnv names the environment variable that overrides the config
// file location.
const ConfigFileEnv = "MINDCREDIT_CONFIG_FILE"

// envAliases maps configuration keys to un-prefixed variable names that are
// accepted in addition to the prefixed form. The prefixed form wins.
var envAliases = map[string]string{
	"database.url":                 "DATABASE_URL",
	"credit.base_limit":            "BASE_CREDIT_LIMIT",
	"auth.username":                "AUTH_USERNAME",
	"auth.password":                "AUTH_PASSWORD",
	"kafka.brokers":                "KAFKA_BOOTSTRAP_SERVERS",
	"kafka.topic":                  "BRAIN_INTERFACE_KAFKA_TOPIC",
	"kafka.group_id":               "KAFKA_CONSUMER_GROUP_ID",
	"notification.gcp_credentials": "GCP_CREDENTIALS",
	"notification.gcp_project_id":  "GCP_PROJECT_ID",
	"scoring.gemini_api_key":       "GEMINI_API_KEY",
}

// defaults lists every known key with its default. Keys absent from this map
// are never read from the environment.
var defaults = map[string]any{
	"server.port":                       8080,
	"server.log_level":                  "info",
	"server.read_timeout":               15 * time.Second,
	"server.write_timeout":              30 * time.Second,
	"server.shutdown_timeout":           10 * time.Second,
	"server.cors_allowed_origins":       []string{"*"},
	"database.url":                      "",
	"database.max_open_conns":           25,
	"database.max_idle_conns":           5,
	"database.conn_max_lifetime":        5 * time.Minute,
	"database.auto_migrate":             false,
	"auth.username":                     "",
	"auth.password":                     "",
	"auth.password_hash":                "",
	"credit.base_limit":                 1000,
	"credit.increase_ratio":             0.10,
	"credit.decrease_ratio":             0.15,
	"credit.positive_intensity_ceiling": 4.0,
	"credit.negative_intensity_floor":   7.0,
	"breaker.failure_threshold":         3,
	"breaker.recovery_timeout":          5 * time.Second,
	"breaker.max_attempts":              1,
	"scoring.provider":                  "baseline",
	"scoring.gemini_api_key":            "",
	"scoring.model":                     "gemini-2.0-flash",
	"scoring.timeout":                   10 * time.Second,
	"kafka.brokers":                     []string{},
	"kafka.topic":                       "brain-interface",
	"kafka.group_id":                    "mindcredit-api",
	"notification.gcp_project_id":       "",
	"notification.gcp_credentials":      "",
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// A .env file in the working directory, if present, is loaded into the
// environment first without overriding variables that are already set.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path := os.Getenv(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key := range defaults {
		names := []string{envName(key)}
		if alias, ok := envAliases[key]; ok {
			names = append(names, alias)
		}
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
