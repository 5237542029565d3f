package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"netstate-agent/internal/domain/errors"
)

// Config is a struct that holds application configuration
type Config struct {
	Database DatabaseConfig
	Agent    AgentConfig
	Health   HealthConfig
}

// DatabaseConfig is a struct that holds database configuration
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// AgentConfig is a struct that holds agent configuration
type AgentConfig struct {
	// NodeName identifies this node's row in the desired-state tables
	NodeName string

	// StateFile switches the agent into one-shot mode: render the given
	// YAML state file once and exit instead of polling the database
	StateFile string

	// Teardown inverts one-shot mode: bring down the interfaces named in
	// the state file instead of rendering and activating them
	Teardown bool

	// TargetRoot is prepended to every rendered path and probe, "" or "/"
	// meaning the live system
	TargetRoot string

	// RendererPriority/ActivatorPriority override the built-in probe
	// order; nil means use the default order
	RendererPriority  []string
	ActivatorPriority []string

	PollInterval   time.Duration
	CommandTimeout time.Duration
}

// HealthConfig is a struct that holds health check configuration
type HealthConfig struct {
	Port string
}

// OneShot reports whether the agent should render a state file and exit
func (c *Config) OneShot() bool {
	return c.Agent.StateFile != ""
}

// ConfigLoader is an interface for loading configuration
type ConfigLoader interface {
	Load() (*Config, error)
}

// EnvironmentConfigLoader is an implementation that loads configuration from environment variables
type EnvironmentConfigLoader struct{}

// NewEnvironmentConfigLoader creates a new EnvironmentConfigLoader
func NewEnvironmentConfigLoader() ConfigLoader {
	return &EnvironmentConfigLoader{}
}

// Load loads configuration from environment variables
func (l *EnvironmentConfigLoader) Load() (*Config, error) {
	hostname, _ := os.Hostname()

	config := &Config{
		Database: DatabaseConfig{
			Host:         getEnvOrDefault("DB_HOST", "127.0.0.1"),
			Port:         getEnvOrDefault("DB_PORT", "3306"),
			User:         getEnvOrDefault("DB_USER", "root"),
			Password:     getEnvOrDefault("DB_PASSWORD", ""),
			Database:     getEnvOrDefault("DB_NAME", "netstate"),
			MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvDurationOrDefault("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Agent: AgentConfig{
			NodeName:          getEnvOrDefault("NODE_NAME", hostname),
			StateFile:         getEnvOrDefault("STATE_FILE", ""),
			Teardown:          getEnvBoolOrDefault("TEARDOWN", false),
			TargetRoot:        getEnvOrDefault("TARGET_ROOT", ""),
			RendererPriority:  getEnvListOrNil("RENDERER_PRIORITY"),
			ActivatorPriority: getEnvListOrNil("ACTIVATOR_PRIORITY"),
			PollInterval:      getEnvDurationOrDefault("POLL_INTERVAL", 30*time.Second),
			CommandTimeout:    getEnvDurationOrDefault("COMMAND_TIMEOUT", 30*time.Second),
		},
		Health: HealthConfig{
			Port: getEnvOrDefault("HEALTH_PORT", "8080"),
		},
	}

	// Validate configuration
	if err := l.validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// validate validates the configuration
func (l *EnvironmentConfigLoader) validate(config *Config) error {
	// One-shot mode never touches the database, so database settings are
	// only required for the polling daemon
	if !config.OneShot() {
		if config.Database.Host == "" {
			return errors.NewValidationError("database host not configured", nil)
		}
		if config.Database.Port == "" {
			return errors.NewValidationError("database port not configured", nil)
		}
		if config.Database.User == "" {
			return errors.NewValidationError("database user not configured", nil)
		}
		if config.Database.Database == "" {
			return errors.NewValidationError("database name not configured", nil)
		}
		if config.Agent.NodeName == "" {
			return errors.NewValidationError("node name not configured", nil)
		}
	}

	// Validate agent configuration
	if config.Agent.PollInterval <= 0 {
		return errors.NewValidationError("invalid polling interval", nil)
	}
	if config.Agent.Teardown && config.Agent.StateFile == "" {
		return errors.NewValidationError("teardown mode requires a state file", nil)
	}

	// Validate health check configuration
	if config.Health.Port == "" {
		return errors.NewValidationError("health check port not configured", nil)
	}

	return nil
}

// Environment variable helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvListOrNil(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
