package config

import (
	"os"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

const (
	CONFIG_PATH = "./res/config.yaml"

	// DefaultPort is used when neither the config file nor the PORT
	// environment variable carry a usable port.
	DefaultPort = "80"
)

// Environment variables recognised by ApplyEnvOverrides.
const (
	EnvPort        = "PORT"
	EnvHost        = "HOST"
	EnvDatabaseDSN = "DATABASE_DSN"
)

// ServiceConfig holds the configuration for the service.
type ServiceConfig struct {
	ServiceName string   `yaml:"service_name" validate:"required"`
	LogLevel    string   `yaml:"loglevel" validate:"required"`
	Host        string   `yaml:"host"`
	Port        string   `yaml:"port"`
	Session     Session  `yaml:"session" validate:"required"`
	Database    Database `yaml:"database" validate:"required"`
}

// Session holds the cookie session configuration.
type Session struct {
	CookieName    string        `yaml:"cookie_name" validate:"required"`
	Lifetime      time.Duration `yaml:"lifetime" validate:"required"`
	SecureCookies bool          `yaml:"secure_cookies"`
}

type Database struct {
	Type string `yaml:"type" validate:"required"`
	// For MongoDB
	MongoDB MongoDBConfig `yaml:"mongodb_config" validate:"omitempty"`
	// For PostgreSQL
	Postgres PostgresConfig `yaml:"postgres_config" validate:"omitempty"`
}

// MongoDBConfig holds the MongoDB database configuration.
type MongoDBConfig struct {
	DSN              string             `yaml:"dsn"`
	DatabaseName     string             `yaml:"database_name"`
	Timeout          time.Duration      `yaml:"timeout"`
	Options          MongoServerOptions `yaml:"mongo_server_options"`
	ValidCollections []string           `yaml:"valid_collections"`
	ValidFields      []string           `yaml:"valid_fields"`
}

type PostgresConfig struct {
	DSN         string                `yaml:"dsn"`
	Options     PostgresServerOptions `yaml:"postgres_server_options"`
	ValidTables []string              `yaml:"valid_tables"`
	ValidFields []string              `yaml:"valid_fields"`
}

type MongoServerOptions struct {
	APIVersion           string `yaml:"api_version"`
	SetStrict            bool   `yaml:"set_strict"`
	SetDeprecationErrors bool   `yaml:"set_deprecation_errors"`
}

type PostgresServerOptions struct {
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// ReadLocalConfig reads the service configuration from a YAML file at the specified path.
// It unmarshals the YAML content into a ServiceConfig struct, layers the
// environment overrides on top and returns the result.
// If there is an error reading the file or unmarshaling the content, it returns an error.
func ReadLocalConfig(configPath string) (*ServiceConfig, error) {
	config := &ServiceConfig{}

	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, config)
	if err != nil {
		return nil, err
	}

	config.ApplyEnvOverrides()

	return config, nil
}

// ApplyEnvOverrides layers environment variables over the file-based
// configuration. The listening port falls back to DefaultPort when both the
// file value and the PORT variable are absent or not a valid port number.
func (c *ServiceConfig) ApplyEnvOverrides() {
	if host := os.Getenv(EnvHost); host != "" {
		c.Host = host
	}

	if port := os.Getenv(EnvPort); port != "" {
		c.Port = port
	}
	if !validPort(c.Port) {
		c.Port = DefaultPort
	}

	if dsn := os.Getenv(EnvDatabaseDSN); dsn != "" {
		switch c.Database.Type {
		case "mongo":
			c.Database.MongoDB.DSN = dsn
		case "postgres":
			c.Database.Postgres.DSN = dsn
		}
	}
}

func validPort(s string) bool {
	port, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return port > 0 && port <= 65535
}

func BuildServerAPIOptions(cfg MongoServerOptions) *options.ServerAPIOptions {
	opts := options.ServerAPI(options.ServerAPIVersion(cfg.APIVersion))
	opts.SetStrict(cfg.SetStrict)
	opts.SetDeprecationErrors(cfg.SetDeprecationErrors)

	return opts
}

func ListToMap(list []string) map[string]bool {
	result := make(map[string]bool)
	for _, item := range list {
		result[item] = true
	}
	return result
}
