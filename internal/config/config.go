package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/mdobak/go-xerrors"
	"github.com/spf13/viper"
)

const (
	RepositorySQL  = "sql"
	RepositoryGorm = "gorm"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server struct {
		Port            int
		ShutdownTimeout time.Duration
	}
	Repository struct {
		Type string
	}
	Database struct {
		Driver          string
		Host            string
		Port            int
		Username        string
		Password        string
		Name            string
		SSLMode         string
		Path            string
		AutoMigrate     bool
		QueryTimeout    time.Duration
		MaxIdleConns    int
		ConnMaxIdleTime time.Duration
	}
	Log struct {
		Level  string
		Format string
	}
	Telemetry struct {
		Enabled        bool
		ServiceName    string
		ServiceVersion string
		Environment    string
	}
}

// env names kept compatible with the existing deployment scripts
var envBindings = map[string]string{
	"server.port":              "SERVER_PORT",
	"server.shutdowntimeout":   "SERVER_SHUTDOWN_TIMEOUT",
	"repository.type":          "REPOSITORY_TYPE",
	"database.driver":          "DB_DRIVER",
	"database.host":            "DB_HOST",
	"database.port":            "DB_PORT",
	"database.username":        "DB_USERNAME",
	"database.password":        "DB_PASSWORD",
	"database.name":            "DB_DATABASE",
	"database.sslmode":         "DB_SSLMODE",
	"database.path":            "DB_PATH",
	"database.automigrate":     "DB_AUTO_MIGRATE",
	"database.querytimeout":    "DB_QUERY_TIMEOUT",
	"database.maxidleconns":    "DB_MAX_IDLE_CONNS",
	"database.connmaxidletime": "DB_CONN_MAX_IDLE_TIME",
	"log.level":                "LOG_LEVEL",
	"log.format":               "LOG_FORMAT",
	"telemetry.enabled":        "TELEMETRY_ENABLED",
	"telemetry.servicename":    "TELEMETRY_SERVICE_NAME",
	"telemetry.serviceversion": "TELEMETRY_SERVICE_VERSION",
	"telemetry.environment":    "TELEMETRY_ENVIRONMENT",
}

// LoadConfig reads defaults, then an optional YAML file, then the environment.
// An empty path searches for config.yaml in . and ./config.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 3000)
	v.SetDefault("server.shutdowntimeout", "10s")
	v.SetDefault("repository.type", RepositorySQL)
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.username", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "blog")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "blog.db")
	v.SetDefault("database.automigrate", true)
	v.SetDefault("database.querytimeout", "3s")
	v.SetDefault("database.maxidleconns", 10)
	v.SetDefault("database.connmaxidletime", "10s")
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "dev")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.servicename", "blog-api")
	v.SetDefault("telemetry.serviceversion", "dev")
	v.SetDefault("telemetry.environment", "local")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	switch c.Repository.Type {
	case RepositorySQL, RepositoryGorm:
	default:
		return xerrors.Newf("unknown repository type: %s", c.Repository.Type)
	}

	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return xerrors.Newf("unknown database driver: %s", c.Database.Driver)
	}

	return nil
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.Database.Driver == DriverSQLite {
		return c.Database.Path
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Database.Username, c.Database.Password),
		Host:   net.JoinHostPort(c.Database.Host, strconv.Itoa(c.Database.Port)),
		Path:   "/" + c.Database.Name,
	}
	q := u.Query()
	q.Set("sslmode", c.Database.SSLMode)
	u.RawQuery = q.Encode()

	return u.String()
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
