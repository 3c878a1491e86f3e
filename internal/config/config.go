package config

import (
	"os"
	"strings"
	"time"

	"roster/internal/util"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	envKey = "ROSTER_ENVIRONMENT"

	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

type Config struct {
	Environment string        `mapstructure:"environment"`
	LogLevel    string        `mapstructure:"log_level"`
	HTTP        HTTPConfig    `mapstructure:"http"`
	Storage     StorageConfig `mapstructure:"storage"`
}

type HTTPConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type StorageConfig struct {
	// Driver is either "sqlite" or "memory".
	Driver string `mapstructure:"driver"`
	// DSN is the sqlite database path.
	DSN            string `mapstructure:"dsn"`
	Migrations     string `mapstructure:"migrations"`
	MigrateOnStart bool   `mapstructure:"migrate_on_start"`
}

// Load reads the configuration from the optional file at path, then from
// ROSTER_* environment variables, eg. ROSTER_STORAGE_DSN.
// Unless ROSTER_ENVIRONMENT says otherwise, a .env.local file is loaded first
// if there is one.
func Load(path string) (*Config, error) {
	if env, ok := os.LookupEnv(envKey); !ok || env == EnvDevelopment {
		if err := loadDotEnv(".env.local"); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetDefault("environment", EnvDevelopment)
	v.SetDefault("log_level", "info")
	v.SetDefault("http.addr", "127.0.0.1:3001")
	v.SetDefault("http.read_timeout", 5*time.Second)
	v.SetDefault("http.write_timeout", 5*time.Second)
	v.SetDefault("http.idle_timeout", 10*time.Second)
	v.SetDefault("storage.driver", StorageSQLite)
	v.SetDefault("storage.dsn", "./roster.db")
	v.SetDefault("storage.migrations", "file://resources/migrations")
	v.SetDefault("storage.migrate_on_start", false)

	v.SetEnvPrefix("ROSTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "unable to read config from %s", path)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "unable to decode config")
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != EnvDevelopment && c.Environment != EnvProduction {
		errs = append(errs, errors.Errorf("environment must be %q or %q", EnvDevelopment, EnvProduction))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, errors.Wrap(err, "log_level"))
	}
	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("http.addr is required"))
	}

	switch c.Storage.Driver {
	case StorageMemory:
	case StorageSQLite:
		if c.Storage.DSN == "" {
			errs = append(errs, errors.New("storage.dsn is required"))
		}
		if c.Storage.MigrateOnStart && c.Storage.Migrations == "" {
			errs = append(errs, errors.New("storage.migrations is required to migrate on start"))
		}
	default:
		errs = append(errs, errors.Errorf("unknown storage.driver %q", c.Storage.Driver))
	}

	return util.ConcatErrors(errs...)
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// SetupLogger configures the global logrus logger, JSON in production.
func (c *Config) SetupLogger() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	timestampFormat := "2006-01-02 15:04:05"
	if c.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: timestampFormat})
		return
	}

	logrus.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: timestampFormat,
		FullTimestamp:   true,
	})
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	return errors.Wrapf(godotenv.Load(path), "unable to load %s", path)
}
