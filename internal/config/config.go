package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
}

type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	GinMode      string        `mapstructure:"gin_mode"`
	AuthRealm    string        `mapstructure:"auth_realm"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // mongo | memory
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	BucketName      string        `mapstructure:"bucket_name"`
	UseSSL          bool          `mapstructure:"use_ssl"`
	Mock            bool          `mapstructure:"mock"`
	URLExpiry       time.Duration `mapstructure:"url_expiry"`
}

const (
	ProviderFacebook = "facebook"
	ProviderJWT      = "jwt"
	ProviderInsecure = "insecure"
)

// AuthConfig selects the identity provider that verifies Basic credentials.
type AuthConfig struct {
	Provider string         `mapstructure:"provider"` // facebook | jwt | insecure
	Facebook FacebookConfig `mapstructure:"facebook"`
	JWT      JWTConfig      `mapstructure:"jwt"`
}

type FacebookConfig struct {
	AppID        string        `mapstructure:"app_id"`
	AppSecret    string        `mapstructure:"app_secret"`
	GraphURL     string        `mapstructure:"graph_url"`
	GraphVersion string        `mapstructure:"graph_version"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

type LogConfig struct {
	Level         string `mapstructure:"level"`
	File          string `mapstructure:"file"`
	Stdout        bool   `mapstructure:"stdout"`
	JSON          bool   `mapstructure:"json"`
	SentryDSN     string `mapstructure:"sentry_dsn"`
	SentryEnv     string `mapstructure:"sentry_env"`
	SentryEnabled bool   `mapstructure:"sentry_enabled"`
}

type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Subsystem string `mapstructure:"subsystem"`
}

// CatalogConfig points at the YAML file with the default exercises and
// programs. An empty path skips seeding at startup.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		// env vars and defaults are enough
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	return config, config.Validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.gin_mode", "release")
	v.SetDefault("server.auth_realm", "api")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")

	v.SetDefault("database.driver", DriverMongo)
	v.SetDefault("database.uri", "mongodb://localhost:27017/?replicaSet=rs0")
	v.SetDefault("database.name", "fitness_tracker")

	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket_name", "fitness-tracker")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("s3.mock", false)
	v.SetDefault("s3.url_expiry", "15m")

	v.SetDefault("auth.provider", ProviderFacebook)
	v.SetDefault("auth.facebook.graph_url", "https://graph.facebook.com")
	v.SetDefault("auth.facebook.graph_version", "v19.0")
	v.SetDefault("auth.facebook.timeout", "5s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.stdout", true)
	v.SetDefault("log.sentry_env", "development")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "fitness_tracker")
	v.SetDefault("metrics.subsystem", "api")

	// registered so CATALOG_PATH is picked up without a file entry
	v.SetDefault("catalog.path", "")
}

// Validate rejects combinations the server cannot start with.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverMongo, DriverMemory:
	default:
		return errors.New("database.driver must be mongo or memory")
	}
	switch c.Auth.Provider {
	case ProviderFacebook:
		if c.Auth.Facebook.AppID == "" || c.Auth.Facebook.AppSecret == "" {
			return errors.New("auth.facebook.app_id and auth.facebook.app_secret are required")
		}
	case ProviderJWT:
		if c.Auth.JWT.Secret == "" {
			return errors.New("auth.jwt.secret is required")
		}
	case ProviderInsecure:
	default:
		return errors.New("auth.provider must be facebook, jwt or insecure")
	}
	if !c.S3.Mock && c.S3.BucketName == "" {
		return errors.New("s3.bucket_name is required unless s3.mock is set")
	}
	return nil
}
