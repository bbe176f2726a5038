package config

import (
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/swiftport/customs-dashboard/pkg/logger"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	BlobDriverS3    = "s3"
	BlobDriverRedis = "redis"
	BlobDriverHTTP  = "http"
)

var config *Config

// Config holds every configuration value of the dashboard. Only this struct
// must be used to read configuration, no direct access to env or any other
// config source should be made.
type Config struct {
	AppEnv              string `env:"APP_ENV,default=dev"`
	AppName             string `env:"APP_NAME,default=swiftport"`
	AppDebugMetricsAddr string `env:"APP_DEBUG_METRIC_ADDR"`
	AppDebugMetricsURI  string `env:"APP_DEBUG_METRIC_URI,default=/metrics"`
	AppBaseUrl          string `env:"APP_BASE_URL,default=http://localhost:8080"`

	HttpListenAddr     string        `env:"HTTP_LISTEN_ADDR,default=:8080"`
	HttpRequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT,default=30s"`

	DBDriver   string `env:"DB_DRIVER,default=postgres"`
	SQLitePath string `env:"SQLITE_PATH,default=swiftport.db"`

	PostgresReadHost     string `env:"POSTGRES_READ_HOST"`
	PostgresReadPort     string `env:"POSTGRES_READ_PORT"`
	PostgresReadUser     string `env:"POSTGRES_READ_USER"`
	PostgresReadPassword string `env:"POSTGRES_READ_PASSWORD"`
	PostgresReadDatabase string `env:"POSTGRES_READ_DBNAME"`

	PostgresWriteHost     string `env:"POSTGRES_WRITE_HOST"`
	PostgresWritePort     string `env:"POSTGRES_WRITE_PORT"`
	PostgresWriteUser     string `env:"POSTGRES_WRITE_USER"`
	PostgresWritePassword string `env:"POSTGRES_WRITE_PASSWORD"`
	PostgresWriteDatabase string `env:"POSTGRES_WRITE_DBNAME"`

	RedisAddr               string `env:"REDIS_ADDR"`
	RedisUsername           string `env:"REDIS_USER"`
	RedisPassword           string `env:"REDIS_PASS"`
	RedisDatabase           int    `env:"REDIS_DATABASE"`
	RedisUniversalKeyPrefix string `env:"REDIS_UNIVERSAL_KEY_PREFIX,default=swiftport:"`

	PromNamespace string `env:"PROM_NAMESPACE,default=swiftport"`

	BlobDriver        string `env:"BLOB_DRIVER,default=redis"`
	BlobPublicBaseURL string `env:"BLOB_PUBLIC_BASE_URL"`
	BlobServerURL     string `env:"BLOB_SERVER_URL,default=http://localhost:8081"`

	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3Region    string `env:"S3_REGION,default=us-east-1"`
	S3Bucket    string `env:"S3_BUCKET,default=documents"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3UseSSL    bool   `env:"S3_USE_SSL,default=true"`

	StoreTimeout   time.Duration `env:"STORE_TIMEOUT,default=10s"`
	UploadMaxBytes int           `env:"UPLOAD_MAX_BYTES,default=10485760"`
	Timezone       string        `env:"TIMEZONE,default=Local"`
}

func Load(path string) error {
	logger.Info("loading configs..", "path", path)
	c := &Config{}
	var err error
	if path != "" {
		logger.Info("trying to publish env from file", "path", path)
		err = godotenv.Load(path)
		if err != nil {
			return errors.Wrapf(err, "failed to load configuration file %s", path)
		}
	}

	_, err = env.UnmarshalFromEnviron(c)
	if err != nil {
		return errors.Wrap(err, "failed to map env variables to Configuration object")
	}

	if err = c.validate(); err != nil {
		return err
	}

	config = c
	return nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DBDriverPostgres, DBDriverSQLite:
	default:
		return errors.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.BlobDriver {
	case BlobDriverS3, BlobDriverRedis, BlobDriverHTTP:
	default:
		return errors.Errorf("unsupported BLOB_DRIVER %q", c.BlobDriver)
	}
	if c.BlobDriver == BlobDriverRedis && c.RedisAddr == "" {
		return errors.New("REDIS_ADDR is required for the redis blob driver")
	}
	if c.UploadMaxBytes <= 0 {
		return errors.New("UPLOAD_MAX_BYTES must be positive")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return errors.Wrapf(err, "invalid TIMEZONE %q", c.Timezone)
	}
	return nil
}

// Location returns the zone used to decide what "today" is for LFD risk.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func Get() *Config {
	if config == nil {
		logger.Panic("Config is not initialized")
	}
	return config
}
