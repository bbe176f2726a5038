package main

import (
	"os"
	"strings"
	"time"

	"github.com/swiftport/customs-dashboard/internal/config"
	"github.com/swiftport/customs-dashboard/internal/handlers"
	"github.com/swiftport/customs-dashboard/internal/repository"
	"github.com/swiftport/customs-dashboard/internal/services"
	"github.com/swiftport/customs-dashboard/internal/storage"
	xhttp "github.com/swiftport/customs-dashboard/pkg/http"
	"github.com/swiftport/customs-dashboard/pkg/logger"
	"github.com/swiftport/customs-dashboard/pkg/pg"
	"github.com/swiftport/customs-dashboard/pkg/prom"
	"github.com/swiftport/customs-dashboard/pkg/redis"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	defer logger.Sync()

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}
	cfg := config.Get()
	logger.Info("starting dashboard", "version", version, "commit", commit, "date", date, "env", cfg.AppEnv)

	if cfg.AppDebugMetricsAddr != "" {
		host, _ := os.Hostname()
		if err = prom.Create(host, cfg.AppEnv, cfg.PromNamespace); err != nil {
			logger.Error("failed to register metrics", "error", err)
			return
		}
		go prom.ListenAndServer(cfg.AppDebugMetricsAddr, cfg.AppDebugMetricsURI)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		logger.Error("failed connecting to database", "driver", cfg.DBDriver, "error", err)
		return
	}

	var redisAdap redis.RedisAdapter
	if cfg.RedisAddr != "" {
		redisAdap, err = redis.NewRedisAdapter("default", cfg.RedisUniversalKeyPrefix, &redis.Options{
			Addrs:      []string{cfg.RedisAddr},
			ClientName: cfg.AppName,
			DB:         cfg.RedisDatabase,
			Username:   cfg.RedisUsername,
			Password:   cfg.RedisPassword,
		})
		if err != nil {
			logger.Error("failed connecting to redis", "error", err)
			return
		}
	}

	blobs, err := openBlobStore(cfg, redisAdap)
	if err != nil {
		logger.Error("failed creating blob store", "driver", cfg.BlobDriver, "error", err)
		return
	}

	// transport
	opts := xhttp.DefaultServerOption
	opts.Name = cfg.AppName
	// leave room for the multipart envelope around the largest attachment
	opts.MaxRequestBodySize = cfg.UploadMaxBytes + 1<<20
	s := xhttp.NewServer(opts)
	s.Router = xhttp.CreateDefaultRouter()
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(cfg.HttpRequestTimeout))
	s.Use(xhttp.RequestIDMiddleware)
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)

	// services
	loc := cfg.Location()
	clock := func() time.Time { return time.Now().In(loc) }
	containerRepo := repository.NewContainerRepository(db)
	listing := services.NewListingView(containerRepo, cfg.StoreTimeout)
	form := services.NewCreationForm(containerRepo, blobs, cfg.StoreTimeout, cfg.UploadMaxBytes)
	shell := services.NewShell(listing, form, clock)

	// handlers
	handlers.RegisterDashboardRoutes(s.Router, handlers.NewDashboardHandler(shell, cfg.AppName, cfg.UploadMaxBytes))
	if reader, ok := blobs.(storage.BlobReader); ok {
		handlers.RegisterFileRoutes(s.Router, handlers.NewFileHandler(reader))
	}

	g := s.Router.Group("/api/v1")
	handlers.RegisterContainerRoutes(g, handlers.NewContainerHandler(shell, cfg.UploadMaxBytes))
	handlers.RegisterHealthRoutes(g, handlers.NewHealthHandler(db))

	done := s.CloseOnSignal()
	if err = s.ListenAndServe(cfg.HttpListenAddr); err != nil {
		logger.Error("error in running http-server", "error", err)
		return
	}
	<-done
}

func openDatabase(cfg *config.Config) (*pg.DB, error) {
	pgDebug := cfg.AppEnv == "dev"

	if cfg.DBDriver == config.DBDriverSQLite {
		db, err := pg.CreateSQLite(cfg.SQLitePath, pgDebug)
		if err != nil {
			return nil, err
		}
		return db, repository.AutoMigrate(db)
	}

	readConf := pg.Config{
		User:     cfg.PostgresReadUser,
		Host:     cfg.PostgresReadHost,
		Port:     cfg.PostgresReadPort,
		Password: cfg.PostgresReadPassword,
		Database: cfg.PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     cfg.PostgresWriteUser,
		Host:     cfg.PostgresWriteHost,
		Port:     cfg.PostgresWritePort,
		Password: cfg.PostgresWritePassword,
		Database: cfg.PostgresWriteDatabase,
	}
	return pg.CreateReadWrite(readConf, writeConf, pgDebug)
}

func openBlobStore(cfg *config.Config, rdb redis.RedisAdapter) (storage.BlobStore, error) {
	switch cfg.BlobDriver {
	case config.BlobDriverS3:
		return storage.NewS3BlobStore(storage.S3Config{
			Endpoint:      cfg.S3Endpoint,
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			UseSSL:        cfg.S3UseSSL,
			PublicBaseURL: cfg.BlobPublicBaseURL,
		})
	case config.BlobDriverHTTP:
		return storage.NewHTTPBlobStore(cfg.BlobServerURL, cfg.BlobPublicBaseURL), nil
	default:
		base := cfg.BlobPublicBaseURL
		if base == "" {
			base = cfg.AppBaseUrl
		}
		return storage.NewRedisBlobStore(rdb, base), nil
	}
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.HasPrefix(v, "--env=") {
			path := strings.TrimPrefix(v, "--env=")
			if _, err := os.Stat(path); err != nil {
				logger.Error("failed to open the passed env file", "path", path, "error", err)
				return ""
			}
			return path
		}
	}
	return ""
}
