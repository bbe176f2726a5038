package main

import (
	"os"
	"strings"

	"github.com/swiftport/customs-dashboard/internal/config"
	"github.com/swiftport/customs-dashboard/pkg/logger"
	"github.com/swiftport/customs-dashboard/pkg/pg"
)

// main.go --env=.env --dir=./migrations
func main() {
	defer logger.Sync()

	err := config.Load(argValue("--env=", ".env"))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}
	if config.Get().DBDriver != config.DBDriverPostgres {
		logger.Warn("migrations target postgres only, the sqlite driver migrates itself on start", "driver", config.Get().DBDriver)
		return
	}

	pgConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}
	err = pg.Migrate(pgConf, argValue("--dir=", "./migrations"))
	if err != nil {
		logger.Error("migration: error running migrations", "error", err)
	}
}

// argValue returns the value of the first os.Args entry starting with
// prefix, or def when that path exists. Missing paths yield "".
func argValue(prefix, def string) string {
	path := def
	for _, v := range os.Args {
		if strings.HasPrefix(v, prefix) {
			path = strings.TrimPrefix(v, prefix)
			break
		}
	}
	if _, err := os.Stat(path); err != nil {
		logger.Warn("path not found, ignoring", "flag", strings.TrimSuffix(prefix, "="), "path", path)
		return ""
	}
	return path
}
