package pg

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// DB splits reads and writes across two gorm handles. Both may point at the
// same database.
type DB struct {
	read  *gorm.DB
	write *gorm.DB
}

var gormConfig = &gorm.Config{
	NamingStrategy: schema.NamingStrategy{
		SingularTable: true,
	},
}

func Create(config Config, withDebug bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(config.DSN()), gormConfig)
	if err != nil {
		return nil, err
	}

	if withDebug {
		db = db.Debug()
	}
	return db, nil
}

func CreateReadWrite(readConfig Config, writeConfig Config, withDebug bool) (*DB, error) {
	read, err := Create(readConfig, withDebug)
	if err != nil {
		return nil, err
	}
	write, err := Create(writeConfig, withDebug)
	if err != nil {
		return nil, err
	}
	return &DB{read, write}, nil
}

// CreateSQLite opens a single-file database for local runs without postgres.
func CreateSQLite(path string, withDebug bool) (*DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if withDebug {
		db = db.Debug()
	}
	return Wrap(db), nil
}

// Wrap uses one handle for both reads and writes.
func Wrap(db *gorm.DB) *DB {
	return &DB{read: db, write: db}
}

func (r *DB) Write(ctx context.Context) *gorm.DB {
	return r.write.WithContext(ctx)
}

func (r *DB) Read(ctx context.Context) *gorm.DB {
	return r.read.WithContext(ctx)
}

// Ping checks both connections.
func (r *DB) Ping(ctx context.Context) error {
	for _, db := range []*gorm.DB{r.read, r.write} {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err = sqlDB.PingContext(ctx); err != nil {
			return err
		}
	}
	return nil
}
