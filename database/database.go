package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync/atomic"
	"time"

	"cafehub/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// StoreTimeout bounds every store operation issued by a handler.
const StoreTimeout = 5 * time.Second

func newGormLogger() gormLogger.Interface {
	return gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}

func InitDatabase() {
	var err error

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=cafehub port=5432 sslmode=disable"
	}

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         newGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatalf("Failed to access database handle: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	if err := migrate(DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Database connection and migration completed")
}

var testDBSeq int64

// InitTestDatabase opens a fresh in-memory SQLite store with the same
// schema, used by handler tests.
func InitTestDatabase() *gorm.DB {
	name := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to open test database: %v", err)
	}
	if err := migrate(db); err != nil {
		log.Fatalf("Test migration failed: %v", err)
	}
	DB = db
	return db
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Cafe{},
		&model.Image{},
		&model.ContactInfo{},
		&model.Rating{},
		&model.Comment{},
		&model.Favorite{},
		&model.Contact{},
	)
}

// RequestContext derives a bounded context for store operations within a
// single request lifecycle.
func RequestContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, StoreTimeout)
}
