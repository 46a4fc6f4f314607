package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	// Registers the cgo-free "sqlite" database/sql driver named below.
	_ "modernc.org/sqlite"
)

// Connect opens a gorm handle. Postgres DSNs go through the pgx-backed
// driver; anything else is treated as a SQLite path for local development
// and tests. Unique-constraint errors are translated so services can match
// gorm.ErrDuplicatedKey regardless of the backend.
func Connect(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
}
