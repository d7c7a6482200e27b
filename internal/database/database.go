package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Driver names a supported database backend.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverTurso    Driver = "turso"
	DriverPostgres Driver = "postgres"
)

// DB is a database handle that knows which placeholder style its driver expects.
type DB struct {
	*sql.DB
	Driver Driver
}

// InitDB opens the database and applies the embedded migrations.
// For sqlite, dsn is a file path or ":memory:". For turso it is the primary URL,
// for postgres a connection string.
func InitDB(driver Driver, dsn string, authToken string) (*DB, error) {
	var (
		db      *sql.DB
		dialect string
		err     error
	)

	switch driver {
	case DriverSQLite, "":
		driver = DriverSQLite
		dialect = "sqlite3"
		log.Info("Initializing local SQLite database", "path", dsn)
		db, err = sql.Open("sqlite3", ensureForeignKeysEnabledDSN(dsn))
		if err == nil && strings.HasPrefix(dsn, ":memory:") {
			// Every connection to :memory: is a separate database.
			db.SetMaxOpenConns(1)
		}
	case DriverTurso:
		dialect = "turso"
		log.Info("Initializing Turso database", "url", dsn)
		db, err = sql.Open("libsql", dsn+"?authToken="+authToken)
	case DriverPostgres:
		dialect = "postgres"
		log.Info("Initializing Postgres database")
		db, err = sql.Open("postgres", dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	if err = runMigrations(db, dialect); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database initialized successfully", "driver", driver)
	return &DB{DB: db, Driver: driver}, nil
}

func runMigrations(db *sql.DB, dialect string) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(log.Default())
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	return goose.Up(db, "migrations")
}

func ensureForeignKeysEnabledDSN(dsn string) string {
	if strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_fk=1"
	}
	return dsn + "?_fk=1"
}

// Rebind rewrites '?' placeholders into the positional form the driver expects.
func (db *DB) Rebind(query string) string {
	if db.Driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RunInTx runs fn in a transaction, rolling back when fn returns an error.
func (db *DB) RunInTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("failed to roll back: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
