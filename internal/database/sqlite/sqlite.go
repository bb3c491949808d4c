package sqlite

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/jmoiron/sqlx"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func isUniqueViolationError(err error) bool {
	var serr *sqlite.Error
	return errors.As(err, &serr) && serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

// New opens the embedded database file identified by dsn. The file is created
// on first use; no separate server process is involved.
func New(dsn string) (*sqlx.DB, error) {
	const op = "database.sqlite.New"

	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open database: %w", op, err)
	}

	return db, nil
}

// RunMigrations applies the database migrations from the specified path to
// the database file at dbPath.
func RunMigrations(path string, dbPath string) error {
	const op = "database.sqlite.RunMigrations"

	m, err := migrate.New(path, "sqlite://"+dbPath)
	if err != nil {
		return fmt.Errorf("%s: failed to initialize migrations: %w", op, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}

	return nil
}
