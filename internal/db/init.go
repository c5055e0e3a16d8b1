package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names
const (
	DriverCGO    = "sqlite3" // github.com/mattn/go-sqlite3
	DriverPureGo = "sqlite"  // modernc.org/sqlite
)

// DefaultDriver is used when no driver is configured
const DefaultDriver = DriverCGO

const schema = `
CREATE TABLE IF NOT EXISTS contacts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    phone TEXT,
    email TEXT,
    street TEXT,
    city TEXT,
    state TEXT,
    zip TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_contacts_name ON contacts (name COLLATE NOCASE);

CREATE TRIGGER IF NOT EXISTS update_contact_timestamp
AFTER UPDATE ON contacts
FOR EACH ROW WHEN NEW.updated_at = OLD.updated_at
BEGIN
    UPDATE contacts SET updated_at = CURRENT_TIMESTAMP WHERE id = NEW.id;
END;`

// ValidDriver reports whether name is one of the registered SQLite drivers
func ValidDriver(name string) bool {
	return name == DriverCGO || name == DriverPureGo
}

// Initialize creates a new database with the complete schema
func Initialize(dbPath, driver string) error {
	if driver == "" {
		driver = DefaultDriver
	}
	if !ValidDriver(driver) {
		return fmt.Errorf("unknown database driver %q", driver)
	}

	// Check if database already exists
	if _, err := os.Stat(dbPath); err == nil {
		return fmt.Errorf("database already exists at %s", dbPath)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}

	conn, err := sql.Open(driver, dbPath)
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	defer conn.Close()

	if _, err := conn.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}
