package db

import (
	"fmt"
)

// addressColumns were added after the first release, which only stored
// name, phone and email.
var addressColumns = []string{"street", "city", "state", "zip"}

// RunMigrations applies any pending database migrations
func (db *DB) RunMigrations() error {
	if err := db.runAddressMigration(); err != nil {
		return err
	}

	if err := db.runTimestampMigration(); err != nil {
		return err
	}

	return nil
}

func (db *DB) columnExists(name string) (bool, error) {
	var count int
	err := db.conn.QueryRow(`
		SELECT COUNT(*)
		FROM pragma_table_info('contacts')
		WHERE name = ?
	`, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking for %s column: %w", name, err)
	}
	return count > 0, nil
}

func (db *DB) runAddressMigration() error {
	var missing []string
	for _, col := range addressColumns {
		ok, err := db.columnExists(col)
		if err != nil {
			return err
		}
		if !ok {
			missing = append(missing, col)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	db.log.Info("running migration: adding address columns", "columns", missing)

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, col := range missing {
		if _, err := tx.Exec(`ALTER TABLE contacts ADD COLUMN ` + col + ` TEXT`); err != nil {
			return fmt.Errorf("adding %s column: %w", col, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing address migration: %w", err)
	}

	db.log.Info("address migration completed")
	return nil
}

func (db *DB) runTimestampMigration() error {
	var missing []string
	for _, col := range []string{"created_at", "updated_at"} {
		ok, err := db.columnExists(col)
		if err != nil {
			return err
		}
		if !ok {
			missing = append(missing, col)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	db.log.Info("running migration: adding timestamp columns", "columns", missing)

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	// ALTER TABLE cannot add a column with a non-constant default,
	// so existing rows are backfilled instead.
	for _, col := range missing {
		if _, err := tx.Exec(`ALTER TABLE contacts ADD COLUMN ` + col + ` DATETIME`); err != nil {
			return fmt.Errorf("adding %s column: %w", col, err)
		}
		if _, err := tx.Exec(`UPDATE contacts SET ` + col + ` = CURRENT_TIMESTAMP WHERE ` + col + ` IS NULL`); err != nil {
			return fmt.Errorf("backfilling %s column: %w", col, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing timestamp migration: %w", err)
	}

	db.log.Info("timestamp migration completed")
	return nil
}
