package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
	log  *slog.Logger
}

// Option configures Open
type Option func(*options)

type options struct {
	driver string
	logger *slog.Logger
}

// WithDriver selects the database/sql driver (DriverCGO or DriverPureGo)
func WithDriver(driver string) Option {
	return func(o *options) {
		if driver != "" {
			o.driver = driver
		}
	}
}

// WithLogger sets the logger used for migrations
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Open creates a new database connection
func Open(dbPath string, opts ...Option) (*DB, error) {
	o := options{
		driver: DefaultDriver,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if !ValidDriver(o.driver) {
		return nil, fmt.Errorf("unknown database driver %q", o.driver)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("database not found at %s\nRun 'addressbook init' to create it", dbPath)
	}

	conn, err := sql.Open(o.driver, dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db := &DB{conn: conn, log: o.logger}

	if err := db.RunMigrations(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

const contactColumns = `id, name, phone, email, street, city, state, zip, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanContact(s scanner) (Contact, error) {
	var c Contact
	err := s.Scan(
		&c.ID, &c.Name, &c.Phone, &c.Email,
		&c.Street, &c.City, &c.State, &c.Zip,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// cleanName removes newlines and surrounding whitespace from a stored name
func cleanName(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, "\n", " "))
}

// ListContacts returns the id and name of every contact ordered by name
func (db *DB) ListContacts(ctx context.Context) ([]Summary, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, name
		FROM contacts
		ORDER BY name COLLATE NOCASE, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		s.Name = cleanName(s.Name)
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// AllContacts returns every contact with all fields, in list order
func (db *DB) AllContacts(ctx context.Context) ([]Contact, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT `+contactColumns+`
		FROM contacts
		ORDER BY name COLLATE NOCASE, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		c.Name = cleanName(c.Name)
		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}

// GetContact retrieves a single contact by ID.
// It returns ErrNotFound when no such contact exists.
func (db *DB) GetContact(ctx context.Context, id int64) (*Contact, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT `+contactColumns+`
		FROM contacts
		WHERE id = ?
	`, id)

	c, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying contact %d: %w", id, err)
	}

	return &c, nil
}

// AddContact creates a new contact and returns the ID assigned to it
func (db *DB) AddContact(ctx context.Context, contact Contact) (int64, error) {
	result, err := db.conn.ExecContext(ctx, `
		INSERT INTO contacts (
			name, phone, email, street, city, state, zip,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`,
		contact.Name,
		contact.Phone,
		contact.Email,
		contact.Street,
		contact.City,
		contact.State,
		contact.Zip,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting contact: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting insert ID: %w", err)
	}

	return id, nil
}

// UpdateContact replaces all fields of the contact with contact.ID.
// The boolean result is false when no row matched the ID.
func (db *DB) UpdateContact(ctx context.Context, contact Contact) (bool, error) {
	result, err := db.conn.ExecContext(ctx, `
		UPDATE contacts
		SET name = ?,
		    phone = ?,
		    email = ?,
		    street = ?,
		    city = ?,
		    state = ?,
		    zip = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`,
		contact.Name,
		contact.Phone,
		contact.Email,
		contact.Street,
		contact.City,
		contact.State,
		contact.Zip,
		contact.ID,
	)
	if err != nil {
		return false, fmt.Errorf("updating contact: %w", err)
	}

	return affected(result)
}

// DeleteContact permanently deletes a contact.
// The boolean result is false when no row matched the ID.
func (db *DB) DeleteContact(ctx context.Context, id int64) (bool, error) {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting contact: %w", err)
	}

	return affected(result)
}

func affected(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting affected rows: %w", err)
	}
	return n > 0, nil
}
