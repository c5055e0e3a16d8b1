package db

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound is returned when no contact exists for an ID
var ErrNotFound = errors.New("contact not found")

// Contact represents a person in the address book
type Contact struct {
	ID        int64
	Name      string
	Phone     sql.NullString
	Email     sql.NullString
	Street    sql.NullString
	City      sql.NullString
	State     sql.NullString
	Zip       sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary is the (id, name) pair shown in the contact list
type Summary struct {
	ID   int64
	Name string
}

// Summary returns the list entry for the contact
func (c Contact) Summary() Summary {
	return Summary{ID: c.ID, Name: c.Name}
}

// Address joins the street, city, state and zip fields into a single line.
// Empty parts are skipped.
func (c Contact) Address() string {
	var parts []string
	if c.Street.Valid {
		parts = append(parts, c.Street.String)
	}
	locality := c.City.String
	if c.State.Valid {
		if locality != "" {
			locality += ", "
		}
		locality += c.State.String
	}
	if c.Zip.Valid {
		if locality != "" {
			locality += " "
		}
		locality += c.Zip.String
	}
	if locality != "" {
		parts = append(parts, locality)
	}
	return strings.Join(parts, ", ")
}

// NewNullString creates a sql.NullString from a string
func NewNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

const uriScheme = "addressbook"

// ContactURI returns the opaque reference used to pass a contact between
// screens and commands.
func ContactURI(id int64) string {
	u := url.URL{Scheme: uriScheme, Host: "contacts", Path: "/" + strconv.FormatInt(id, 10)}
	return u.String()
}

// ParseContactRef accepts either a contact URI or a bare numeric ID.
func ParseContactRef(ref string) (int64, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		if id <= 0 {
			return 0, fmt.Errorf("invalid contact id %d", id)
		}
		return id, nil
	}

	u, err := url.Parse(ref)
	if err != nil {
		return 0, fmt.Errorf("parsing contact reference: %w", err)
	}
	if u.Scheme != uriScheme || u.Host != "contacts" {
		return 0, fmt.Errorf("not a contact reference: %q", ref)
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(u.Path, "/"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid contact id in %q", ref)
	}
	return id, nil
}
