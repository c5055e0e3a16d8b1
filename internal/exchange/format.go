// Package exchange converts contacts to and from portable file formats.
// Formats register themselves by name; the CLI picks one with --format.
package exchange

import (
	"io"
	"strings"

	"github.com/pdxmph/addressbook/internal/db"
)

// Record is the serialized form of a contact. IDs are informational only;
// imports always let the store assign new ones.
type Record struct {
	ID     int64  `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Name   string `json:"name" yaml:"name" toml:"name"`
	Phone  string `json:"phone,omitempty" yaml:"phone,omitempty" toml:"phone,omitempty"`
	Email  string `json:"email,omitempty" yaml:"email,omitempty" toml:"email,omitempty"`
	Street string `json:"street,omitempty" yaml:"street,omitempty" toml:"street,omitempty"`
	City   string `json:"city,omitempty" yaml:"city,omitempty" toml:"city,omitempty"`
	State  string `json:"state,omitempty" yaml:"state,omitempty" toml:"state,omitempty"`
	Zip    string `json:"zip,omitempty" yaml:"zip,omitempty" toml:"zip,omitempty"`
}

// Format defines what every import/export codec must implement
type Format interface {
	// Name returns the format identifier (e.g. "jsonl", "yaml")
	Name() string

	// Encode writes the contacts to w
	Encode(w io.Writer, contacts []db.Contact) error

	// Decode reads contacts from r. Returned contacts carry no ID.
	Decode(r io.Reader) ([]db.Contact, error)
}

// FormatFactory creates a new instance of a Format
type FormatFactory func() Format

// FromContact converts a stored contact to its serialized form
func FromContact(c db.Contact) Record {
	return Record{
		ID:     c.ID,
		Name:   c.Name,
		Phone:  c.Phone.String,
		Email:  c.Email.String,
		Street: c.Street.String,
		City:   c.City.String,
		State:  c.State.String,
		Zip:    c.Zip.String,
	}
}

// Contact converts the record back to a contact without an ID
func (r Record) Contact() db.Contact {
	return db.Contact{
		Name:   strings.TrimSpace(r.Name),
		Phone:  db.NewNullString(r.Phone),
		Email:  db.NewNullString(r.Email),
		Street: db.NewNullString(r.Street),
		City:   db.NewNullString(r.City),
		State:  db.NewNullString(r.State),
		Zip:    db.NewNullString(r.Zip),
	}
}

func toRecords(contacts []db.Contact) []Record {
	records := make([]Record, 0, len(contacts))
	for _, c := range contacts {
		records = append(records, FromContact(c))
	}
	return records
}

func toContacts(records []Record) []db.Contact {
	contacts := make([]db.Contact, 0, len(records))
	for _, r := range records {
		contacts = append(contacts, r.Contact())
	}
	return contacts
}
