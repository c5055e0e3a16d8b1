package exchange

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/pdxmph/addressbook/internal/db"
)

// TOML stores contacts as an array of [[contact]] tables
type TOML struct{}

type tomlDocument struct {
	Contacts []Record `toml:"contact"`
}

// Name returns the format identifier
func (TOML) Name() string {
	return "toml"
}

// Encode writes all contacts as [[contact]] tables
func (TOML) Encode(w io.Writer, contacts []db.Contact) error {
	if err := toml.NewEncoder(w).Encode(tomlDocument{Contacts: toRecords(contacts)}); err != nil {
		return fmt.Errorf("encoding toml: %w", err)
	}
	return nil
}

// Decode reads [[contact]] tables
func (TOML) Decode(r io.Reader) ([]db.Contact, error) {
	var doc tomlDocument
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("parsing toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parsing toml: unknown key %q", undecoded[0].String())
	}
	return toContacts(doc.Contacts), nil
}

func init() {
	MustRegister("toml", func() Format { return TOML{} })
}
