package exchange

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/pdxmph/addressbook/internal/db"
)

// YAML stores contacts under a top-level "contacts" sequence
type YAML struct{}

type yamlDocument struct {
	Contacts []Record `yaml:"contacts"`
}

// Name returns the format identifier
func (YAML) Name() string {
	return "yaml"
}

// Encode writes all contacts as one YAML document
func (YAML) Encode(w io.Writer, contacts []db.Contact) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlDocument{Contacts: toRecords(contacts)}); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

// Decode reads a YAML document. Unknown fields are rejected.
func (YAML) Decode(r io.Reader) ([]db.Contact, error) {
	var doc yamlDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	return toContacts(doc.Contacts), nil
}

func init() {
	MustRegister("yaml", func() Format { return YAML{} })
}
