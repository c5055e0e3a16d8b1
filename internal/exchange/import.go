package exchange

import (
	"context"
	"fmt"

	"github.com/pdxmph/addressbook/internal/db"
)

// ContactAdder is the part of the store used by Import
type ContactAdder interface {
	AddContact(ctx context.Context, contact db.Contact) (int64, error)
}

// ImportResult counts what Import did
type ImportResult struct {
	Added   []int64
	Skipped int // records without a name
}

// Import inserts every named contact. Contacts with an empty name are
// skipped, matching the rule the edit form enforces. The first store error
// stops the import; contacts added before it stay added.
func Import(ctx context.Context, store ContactAdder, contacts []db.Contact) (ImportResult, error) {
	var res ImportResult
	for _, c := range contacts {
		if c.Name == "" {
			res.Skipped++
			continue
		}
		c.ID = 0
		id, err := store.AddContact(ctx, c)
		if err != nil {
			return res, fmt.Errorf("importing %s: %w", c.Name, err)
		}
		res.Added = append(res.Added, id)
	}
	return res, nil
}
