package db

import (
	"context"
	"fmt"
)

// Fixtures returns the sample contacts used by CreateFixturesDatabase
func Fixtures() []Contact {
	return []Contact{
		{
			Name:   "Sarah Chen",
			Phone:  NewNullString("555-0101"),
			Email:  NewNullString("sarah.chen@email.com"),
			Street: NewNullString("12 Alder St"),
			City:   NewNullString("Portland"),
			State:  NewNullString("OR"),
			Zip:    NewNullString("97201"),
		},
		{
			Name:  "Marcus Williams",
			Phone: NewNullString("555-0102"),
			Email: NewNullString("marcus.w@company.com"),
			City:  NewNullString("Seattle"),
			State: NewNullString("WA"),
		},
		{
			Name:   "Jennifer Rodriguez",
			Phone:  NewNullString("555-0105"),
			Email:  NewNullString("jen.rodriguez@company.com"),
			Street: NewNullString("400 Market St, Suite 9"),
			City:   NewNullString("San Francisco"),
			State:  NewNullString("CA"),
			Zip:    NewNullString("94105"),
		},
		{
			Name:  "David Kim",
			Email: NewNullString("d.kim@startup.io"),
		},
		{
			Name:  "Lisa Park",
			Phone: NewNullString("555-0107"),
			Email: NewNullString("lisa.park@consulting.com"),
			City:  NewNullString("Boston"),
			State: NewNullString("MA"),
			Zip:   NewNullString("02110"),
		},
		{
			Name:   "Dr. Anderson",
			Phone:  NewNullString("555-0110"),
			Email:  NewNullString("office@medical.practice"),
			Street: NewNullString("88 Clinic Way"),
			City:   NewNullString("Portland"),
			State:  NewNullString("OR"),
			Zip:    NewNullString("97205"),
		},
		{
			Name:  "Tom's Auto Shop",
			Phone: NewNullString("555-0111"),
			Email: NewNullString("service@tomsauto.com"),
		},
		{
			Name:  "mom",
			Phone: NewNullString("555-0103"),
		},
	}
}

// CreateFixturesDatabase creates a test database with realistic sample data
func CreateFixturesDatabase(dbPath string, opts ...Option) error {
	o := options{driver: DefaultDriver}
	for _, opt := range opts {
		opt(&o)
	}

	if err := Initialize(dbPath, o.driver); err != nil {
		return fmt.Errorf("initializing fixtures database: %w", err)
	}

	database, err := Open(dbPath, opts...)
	if err != nil {
		return fmt.Errorf("opening fixtures database: %w", err)
	}
	defer database.Close()

	ctx := context.Background()
	for _, contact := range Fixtures() {
		if _, err := database.AddContact(ctx, contact); err != nil {
			return fmt.Errorf("adding fixture contact %s: %w", contact.Name, err)
		}
	}

	return nil
}
