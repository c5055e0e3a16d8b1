package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB creates a fresh database on the pure-Go driver so tests do not
// depend on cgo.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contacts.db")
	require.NoError(t, Initialize(path, DriverPureGo))
	database, err := Open(path, WithDriver(DriverPureGo))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestInsertListUpdateDelete(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	id, err := database.AddContact(ctx, Contact{Name: "Ann"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	list, err := database.ListContacts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Summary{{ID: 1, Name: "Ann"}}, list)

	ok, err := database.UpdateContact(ctx, Contact{ID: id, Name: "Annie"})
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := database.GetContact(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Annie", got.Name)

	ok, err = database.DeleteContact(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	list, err = database.ListContacts(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAddContact_IDsNeverReused(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	seen := make(map[int64]bool)
	for i := 0; i < 5; i++ {
		id, err := database.AddContact(ctx, Contact{Name: "Contact"})
		require.NoError(t, err)
		assert.False(t, seen[id], "id %d handed out twice", id)
		seen[id] = true

		// Deleting the newest row must not free its id for the next insert.
		_, err = database.DeleteContact(ctx, id)
		require.NoError(t, err)
	}
	assert.Len(t, seen, 5)
}

func TestUpdateContact_OnlyTouchesTarget(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	annID, err := database.AddContact(ctx, Contact{Name: "Ann", Phone: NewNullString("555-0001")})
	require.NoError(t, err)
	bobID, err := database.AddContact(ctx, Contact{Name: "Bob", City: NewNullString("Portland")})
	require.NoError(t, err)

	ok, err := database.UpdateContact(ctx, Contact{
		ID:    annID,
		Name:  "Ann Lee",
		Email: NewNullString("ann@example.com"),
	})
	require.NoError(t, err)
	require.True(t, ok)

	ann, err := database.GetContact(ctx, annID)
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", ann.Name)
	assert.Equal(t, NewNullString("ann@example.com"), ann.Email)
	assert.False(t, ann.Phone.Valid, "update replaces all fields")

	bob, err := database.GetContact(ctx, bobID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", bob.Name)
	assert.Equal(t, NewNullString("Portland"), bob.City)
}

func TestMissingRows(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	tests := []struct {
		name  string
		check func(t *testing.T)
	}{
		{
			name: "get unknown id returns ErrNotFound",
			check: func(t *testing.T) {
				_, err := database.GetContact(ctx, 42)
				assert.ErrorIs(t, err, ErrNotFound)
			},
		},
		{
			name: "update unknown id reports no change",
			check: func(t *testing.T) {
				ok, err := database.UpdateContact(ctx, Contact{ID: 42, Name: "Ghost"})
				require.NoError(t, err)
				assert.False(t, ok)
			},
		},
		{
			name: "delete unknown id reports no change",
			check: func(t *testing.T) {
				ok, err := database.DeleteContact(ctx, 42)
				require.NoError(t, err)
				assert.False(t, ok)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, tt.check)
	}
}

func TestListContacts_OrderedByNameIgnoringCase(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	for _, name := range []string{"carol", "Bob", "alice", "Bob"} {
		_, err := database.AddContact(ctx, Contact{Name: name})
		require.NoError(t, err)
	}

	list, err := database.ListContacts(ctx)
	require.NoError(t, err)

	var names []string
	for _, s := range list {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"alice", "Bob", "Bob", "carol"}, names)
	assert.Less(t, list[1].ID, list[2].ID, "equal names keep insertion order")
}

func TestGetContact_AllFields(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	want := Contact{
		Name:   "Sarah Chen",
		Phone:  NewNullString("555-0101"),
		Email:  NewNullString("sarah@example.com"),
		Street: NewNullString("12 Alder St"),
		City:   NewNullString("Portland"),
		State:  NewNullString("OR"),
		Zip:    NewNullString("97201"),
	}
	id, err := database.AddContact(ctx, want)
	require.NoError(t, err)

	got, err := database.GetContact(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Phone, got.Phone)
	assert.Equal(t, want.Email, got.Email)
	assert.Equal(t, want.Street, got.Street)
	assert.Equal(t, want.City, got.City)
	assert.Equal(t, want.State, got.State)
	assert.Equal(t, want.Zip, got.Zip)
	assert.False(t, got.CreatedAt.IsZero())

	all, err := database.AllContacts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "12 Alder St, Portland, OR 97201", all[0].Address())
}

func TestInitialize_RefusesExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.db")
	require.NoError(t, Initialize(path, DriverPureGo))

	err := Initialize(path, DriverPureGo)
	assert.ErrorContains(t, err, "already exists")
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.db"), WithDriver(DriverPureGo))
	assert.ErrorContains(t, err, "database not found")

	_, err = Open("whatever.db", WithDriver("postgres"))
	assert.ErrorContains(t, err, "unknown database driver")
}

func TestRunMigrations_AddsAddressColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")

	conn, err := sql.Open(DriverPureGo, path)
	require.NoError(t, err)
	_, err = conn.Exec(`CREATE TABLE contacts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		phone TEXT,
		email TEXT
	)`)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO contacts (name, phone) VALUES ('Legacy', '555-0000')`)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	database, err := Open(path, WithDriver(DriverPureGo))
	require.NoError(t, err)
	defer database.Close()

	ctx := context.Background()
	got, err := database.GetContact(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Legacy", got.Name)
	assert.False(t, got.Street.Valid)

	ok, err := database.UpdateContact(ctx, Contact{ID: 1, Name: "Legacy", City: NewNullString("Salem")})
	require.NoError(t, err)
	assert.True(t, ok)

	// A second open finds nothing left to migrate.
	require.NoError(t, database.RunMigrations())
}

func TestCreateFixturesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.db")
	require.NoError(t, CreateFixturesDatabase(path, WithDriver(DriverPureGo)))

	database, err := Open(path, WithDriver(DriverPureGo))
	require.NoError(t, err)
	defer database.Close()

	list, err := database.ListContacts(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, len(Fixtures()))
}
