package tui

import (
	"context"

	"github.com/pdxmph/addressbook/internal/db"
)

// ContactStore is the record store as seen by the screens
type ContactStore interface {
	ListContacts(ctx context.Context) ([]db.Summary, error)
	GetContact(ctx context.Context, id int64) (*db.Contact, error)
	AddContact(ctx context.Context, contact db.Contact) (int64, error)
	UpdateContact(ctx context.Context, contact db.Contact) (bool, error)
	DeleteContact(ctx context.Context, id int64) (bool, error)
}

// ContactsLoadedMsg carries the result of a list query
type ContactsLoadedMsg struct {
	Contacts []db.Summary
	Err      error
}

// ContactSelectedMsg is emitted by the list when a contact is activated
type ContactSelectedMsg struct {
	ID int64
}

// AddContactMsg asks for an empty edit form
type AddContactMsg struct{}

// EditContactMsg asks for the edit form of an existing contact
type EditContactMsg struct {
	ID int64
}

// CancelEditMsg closes the edit form without saving
type CancelEditMsg struct{}

// ContactSavedMsg reports a successful insert or update
type ContactSavedMsg struct {
	ID      int64
	Created bool
}

// ContactDeletedMsg reports a successful delete
type ContactDeletedMsg struct {
	ID int64
}

// contactLoadedMsg carries a single record to whichever pane asked for it.
// token identifies the request so a pane ignores loads it no longer wants.
type contactLoadedMsg struct {
	token   int
	contact *db.Contact
	err     error
}

// saveFailedMsg reports an insert error or an update that changed nothing
type saveFailedMsg struct {
	created bool
	err     error
}

// deleteFailedMsg reports a delete error or a delete that removed nothing
type deleteFailedMsg struct {
	err error
}

// backMsg returns from the detail pane to the list
type backMsg struct{}

// noticeExpiredMsg clears the notice line if seq is still current
type noticeExpiredMsg struct {
	seq int
}
