package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdxmph/addressbook/internal/db"
)

// storeTimeout bounds every store call made from the UI
const storeTimeout = 5 * time.Second

// loadContacts re-issues the list query
func loadContacts(store ContactStore) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		contacts, err := store.ListContacts(ctx)
		return ContactsLoadedMsg{Contacts: contacts, Err: err}
	}
}

// loadContact fetches one record in the background
func loadContact(store ContactStore, id int64, token int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		contact, err := store.GetContact(ctx, id)
		return contactLoadedMsg{token: token, contact: contact, err: err}
	}
}

var errNotUpdated = errors.New("no contact was updated")

// saveContact inserts the contact when it has no ID and updates it otherwise
func saveContact(store ContactStore, contact db.Contact) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		if contact.ID == 0 {
			id, err := store.AddContact(ctx, contact)
			if err != nil {
				return saveFailedMsg{created: true, err: err}
			}
			return ContactSavedMsg{ID: id, Created: true}
		}

		ok, err := store.UpdateContact(ctx, contact)
		if err == nil && !ok {
			err = errNotUpdated
		}
		if err != nil {
			return saveFailedMsg{err: err}
		}
		return ContactSavedMsg{ID: contact.ID}
	}
}

var errNotDeleted = errors.New("no contact was deleted")

// deleteContact removes the contact in the background
func deleteContact(store ContactStore, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		ok, err := store.DeleteContact(ctx, id)
		if err == nil && !ok {
			err = errNotDeleted
		}
		if err != nil {
			return deleteFailedMsg{err: err}
		}
		return ContactDeletedMsg{ID: id}
	}
}
