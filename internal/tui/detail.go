package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdxmph/addressbook/internal/db"
)

// detailState shows one contact and offers edit and delete
type detailState struct {
	id            int64
	token         int
	contact       *db.Contact
	loading       bool
	err           error
	confirmDelete bool
	deleting      bool
}

func newDetailState(id int64, token int) detailState {
	return detailState{id: id, token: token, loading: true}
}

// Update processes messages for the detail pane.
func (ds detailState) Update(msg tea.Msg, store ContactStore) (detailState, tea.Cmd) {
	switch msg := msg.(type) {
	case contactLoadedMsg:
		if msg.token != ds.token {
			return ds, nil
		}
		ds.loading = false
		ds.contact = msg.contact
		ds.err = msg.err
		return ds, nil

	case deleteFailedMsg:
		ds.deleting = false
		ds.confirmDelete = false
		return ds, nil

	case tea.KeyMsg:
		if ds.loading || ds.deleting {
			if key.Matches(msg, detailKeys.Back) {
				return ds, func() tea.Msg { return backMsg{} }
			}
			return ds, nil
		}
		return ds.handleKey(msg, store)
	}

	return ds, nil
}

func (ds detailState) handleKey(msg tea.KeyMsg, store ContactStore) (detailState, tea.Cmd) {
	if ds.confirmDelete {
		if key.Matches(msg, confirmKeys.Confirm) {
			ds.deleting = true
			return ds, deleteContact(store, ds.id)
		}
		// Any other key cancels.
		ds.confirmDelete = false
		return ds, nil
	}

	switch {
	case key.Matches(msg, detailKeys.Back):
		return ds, func() tea.Msg { return backMsg{} }

	case key.Matches(msg, detailKeys.Edit):
		if ds.contact != nil {
			id := ds.id
			return ds, func() tea.Msg { return EditContactMsg{ID: id} }
		}

	case key.Matches(msg, detailKeys.Delete):
		if ds.contact != nil {
			ds.confirmDelete = true
		}
	}

	return ds, nil
}

// View renders the detail pane content for the given dimensions.
func (ds detailState) View(width, height int) string {
	switch {
	case ds.loading:
		return "Loading contact..."
	case errors.Is(ds.err, db.ErrNotFound):
		return "Contact not found"
	case ds.err != nil:
		return errorStyle.Render("Error: " + ds.err.Error())
	case ds.contact == nil:
		return "No contact selected"
	}

	c := ds.contact
	var lines []string
	lines = append(lines, headerStyle.Render(c.Name))
	lines = append(lines, labelStyle.Render(db.ContactURI(c.ID)))
	lines = append(lines, strings.Repeat("─", max(width-2, 0)))
	lines = append(lines, "")

	field := func(label string, v string) {
		if v != "" {
			lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render(label), v))
		}
	}
	field("Phone:  ", c.Phone.String)
	field("Email:  ", c.Email.String)
	field("Address:", c.Address())

	if ds.confirmDelete {
		lines = append(lines, "")
		lines = append(lines, errorStyle.Render(fmt.Sprintf("Delete contact '%s'? (y/n)", c.Name)))
	}

	return strings.Join(lines, "\n")
}
