package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdxmph/addressbook/internal/db"
)

// listState renders every contact as a selectable (id, name) row and keeps
// the cursor stable across reloads.
type listState struct {
	contacts  []db.Summary
	cursor    int
	loading   bool
	err       error
	filter    textinput.Model
	filtering bool
	follow    int64 // contact to select after the next reload
}

func newListState() listState {
	ti := textinput.New()
	ti.Placeholder = "Filter contacts..."
	ti.Prompt = "> "
	ti.CharLimit = 50
	ti.Width = 25
	return listState{loading: true, filter: ti}
}

// Update processes messages for the list.
func (ls listState) Update(msg tea.Msg) (listState, tea.Cmd) {
	switch msg := msg.(type) {
	case ContactsLoadedMsg:
		return ls.applyContacts(msg.Contacts, msg.Err), nil

	case tea.KeyMsg:
		if ls.filtering {
			return ls.handleFilterKey(msg)
		}
		if ls.loading {
			return ls, nil
		}
		return ls.handleKey(msg)
	}

	if ls.filtering {
		var cmd tea.Cmd
		ls.filter, cmd = ls.filter.Update(msg)
		return ls, cmd
	}
	return ls, nil
}

// applyContacts swaps in a fresh query result. The cursor follows the
// requested contact when it is present, otherwise it is clamped.
func (ls listState) applyContacts(contacts []db.Summary, err error) listState {
	ls.loading = false
	if err != nil {
		ls.err = err
		return ls
	}
	ls.err = nil
	ls.contacts = append([]db.Summary(nil), contacts...)

	if ls.follow != 0 {
		for i, c := range ls.visible() {
			if c.ID == ls.follow {
				ls.cursor = i
				break
			}
		}
		ls.follow = 0
	}
	ls.cursor = ls.clamp(ls.cursor)
	return ls
}

func (ls listState) handleKey(msg tea.KeyMsg) (listState, tea.Cmd) {
	switch {
	case key.Matches(msg, listKeys.Up):
		if ls.cursor > 0 {
			ls.cursor--
		}

	case key.Matches(msg, listKeys.Down):
		if ls.cursor < len(ls.visible())-1 {
			ls.cursor++
		}

	case key.Matches(msg, listKeys.Open):
		if id := ls.SelectedID(); id != 0 {
			return ls, func() tea.Msg { return ContactSelectedMsg{ID: id} }
		}

	case key.Matches(msg, listKeys.Add):
		return ls, func() tea.Msg { return AddContactMsg{} }

	case key.Matches(msg, listKeys.Filter):
		ls.filtering = true
		ls.filter.Reset()
		ls.filter.Focus()
		return ls, textinput.Blink

	case msg.String() == "esc":
		if ls.filter.Value() != "" {
			ls.filter.Reset()
			ls.cursor = ls.clamp(ls.cursor)
		}
	}

	return ls, nil
}

func (ls listState) handleFilterKey(msg tea.KeyMsg) (listState, tea.Cmd) {
	switch {
	case key.Matches(msg, filterKeys.Clear):
		ls.filtering = false
		ls.filter.Reset()
		ls.filter.Blur()
		ls.cursor = ls.clamp(ls.cursor)
		return ls, nil

	case key.Matches(msg, filterKeys.Accept):
		ls.filtering = false
		ls.filter.Blur()
		ls.cursor = ls.clamp(ls.cursor)
		return ls, nil

	case key.Matches(msg, filterKeys.Up):
		if ls.cursor > 0 {
			ls.cursor--
		}
		return ls, nil

	case key.Matches(msg, filterKeys.Down):
		if ls.cursor < len(ls.visible())-1 {
			ls.cursor++
		}
		return ls, nil
	}

	var cmd tea.Cmd
	ls.filter, cmd = ls.filter.Update(msg)
	ls.cursor = ls.clamp(ls.cursor)
	return ls, cmd
}

// visible returns the contacts matching the current filter
func (ls listState) visible() []db.Summary {
	needle := strings.ToLower(strings.TrimSpace(ls.filter.Value()))
	if needle == "" {
		return ls.contacts
	}

	var filtered []db.Summary
	for _, c := range ls.contacts {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// clamp keeps a cursor position within the visible rows
func (ls listState) clamp(cursor int) int {
	n := len(ls.visible())
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

// SelectedID returns the contact under the cursor, or 0 when the list is
// empty or still loading.
func (ls listState) SelectedID() int64 {
	rows := ls.visible()
	if ls.loading || len(rows) == 0 || ls.cursor >= len(rows) {
		return 0
	}
	return rows[ls.cursor].ID
}

// View renders the list pane content for the given dimensions.
func (ls listState) View(width, height int) string {
	var lines []string

	if ls.filtering {
		lines = append(lines, ls.filter.View(), "")
		height -= 2
	}

	rows := ls.visible()
	header := fmt.Sprintf("Contacts (%d)", len(rows))
	if v := ls.filter.Value(); v != "" && !ls.filtering {
		header += " [filter: " + v + "]"
	}
	lines = append(lines, headerStyle.Render(header))
	lines = append(lines, strings.Repeat("─", max(width-2, 0)))

	switch {
	case ls.loading:
		lines = append(lines, "Loading contacts...")
		return strings.Join(lines, "\n")
	case ls.err != nil:
		lines = append(lines, errorStyle.Render("Error: "+ls.err.Error()))
		return strings.Join(lines, "\n")
	case len(rows) == 0 && len(ls.contacts) == 0:
		lines = append(lines, labelStyle.Render("No contacts yet. Press a to add one."))
		return strings.Join(lines, "\n")
	case len(rows) == 0:
		lines = append(lines, labelStyle.Render("No matches."))
		return strings.Join(lines, "\n")
	}

	visibleHeight := height - 2
	if visibleHeight < 1 {
		visibleHeight = 1
	}
	start := 0
	if ls.cursor >= visibleHeight {
		start = ls.cursor - visibleHeight + 1
	}

	for i := start; i < len(rows) && i < start+visibleHeight; i++ {
		line := "  " + rows[i].Name
		if i == ls.cursor {
			line = selectedStyle.Render("▸ " + rows[i].Name)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
