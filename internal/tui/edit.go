package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdxmph/addressbook/internal/db"
)

// Edit field indices
const (
	EditFieldName = iota
	EditFieldPhone
	EditFieldEmail
	EditFieldStreet
	EditFieldCity
	EditFieldState
	EditFieldZip
	EditFieldCount // Total number of fields
)

var fieldLabels = [EditFieldCount]string{
	"Name:   ",
	"Phone:  ",
	"Email:  ",
	"Street: ",
	"City:   ",
	"State:  ",
	"Zip:    ",
}

// editForm binds one contact to text inputs. With id 0 it creates a new
// contact; otherwise it waits for the record to load before accepting input.
type editForm struct {
	id      int64
	token   int
	loading bool
	loadErr error
	saving  bool
	focus   int
	inputs  []textinput.Model
}

func newEditForm(id int64, token int, width int) editForm {
	inputs := make([]textinput.Model, EditFieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Prompt = ""
		inputs[i].Placeholder = strings.TrimSuffix(strings.TrimSpace(fieldLabels[i]), ":")
	}
	inputs[EditFieldName].Placeholder = "Name (required)"

	f := editForm{
		id:      id,
		token:   token,
		loading: id != 0,
		inputs:  inputs,
	}
	f = f.setWidth(width)
	if !f.loading {
		f.inputs[EditFieldName].Focus()
	}
	return f
}

// creating reports whether the form inserts rather than updates
func (f editForm) creating() bool {
	return f.id == 0
}

// CanSave reports whether the save action is currently enabled
func (f editForm) CanSave() bool {
	return !f.loading && !f.saving && f.loadErr == nil &&
		strings.TrimSpace(f.inputs[EditFieldName].Value()) != ""
}

// contact assembles a record from the current input values
func (f editForm) contact() db.Contact {
	value := func(i int) string { return strings.TrimSpace(f.inputs[i].Value()) }
	return db.Contact{
		ID:     f.id,
		Name:   value(EditFieldName),
		Phone:  db.NewNullString(value(EditFieldPhone)),
		Email:  db.NewNullString(value(EditFieldEmail)),
		Street: db.NewNullString(value(EditFieldStreet)),
		City:   db.NewNullString(value(EditFieldCity)),
		State:  db.NewNullString(value(EditFieldState)),
		Zip:    db.NewNullString(value(EditFieldZip)),
	}
}

// fill populates the inputs from a loaded record
func (f editForm) fill(c *db.Contact) editForm {
	f.inputs[EditFieldName].SetValue(c.Name)
	f.inputs[EditFieldPhone].SetValue(c.Phone.String)
	f.inputs[EditFieldEmail].SetValue(c.Email.String)
	f.inputs[EditFieldStreet].SetValue(c.Street.String)
	f.inputs[EditFieldCity].SetValue(c.City.String)
	f.inputs[EditFieldState].SetValue(c.State.String)
	f.inputs[EditFieldZip].SetValue(c.Zip.String)
	for i := range f.inputs {
		f.inputs[i].CursorEnd()
	}
	return f
}

func (f editForm) setWidth(width int) editForm {
	w := width - len(fieldLabels[0]) - 4
	if w < 10 {
		w = 10
	}
	for i := range f.inputs {
		f.inputs[i].Width = w
	}
	return f
}

func (f editForm) setFocus(i int) editForm {
	f.inputs[f.focus].Blur()
	f.focus = (i + EditFieldCount) % EditFieldCount
	f.inputs[f.focus].Focus()
	return f
}

// Update processes messages for the form.
func (f editForm) Update(msg tea.Msg, store ContactStore) (editForm, tea.Cmd) {
	switch msg := msg.(type) {
	case contactLoadedMsg:
		if msg.token != f.token || !f.loading {
			return f, nil
		}
		f.loading = false
		if msg.err != nil {
			f.loadErr = msg.err
			return f, nil
		}
		f = f.fill(msg.contact)
		f.inputs[EditFieldName].Focus()
		return f, textinput.Blink

	case saveFailedMsg:
		f.saving = false
		return f, nil

	case tea.KeyMsg:
		return f.handleKey(msg, store)
	}

	if f.loading {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f editForm) handleKey(msg tea.KeyMsg, store ContactStore) (editForm, tea.Cmd) {
	if key.Matches(msg, formKeys.Cancel) {
		return f, func() tea.Msg { return CancelEditMsg{} }
	}
	if f.loading || f.saving || f.loadErr != nil {
		return f, nil
	}

	switch {
	case key.Matches(msg, formKeys.Save),
		msg.String() == "enter" && f.focus == EditFieldCount-1:
		if !f.CanSave() {
			return f, nil
		}
		f.saving = true
		return f, saveContact(store, f.contact())

	case key.Matches(msg, formKeys.Next):
		return f.setFocus(f.focus + 1), textinput.Blink

	case key.Matches(msg, formKeys.Prev):
		return f.setFocus(f.focus - 1), textinput.Blink
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// View renders the form content for the given dimensions.
func (f editForm) View(width, height int) string {
	title := "Add Contact"
	if !f.creating() {
		title = "Edit Contact"
	}

	var lines []string
	lines = append(lines, headerStyle.Render(title))
	lines = append(lines, strings.Repeat("─", max(width-2, 0)))
	lines = append(lines, "")

	switch {
	case f.loading:
		lines = append(lines, "Loading contact...")
		return strings.Join(lines, "\n")
	case f.loadErr != nil:
		lines = append(lines, errorStyle.Render(fmt.Sprintf("Could not load contact: %v", f.loadErr)))
		return strings.Join(lines, "\n")
	}

	for i, label := range fieldLabels {
		l := labelStyle.Render(label)
		if i == f.focus {
			l = selectedStyle.Render(label)
		}
		lines = append(lines, l+" "+f.inputs[i].View())
	}

	lines = append(lines, "")
	switch {
	case f.saving:
		lines = append(lines, "Saving...")
	case !f.CanSave():
		lines = append(lines, labelStyle.Render("A name is required to save."))
	}

	return strings.Join(lines, "\n")
}
