package tui

import (
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdxmph/addressbook/internal/db"
)

// NoticeDuration is how long a notice stays on screen
const NoticeDuration = 3 * time.Second

type screen int

const (
	screenList screen = iota
	screenDetail
	screenEdit
)

// Model represents the main application state
type Model struct {
	store ContactStore
	log   *slog.Logger
	help  help.Model

	list   listState
	detail detailState
	form   editForm

	screen     screen
	prevScreen screen // where the form returns on cancel

	width  int
	height int

	notice         string
	noticeSeq      int
	noticeDuration time.Duration

	// nextToken tags each record load so panes can drop stale results
	nextToken int
}

// Option configures a Model
type Option func(*Model)

// WithLogger sets the logger used for store failures
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		m.log = logger
	}
}

// WithNoticeDuration overrides NoticeDuration
func WithNoticeDuration(d time.Duration) Option {
	return func(m *Model) {
		m.noticeDuration = d
	}
}

// New creates a new application model
func New(store ContactStore, opts ...Option) Model {
	m := Model{
		store:          store,
		log:            slog.New(slog.DiscardHandler),
		help:           help.New(),
		list:           newListState(),
		noticeDuration: NoticeDuration,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the first list query
func (m Model) Init() tea.Cmd {
	return loadContacts(m.store)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.form = m.form.setWidth(m.rightWidth())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ContactsLoadedMsg:
		if msg.Err != nil {
			m.log.Error("loading contacts", "error", msg.Err)
		}
		m.list, cmd = m.list.Update(msg)
		return m, cmd

	case ContactSelectedMsg:
		return m.openDetail(msg.ID)

	case AddContactMsg:
		return m.openForm(0)

	case EditContactMsg:
		return m.openForm(msg.ID)

	case CancelEditMsg:
		m.screen = m.prevScreen
		return m, nil

	case contactLoadedMsg:
		var notice tea.Cmd
		if errors.Is(msg.err, db.ErrNotFound) &&
			(msg.token == m.detail.token || msg.token == m.form.token) {
			notice = m.setNotice("Contact not found")
		}
		m.detail, _ = m.detail.Update(msg, m.store)
		m.form, cmd = m.form.Update(msg, m.store)
		return m, tea.Batch(cmd, notice)

	case ContactSavedMsg:
		text := "Contact updated"
		if msg.Created {
			text = "Contact added"
		}
		m.log.Info(text, "id", msg.ID)
		m.list.follow = msg.ID
		notice := m.setNotice(text)
		m, cmd = m.openDetail(msg.ID)
		return m, tea.Batch(cmd, loadContacts(m.store), notice)

	case saveFailedMsg:
		text := "Unable to update contact"
		if msg.created {
			text = "Unable to add contact"
		}
		m.log.Error(text, "error", msg.err)
		m.form, _ = m.form.Update(msg, m.store)
		notice := m.setNotice(text)
		return m, notice

	case ContactDeletedMsg:
		m.log.Info("Contact deleted", "id", msg.ID)
		m.screen = screenList
		m.detail = detailState{}
		notice := m.setNotice("Contact deleted")
		return m, tea.Batch(loadContacts(m.store), notice)

	case deleteFailedMsg:
		m.log.Error("Unable to delete contact", "error", msg.err)
		m.detail, _ = m.detail.Update(msg, m.store)
		notice := m.setNotice("Unable to delete contact")
		return m, notice

	case backMsg:
		m.screen = screenList
		return m, nil

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	}

	// Cursor blinks and other input plumbing go to whatever has focus.
	switch m.screen {
	case screenEdit:
		m.form, cmd = m.form.Update(msg, m.store)
	case screenList:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	switch m.screen {
	case screenList:
		if !m.list.filtering {
			switch {
			case key.Matches(msg, listKeys.Quit):
				return m, tea.Quit
			case key.Matches(msg, listKeys.Refresh):
				return m, loadContacts(m.store)
			case msg.String() == "?":
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			}
		}
		m.list, cmd = m.list.Update(msg)

	case screenDetail:
		if !m.detail.confirmDelete && key.Matches(msg, detailKeys.Quit) {
			return m, tea.Quit
		}
		m.detail, cmd = m.detail.Update(msg, m.store)

	case screenEdit:
		m.form, cmd = m.form.Update(msg, m.store)
	}
	return m, cmd
}

// openDetail switches the right pane to a fresh load of id
func (m Model) openDetail(id int64) (Model, tea.Cmd) {
	m.nextToken++
	m.detail = newDetailState(id, m.nextToken)
	m.screen = screenDetail
	return m, loadContact(m.store, id, m.nextToken)
}

// openForm shows the edit form. A zero id creates a new contact.
func (m Model) openForm(id int64) (Model, tea.Cmd) {
	if m.screen != screenEdit {
		m.prevScreen = m.screen
	}
	m.nextToken++
	m.form = newEditForm(id, m.nextToken, m.rightWidth())
	m.screen = screenEdit
	if id == 0 {
		return m, textinput.Blink
	}
	return m, loadContact(m.store, id, m.nextToken)
}

// setNotice shows text until a newer notice replaces it or it expires
func (m *Model) setNotice(text string) tea.Cmd {
	m.notice = text
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(m.noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// Notice returns the transient notice currently on screen
func (m Model) Notice() string {
	return m.notice
}

func (m Model) listWidth() int {
	return m.width / 3
}

// rightWidth is the inner width of the detail/edit pane
func (m Model) rightWidth() int {
	w := m.width - m.listWidth() - 4
	if w < 20 {
		w = 20
	}
	return w
}

// keyMap picks the bindings for the help bar
func (m Model) keyMap() help.KeyMap {
	switch m.screen {
	case screenDetail:
		if m.detail.confirmDelete {
			return confirmKeys
		}
		return detailKeys
	case screenEdit:
		k := formKeys
		k.Save.SetEnabled(m.form.CanSave())
		return k
	}
	if m.list.filtering {
		return filterKeys
	}
	return listKeys
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Borders take two rows, the notice and help lines one each.
	paneHeight := m.height - 4
	if m.help.ShowAll {
		paneHeight -= 2
	}
	if paneHeight < 3 {
		paneHeight = 3
	}
	listWidth := m.listWidth()
	rightWidth := m.rightWidth()

	var right string
	switch m.screen {
	case screenDetail:
		right = m.detail.View(rightWidth, paneHeight)
	case screenEdit:
		right = m.form.View(rightWidth, paneHeight)
	default:
		right = labelStyle.Render("Select a contact and press enter.")
	}

	listBorder, rightBorder := unfocusedBorder, focusedBorder
	if m.screen == screenList {
		listBorder, rightBorder = focusedBorder, unfocusedBorder
	}

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		listBorder.Width(listWidth).Height(paneHeight).Render(m.list.View(listWidth, paneHeight)),
		rightBorder.Width(rightWidth).Height(paneHeight).Render(right),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		content,
		noticeStyle.Render(m.notice),
		m.help.View(m.keyMap()),
	)
}
