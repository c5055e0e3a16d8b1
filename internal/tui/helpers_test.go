package tui

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdxmph/addressbook/internal/db"
)

// memStore is an in-memory ContactStore for exercising the screens
type memStore struct {
	mu       sync.Mutex
	nextID   int64
	contacts map[int64]db.Contact

	addErr    error
	updateErr error
	deleteErr error
}

func newMemStore(names ...string) *memStore {
	s := &memStore{contacts: make(map[int64]db.Contact)}
	for _, name := range names {
		s.AddContact(context.Background(), db.Contact{Name: name})
	}
	return s
}

func (s *memStore) ListContacts(ctx context.Context) ([]db.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]db.Summary, 0, len(s.contacts))
	for _, c := range s.contacts {
		out = append(out, c.Summary())
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *memStore) GetContact(ctx context.Context, id int64) (*db.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contacts[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &c, nil
}

func (s *memStore) AddContact(ctx context.Context, contact db.Contact) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.addErr != nil {
		return 0, s.addErr
	}
	s.nextID++
	contact.ID = s.nextID
	s.contacts[contact.ID] = contact
	return contact.ID, nil
}

func (s *memStore) UpdateContact(ctx context.Context, contact db.Contact) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.updateErr != nil {
		return false, s.updateErr
	}
	if _, ok := s.contacts[contact.ID]; !ok {
		return false, nil
	}
	s.contacts[contact.ID] = contact
	return true, nil
}

func (s *memStore) DeleteContact(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deleteErr != nil {
		return false, s.deleteErr
	}
	if _, ok := s.contacts[id]; !ok {
		return false, nil
	}
	delete(s.contacts, id)
	return true, nil
}

// remove drops a record behind the UI's back
func (s *memStore) remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contacts, id)
}

func (s *memStore) get(id int64) (db.Contact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contacts[id]
	return c, ok
}

// keyPress builds the KeyMsg bubbletea would deliver for s
func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// cmdTimeout bounds how long run waits on a single command. Store calls
// finish well inside it; cursor blink timers do not and are dropped.
const cmdTimeout = 100 * time.Millisecond

// run executes cmd and flattens batches into their messages
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(cmdTimeout):
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// feedsBack reports whether msg is one of the package's own messages.
// Cursor blinks and notice expiry are left out so a test settles quickly
// and can still observe the notice.
func feedsBack(msg tea.Msg) bool {
	switch msg.(type) {
	case ContactsLoadedMsg, ContactSelectedMsg, AddContactMsg, EditContactMsg,
		CancelEditMsg, ContactSavedMsg, ContactDeletedMsg,
		contactLoadedMsg, saveFailedMsg, deleteFailedMsg, backMsg:
		return true
	}
	return false
}

// settle delivers msgs and every message their commands produce until the
// model is idle. It reports whether a quit was requested.
func settle(m Model, msgs ...tea.Msg) (Model, bool) {
	quit := false
	queue := append([]tea.Msg(nil), msgs...)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		updated, cmd := m.Update(next)
		m = updated.(Model)
		for _, out := range run(cmd) {
			if _, ok := out.(tea.QuitMsg); ok {
				quit = true
			}
			if feedsBack(out) {
				queue = append(queue, out)
			}
		}
	}
	return m, quit
}

// press sends each key through settle
func press(m Model, keys ...string) Model {
	for _, k := range keys {
		m, _ = settle(m, keyPress(k))
	}
	return m
}

// newTestModel returns a sized model with its first list query applied
func newTestModel(store ContactStore) Model {
	m := New(store, WithNoticeDuration(time.Millisecond))
	m, _ = settle(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = settle(m, run(m.Init())...)
	return m
}
