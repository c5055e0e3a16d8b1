package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/pdxmph/addressbook/internal/db"
)

func summaries(names ...string) []db.Summary {
	out := make([]db.Summary, len(names))
	for i, name := range names {
		out[i] = db.Summary{ID: int64(i + 1), Name: name}
	}
	return out
}

func TestListState_ApplyContacts(t *testing.T) {
	tests := []struct {
		name       string
		cursor     int
		follow     int64
		contacts   []db.Summary
		wantCursor int
	}{
		{name: "keeps cursor", cursor: 1, contacts: summaries("a", "b", "c"), wantCursor: 1},
		{name: "clamps past end", cursor: 5, contacts: summaries("a", "b"), wantCursor: 1},
		{name: "empty list", cursor: 3, contacts: nil, wantCursor: 0},
		{name: "follows saved id", cursor: 0, follow: 3, contacts: summaries("a", "b", "c"), wantCursor: 2},
		{name: "missing follow clamps", cursor: 4, follow: 9, contacts: summaries("a", "b"), wantCursor: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ls := newListState()
			ls.cursor = tt.cursor
			ls.follow = tt.follow

			ls = ls.applyContacts(tt.contacts, nil)

			if ls.loading {
				t.Error("list should no longer be loading")
			}
			if ls.cursor != tt.wantCursor {
				t.Errorf("cursor = %d, want %d", ls.cursor, tt.wantCursor)
			}
			if ls.follow != 0 {
				t.Error("follow should be consumed by the reload")
			}
		})
	}
}

func TestListState_LoadError(t *testing.T) {
	ls := newListState()
	ls, _ = ls.Update(ContactsLoadedMsg{Err: errors.New("database is locked")})

	if ls.err == nil {
		t.Fatal("load error should be kept")
	}
	if !strings.Contains(ls.View(40, 10), "database is locked") {
		t.Error("view should show the load error")
	}
	if ls.SelectedID() != 0 {
		t.Error("nothing should be selected after a failed load")
	}
}

func TestListState_Filter(t *testing.T) {
	ls := newListState()
	ls = ls.applyContacts(summaries("Ann", "Bob", "Joanne"), nil)

	ls, _ = ls.Update(keyPress("/"))
	if !ls.filtering {
		t.Fatal("/ should start filtering")
	}
	ls, _ = ls.Update(keyPress("ANN"))

	got := ls.visible()
	if len(got) != 2 || got[0].Name != "Ann" || got[1].Name != "Joanne" {
		t.Errorf("visible = %v, want Ann and Joanne", got)
	}

	ls, _ = ls.Update(keyPress("enter"))
	if ls.filtering {
		t.Error("enter should accept the filter")
	}
	if !strings.Contains(ls.View(40, 10), "[filter: ANN]") {
		t.Error("header should show the active filter")
	}

	ls, _ = ls.Update(keyPress("esc"))
	if len(ls.visible()) != 3 {
		t.Error("esc should clear the filter")
	}
}

func TestListState_Keys(t *testing.T) {
	ls := newListState()
	ls = ls.applyContacts(summaries("Ann", "Bob"), nil)

	ls, _ = ls.Update(keyPress("down"))
	if got := ls.SelectedID(); got != 2 {
		t.Fatalf("selected = %d, want 2", got)
	}

	_, cmd := ls.Update(keyPress("enter"))
	msgs := run(cmd)
	if len(msgs) != 1 {
		t.Fatalf("enter produced %d messages, want 1", len(msgs))
	}
	if sel, ok := msgs[0].(ContactSelectedMsg); !ok || sel.ID != 2 {
		t.Errorf("enter produced %#v, want ContactSelectedMsg{ID: 2}", msgs[0])
	}

	_, cmd = ls.Update(keyPress("a"))
	if msgs := run(cmd); len(msgs) != 1 {
		t.Fatalf("a produced %d messages, want 1", len(msgs))
	} else if _, ok := msgs[0].(AddContactMsg); !ok {
		t.Errorf("a produced %#v, want AddContactMsg", msgs[0])
	}
}

func TestListState_EmptyView(t *testing.T) {
	ls := newListState()
	if !strings.Contains(ls.View(40, 10), "Loading contacts...") {
		t.Error("new list should show a loading line")
	}

	ls = ls.applyContacts(nil, nil)
	if !strings.Contains(ls.View(40, 10), "No contacts yet") {
		t.Error("empty list should invite adding a contact")
	}
}
