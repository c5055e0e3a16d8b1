package tui

import (
	"strings"
	"testing"

	"github.com/pdxmph/addressbook/internal/db"
)

func TestEditForm_CanSave(t *testing.T) {
	tests := []struct {
		name string
		form func() editForm
		want bool
	}{
		{
			name: "blank name",
			form: func() editForm { return newEditForm(0, 1, 60) },
		},
		{
			name: "whitespace name",
			form: func() editForm {
				f := newEditForm(0, 1, 60)
				f.inputs[EditFieldName].SetValue("   ")
				return f
			},
		},
		{
			name: "named",
			form: func() editForm {
				f := newEditForm(0, 1, 60)
				f.inputs[EditFieldName].SetValue("Ann")
				return f
			},
			want: true,
		},
		{
			name: "still loading",
			form: func() editForm {
				f := newEditForm(4, 1, 60)
				f.inputs[EditFieldName].SetValue("Ann")
				return f
			},
		},
		{
			name: "save in flight",
			form: func() editForm {
				f := newEditForm(0, 1, 60)
				f.inputs[EditFieldName].SetValue("Ann")
				f.saving = true
				return f
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.form().CanSave(); got != tt.want {
				t.Errorf("CanSave() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEditForm_IgnoresStaleLoad(t *testing.T) {
	f := newEditForm(5, 2, 60)

	f, _ = f.Update(contactLoadedMsg{token: 1, contact: &db.Contact{ID: 5, Name: "Old"}}, nil)
	if !f.loading {
		t.Fatal("a load for another request should be ignored")
	}

	f, _ = f.Update(contactLoadedMsg{token: 2, contact: &db.Contact{
		ID:    5,
		Name:  "New",
		Email: db.NewNullString("new@example.com"),
	}}, nil)
	if f.loading {
		t.Fatal("matching load should finish loading")
	}
	if got := f.inputs[EditFieldName].Value(); got != "New" {
		t.Errorf("name = %q, want New", got)
	}
	if got := f.inputs[EditFieldEmail].Value(); got != "new@example.com" {
		t.Errorf("email = %q, want new@example.com", got)
	}
}

func TestEditForm_InputsDisabledWhileLoading(t *testing.T) {
	f := newEditForm(5, 1, 60)

	f, cmd := f.Update(keyPress("x"), nil)
	if cmd != nil {
		t.Error("typing while loading should do nothing")
	}
	if got := f.inputs[EditFieldName].Value(); got != "" {
		t.Errorf("name = %q, want empty while loading", got)
	}
	if got := f.View(60, 20); !strings.Contains(got, "Loading contact...") {
		t.Errorf("view = %q, want loading line", got)
	}
}

func TestEditForm_Contact(t *testing.T) {
	f := newEditForm(0, 1, 60)
	f.inputs[EditFieldName].SetValue("  Ann  ")
	f.inputs[EditFieldCity].SetValue("Salem")

	c := f.contact()
	if c.ID != 0 || c.Name != "Ann" {
		t.Errorf("contact = %+v, want new Ann", c)
	}
	if !c.City.Valid || c.City.String != "Salem" {
		t.Errorf("city = %+v, want Salem", c.City)
	}
	if c.Phone.Valid {
		t.Error("empty phone should be NULL")
	}
}

func TestEditForm_KeepsLongLoadedValues(t *testing.T) {
	street := strings.Repeat("Long Street Name ", 15)
	zip := "12345-6789 EXTRA LONG ZIP"
	f := newEditForm(7, 1, 80)

	f, _ = f.Update(contactLoadedMsg{token: 1, contact: &db.Contact{
		ID:     7,
		Name:   "Ann",
		Street: db.NewNullString(strings.TrimSpace(street)),
		Zip:    db.NewNullString(zip),
	}}, nil)

	c := f.contact()
	if c.Street.String != strings.TrimSpace(street) {
		t.Errorf("street has %d chars, want %d", len(c.Street.String), len(strings.TrimSpace(street)))
	}
	if c.Zip.String != zip {
		t.Errorf("zip = %q, want %q", c.Zip.String, zip)
	}
}

func TestEditForm_FocusWraps(t *testing.T) {
	f := newEditForm(0, 1, 60)

	f, _ = f.Update(keyPress("shift+tab"), nil)
	if f.focus != EditFieldZip {
		t.Errorf("focus = %d, want last field", f.focus)
	}
	f, _ = f.Update(keyPress("tab"), nil)
	if f.focus != EditFieldName {
		t.Errorf("focus = %d, want first field", f.focus)
	}
}
