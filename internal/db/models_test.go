package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactURIRoundTrip(t *testing.T) {
	uri := ContactURI(12)
	assert.Equal(t, "addressbook://contacts/12", uri)

	id, err := ParseContactRef(uri)
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)
}

func TestParseContactRef(t *testing.T) {
	tests := []struct {
		ref     string
		want    int64
		wantErr bool
	}{
		{ref: "7", want: 7},
		{ref: " 7 ", want: 7},
		{ref: "addressbook://contacts/31", want: 31},
		{ref: "0", wantErr: true},
		{ref: "-3", wantErr: true},
		{ref: "content://contacts/3", wantErr: true},
		{ref: "addressbook://groups/3", wantErr: true},
		{ref: "addressbook://contacts/abc", wantErr: true},
		{ref: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := ParseContactRef(tt.ref)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContactAddress(t *testing.T) {
	tests := []struct {
		name string
		c    Contact
		want string
	}{
		{name: "empty", c: Contact{}, want: ""},
		{name: "city only", c: Contact{City: NewNullString("Salem")}, want: "Salem"},
		{name: "state and zip", c: Contact{State: NewNullString("OR"), Zip: NewNullString("97301")}, want: "OR 97301"},
		{
			name: "street and city",
			c:    Contact{Street: NewNullString("1 Main St"), City: NewNullString("Salem")},
			want: "1 Main St, Salem",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.Address())
		})
	}
}

func TestNewNullString(t *testing.T) {
	assert.False(t, NewNullString("").Valid)
	assert.Equal(t, "x", NewNullString("x").String)
	assert.True(t, NewNullString("x").Valid)
}
