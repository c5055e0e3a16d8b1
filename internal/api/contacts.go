package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/pdxmph/addressbook/internal/db"
)

type handler[I, O any] = func(context.Context, *I) (*O, error)

func handlerWithErrorHandler[I, O any](handler handler[I, O], do func(context.Context, error)) handler[I, O] {
	if do == nil {
		return handler
	}

	return func(ctx context.Context, i *I) (*O, error) {
		o, err := handler(ctx, i)
		if err != nil {
			do(ctx, err)
		}
		return o, err
	}
}

func opErrors(codes ...int) func(*huma.Operation) {
	return func(o *huma.Operation) { o.Errors = codes }
}

// Contacts serves CRUD operations on the contact store
type Contacts struct {
	Store        Store
	ErrorHandler func(context.Context, error)
}

// SummaryModel is one row of the contact list
type SummaryModel struct {
	ID   int64  `json:"id"   example:"12"`
	Name string `json:"name" example:"Ann Example"`
}

// ContactBody holds the writable fields of a contact
type ContactBody struct {
	Name   string `json:"name"             minLength:"1" maxLength:"200" example:"Ann Example"`
	Phone  string `json:"phone,omitempty"  example:"503-555-0100"`
	Email  string `json:"email,omitempty"  example:"ann@example.com"`
	Street string `json:"street,omitempty" example:"1 Main St"`
	City   string `json:"city,omitempty"   example:"Salem"`
	State  string `json:"state,omitempty"  example:"OR"`
	Zip    string `json:"zip,omitempty"    example:"97301"`
}

// ContactModel is a stored contact
type ContactModel struct {
	ID  int64  `json:"id"  example:"12" readOnly:"true"`
	URI string `json:"uri" example:"addressbook://contacts/12" readOnly:"true"`
	ContactBody
}

func toModel(c *db.Contact) ContactModel {
	return ContactModel{
		ID:  c.ID,
		URI: db.ContactURI(c.ID),
		ContactBody: ContactBody{
			Name:   c.Name,
			Phone:  c.Phone.String,
			Email:  c.Email.String,
			Street: c.Street.String,
			City:   c.City.String,
			State:  c.State.String,
			Zip:    c.Zip.String,
		},
	}
}

// contact validates body and converts it for the store
func (b ContactBody) contact(id int64) (db.Contact, error) {
	name := strings.TrimSpace(b.Name)
	if name == "" {
		return db.Contact{}, huma.Error422UnprocessableEntity("name cannot be blank")
	}
	return db.Contact{
		ID:     id,
		Name:   name,
		Phone:  db.NewNullString(strings.TrimSpace(b.Phone)),
		Email:  db.NewNullString(strings.TrimSpace(b.Email)),
		Street: db.NewNullString(strings.TrimSpace(b.Street)),
		City:   db.NewNullString(strings.TrimSpace(b.City)),
		State:  db.NewNullString(strings.TrimSpace(b.State)),
		Zip:    db.NewNullString(strings.TrimSpace(b.Zip)),
	}, nil
}

func contactPath(id int64) string {
	return "/api/contacts/" + strconv.FormatInt(id, 10)
}

func (h *Contacts) RegisterList(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/contacts",
		handlerWithErrorHandler(h.list, h.ErrorHandler),
		opErrors(http.StatusInternalServerError),
	)
}

type ContactsListOutput struct {
	Body []SummaryModel
}

func (h *Contacts) list(ctx context.Context, _ *struct{}) (*ContactsListOutput, error) {
	contacts, err := h.Store.ListContacts(ctx)
	if err != nil {
		return nil, err
	}

	body := make([]SummaryModel, 0, len(contacts))
	for _, c := range contacts {
		body = append(body, SummaryModel{ID: c.ID, Name: c.Name})
	}

	return &ContactsListOutput{Body: body}, nil
}

func (h *Contacts) RegisterGet(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/contacts/{id}",
		handlerWithErrorHandler(h.get, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusInternalServerError),
	)
}

type ContactsGetOutput struct {
	Body ContactModel
}

func (h *Contacts) get(ctx context.Context, input *struct {
	ID int64 `path:"id" minimum:"1" example:"12" doc:"ID of the contact to get"`
}) (*ContactsGetOutput, error) {
	contact, err := h.Store.GetContact(ctx, input.ID)
	switch {
	case err == nil:
		return &ContactsGetOutput{Body: toModel(contact)}, nil

	case errors.Is(err, db.ErrNotFound):
		return nil, huma.Error404NotFound("id not found", err)

	default:
		return nil, err
	}
}

func (h *Contacts) RegisterPost(api huma.API) { // called by [huma.AutoRegister]
	huma.Register(api, huma.Operation{
		OperationID:   "post-contacts",
		Method:        http.MethodPost,
		Path:          "/contacts",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusUnprocessableEntity, http.StatusInternalServerError},
	}, handlerWithErrorHandler(h.post, h.ErrorHandler))
}

type ContactsPostOutput struct {
	Location string `header:"Location"`
	Body     ContactModel
}

func (h *Contacts) post(ctx context.Context, input *struct {
	Body ContactBody
}) (*ContactsPostOutput, error) {
	contact, err := input.Body.contact(0)
	if err != nil {
		return nil, err
	}

	id, err := h.Store.AddContact(ctx, contact)
	if err != nil {
		return nil, err
	}
	contact.ID = id

	return &ContactsPostOutput{
		Location: contactPath(id),
		Body:     toModel(&contact),
	}, nil
}

func (h *Contacts) RegisterPut(api huma.API) { // called by [huma.AutoRegister]
	huma.Put(api, "/contacts/{id}",
		handlerWithErrorHandler(h.put, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

func (h *Contacts) put(ctx context.Context, input *struct {
	ID   int64 `path:"id" minimum:"1" example:"12" doc:"ID of the contact to put"`
	Body ContactBody
}) (*struct{}, error) {
	contact, err := input.Body.contact(input.ID)
	if err != nil {
		return nil, err
	}

	ok, err := h.Store.UpdateContact(ctx, contact)
	switch {
	case err != nil:
		return nil, err
	case !ok:
		return nil, huma.Error404NotFound("id not found")
	}
	return nil, nil
}

func (h *Contacts) RegisterDel(api huma.API) { // called by [huma.AutoRegister]
	huma.Delete(api, "/contacts/{id}",
		handlerWithErrorHandler(h.del, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusInternalServerError),
	)
}

func (h *Contacts) del(ctx context.Context, input *struct {
	ID int64 `path:"id" minimum:"1" example:"12" doc:"ID of the contact to delete"`
}) (*struct{}, error) {
	ok, err := h.Store.DeleteContact(ctx, input.ID)
	switch {
	case err != nil:
		return nil, err
	case !ok:
		return nil, huma.Error404NotFound("id not found")
	}
	return nil, nil
}
