package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	ds "github.com/oaiiae/address-book/datastores"
)

type Contacts struct {
	Store        ds.ContactsStore
	ErrorHandler func(context.Context, error)
}

type ContactModel struct {
	ID ds.ContactID `json:"id" readOnly:"true" example:"12"`

	Firstname string   `json:"firstname" example:"john"`
	Lastname  string   `json:"lastname"  example:"smith"`
	Addresses []string `json:"addresses" required:"false"`
}

func contactModel(c *ds.Contact) ContactModel {
	addresses := c.Addresses
	if addresses == nil {
		addresses = []string{}
	}
	return ContactModel{
		ID:        c.ID,
		Firstname: c.Firstname,
		Lastname:  c.Lastname,
		Addresses: addresses,
	}
}

func (h *Contacts) RegisterList(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/",
		withErrorHook(h.list, h.ErrorHandler),
		opErrors(http.StatusInternalServerError),
	)
}

type ContactSummary struct {
	ID       ds.ContactID `json:"id"       example:"12"`
	Fullname string       `json:"fullname" example:"john smith"`
}

type ContactsListOutput struct {
	Body []ContactSummary
}

func (h *Contacts) list(ctx context.Context, _ *struct{}) (*ContactsListOutput, error) {
	contacts, err := h.Store.List(ctx)
	if err != nil {
		return nil, err
	}

	body := make([]ContactSummary, 0, len(contacts))
	for _, contact := range contacts {
		body = append(body, ContactSummary{ID: contact.ID, Fullname: contact.Fullname()})
	}

	return &ContactsListOutput{Body: body}, nil
}

func (h *Contacts) RegisterCreate(api huma.API) { // called by [huma.AutoRegister]
	huma.Post(api, "/",
		withErrorHook(h.create, h.ErrorHandler),
		opStatus(http.StatusCreated),
		opErrors(http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

type ContactsCreateOutput struct {
	Location string `header:"Location"`
	Body     ContactModel
}

func (h *Contacts) create(ctx context.Context, input *struct {
	Body ContactModel
}) (*ContactsCreateOutput, error) {
	contact := ds.NewContact(input.Body.Firstname, input.Body.Lastname)
	for _, address := range input.Body.Addresses {
		contact.AddAddress(address)
	}

	_, err := h.Store.Create(ctx, contact)
	if err != nil {
		return nil, err
	}

	return &ContactsCreateOutput{
		Location: contact.ID.String(),
		Body:     contactModel(contact),
	}, nil
}

func (h *Contacts) RegisterGet(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/{id}",
		withErrorHook(h.get, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

type ContactsGetOutput struct {
	Body ContactModel
}

func (h *Contacts) get(ctx context.Context, input *struct {
	ID ds.ContactID `path:"id" minimum:"1" doc:"ID of the contact to get"`
}) (*ContactsGetOutput, error) {
	contact, err := h.Store.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ContactsGetOutput{Body: contactModel(contact)}, nil
}

func (h *Contacts) RegisterUpdate(api huma.API) { // called by [huma.AutoRegister]
	huma.Patch(api, "/{id}",
		withErrorHook(h.update, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

type ContactUpdateModel struct {
	Firstname *string  `json:"firstname,omitempty" example:"john"`
	Lastname  *string  `json:"lastname,omitempty"  example:"smith"`
	Addresses []string `json:"addresses,omitempty" doc:"replaces all the addresses when set"`
}

func (h *Contacts) update(ctx context.Context, input *struct {
	ID   ds.ContactID `path:"id" minimum:"1" doc:"ID of the contact to update"`
	Body ContactUpdateModel
}) (*ContactsGetOutput, error) {
	contact, err := h.Store.Update(ctx, input.ID, ds.ContactUpdate{
		Firstname: input.Body.Firstname,
		Lastname:  input.Body.Lastname,
		Addresses: input.Body.Addresses,
	})
	if err != nil {
		return nil, err
	}
	return &ContactsGetOutput{Body: contactModel(contact)}, nil
}

func (h *Contacts) RegisterAddAddress(api huma.API) { // called by [huma.AutoRegister]
	huma.Post(api, "/{id}/addresses",
		withErrorHook(h.addAddress, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

func (h *Contacts) addAddress(ctx context.Context, input *struct {
	ID   ds.ContactID `path:"id" minimum:"1" doc:"ID of the contact to add an address to"`
	Body struct {
		Address string `json:"address" example:"221B Baker Street"`
	}
}) (*ContactsGetOutput, error) {
	contact, err := h.Store.AddAddress(ctx, input.ID, input.Body.Address)
	if err != nil {
		return nil, err
	}
	return &ContactsGetOutput{Body: contactModel(contact)}, nil
}

func (h *Contacts) RegisterDel(api huma.API) { // called by [huma.AutoRegister]
	huma.Delete(api, "/{id}",
		withErrorHook(h.del, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

func (h *Contacts) del(ctx context.Context, input *struct {
	ID ds.ContactID `path:"id" minimum:"1" doc:"ID of the contact to delete"`
}) (*struct{}, error) {
	deleted, err := h.Store.Delete(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, ds.ErrObjectNotFound
	}
	return nil, nil
}
