package datastores

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type (
	ContactID int64
	Contact   struct {
		ID        ContactID
		Firstname string
		Lastname  string
		Addresses []string
	}
)

// ContactUpdate holds the fields to change on a contact. Nil fields are left untouched.
type ContactUpdate struct {
	Firstname *string
	Lastname  *string
	Addresses []string
}

type ContactsStore interface {
	Create(context.Context, *Contact) (ContactID, error)
	List(context.Context) ([]*Contact, error)
	Get(context.Context, ContactID) (*Contact, error)
	Update(context.Context, ContactID, ContactUpdate) (*Contact, error)
	AddAddress(context.Context, ContactID, string) (*Contact, error)
	Delete(context.Context, ContactID) (bool, error)
}

var ErrObjectNotFound = errors.New("store: object not found")

// NewContact returns a contact without id nor addresses.
func NewContact(firstname, lastname string) *Contact {
	return &Contact{Firstname: firstname, Lastname: lastname, Addresses: []string{}}
}

// AddAddress appends address to the contact addresses.
func (c *Contact) AddAddress(address string) {
	c.Addresses = append(c.Addresses, address)
}

func (c *Contact) Fullname() string {
	return strings.TrimSpace(c.Firstname + " " + c.Lastname)
}

func (c *Contact) clone() *Contact {
	cc := *c
	cc.Addresses = append(make([]string, 0, len(c.Addresses)), c.Addresses...)
	return &cc
}

func (id ContactID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseContactID parses a string into a contact id.
func ParseContactID(s string) (ContactID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse contact id: %w", err)
	}
	if id <= 0 {
		return 0, errors.New("cannot parse contact id: contact ids must be positive")
	}
	return ContactID(id), nil
}
