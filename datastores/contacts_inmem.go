package datastores

import (
	"context"
	"slices"
	"sync"
)

// ContactsInmem implements [ContactsStore].
type ContactsInmem struct {
	mu        sync.Mutex
	currentID ContactID
	contacts  []*Contact
}

var _ ContactsStore = (*ContactsInmem)(nil)

// NewContactsInmem returns a store holding cs, in order, with ids assigned from 1.
func NewContactsInmem(cs ...*Contact) *ContactsInmem {
	s := &ContactsInmem{contacts: make([]*Contact, 0, len(cs))}
	for _, c := range cs {
		s.add(c)
	}
	return s
}

// assignID must be called with s.mu held.
func (s *ContactsInmem) assignID() ContactID {
	s.currentID++
	return s.currentID
}

func (s *ContactsInmem) add(c *Contact) ContactID {
	c.ID = s.assignID()
	s.contacts = append(s.contacts, c.clone())
	return c.ID
}

// indexOf must be called with s.mu held.
func (s *ContactsInmem) indexOf(id ContactID) int {
	return slices.IndexFunc(s.contacts, func(c *Contact) bool { return c.ID == id })
}

// Create assigns the next id to c, overwriting any id it already had, and stores a copy of it.
func (s *ContactsInmem) Create(_ context.Context, c *Contact) (ContactID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(c), nil
}

func (s *ContactsInmem) List(_ context.Context) ([]*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contacts := make([]*Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		contacts = append(contacts, c.clone())
	}
	return contacts, nil
}

func (s *ContactsInmem) Get(_ context.Context, id ContactID) (*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index := s.indexOf(id)
	if index < 0 {
		return nil, ErrObjectNotFound
	}
	return s.contacts[index].clone(), nil
}

func (s *ContactsInmem) Update(_ context.Context, id ContactID, u ContactUpdate) (*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index := s.indexOf(id)
	if index < 0 {
		return nil, ErrObjectNotFound
	}
	c := s.contacts[index]
	if u.Firstname != nil {
		c.Firstname = *u.Firstname
	}
	if u.Lastname != nil {
		c.Lastname = *u.Lastname
	}
	if u.Addresses != nil {
		c.Addresses = slices.Clone(u.Addresses)
	}
	return c.clone(), nil
}

func (s *ContactsInmem) AddAddress(_ context.Context, id ContactID, address string) (*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index := s.indexOf(id)
	if index < 0 {
		return nil, ErrObjectNotFound
	}
	s.contacts[index].AddAddress(address)
	return s.contacts[index].clone(), nil
}

// Delete removes the contact and reports whether it existed. Ids are never reused.
func (s *ContactsInmem) Delete(_ context.Context, id ContactID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index := s.indexOf(id)
	if index < 0 {
		return false, nil
	}
	s.contacts = slices.Delete(s.contacts, index, index+1)
	return true, nil
}

func (s *ContactsInmem) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.contacts)
}

// CurrentID returns the last assigned id, 0 if none.
func (s *ContactsInmem) CurrentID() ContactID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}
