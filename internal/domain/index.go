package domain

import (
	"github.com/google/uuid"
)

// PropertyID identifies a property inside the engine. IDs are derived from the
// property title, so the same title always maps to the same ID.
type PropertyID uuid.UUID

// AllProperties is the scope that matches every property
var AllProperties = PropertyID(uuid.Nil)

// propertyNamespace seeds the name-based UUIDs issued for property titles
var propertyNamespace = uuid.MustParse("4f1c2a6e-8d3b-5e70-9a41-2c6b7d8e9f01")

// NewPropertyID returns the ID of the property with the given title
func NewPropertyID(title string) PropertyID {
	return PropertyID(uuid.NewSHA1(propertyNamespace, []byte(title)))
}

func (id PropertyID) String() string { return uuid.UUID(id).String() }

// IsAll reports whether id is the AllProperties scope
func (id PropertyID) IsAll() bool { return id == AllProperties }

// MarshalText renders the ID as a canonical UUID string
func (id PropertyID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

// UnmarshalText parses a canonical UUID string
func (id *PropertyID) UnmarshalText(data []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(data); err != nil {
		return err
	}
	*id = PropertyID(u)
	return nil
}

// PropertyIndex is the only place where property titles are matched. Records
// join their property by exact title equality; the index turns each distinct
// title into a PropertyID once and remembers registration order.
type PropertyIndex struct {
	byTitle map[string]PropertyID
	titles  map[PropertyID]string
	order   []PropertyID
}

// NewPropertyIndex creates an empty index
func NewPropertyIndex() *PropertyIndex {
	return &PropertyIndex{
		byTitle: make(map[string]PropertyID),
		titles:  make(map[PropertyID]string),
	}
}

// Register returns the ID for title, issuing one on first sight
func (ix *PropertyIndex) Register(title string) PropertyID {
	if id, ok := ix.byTitle[title]; ok {
		return id
	}
	id := NewPropertyID(title)
	ix.byTitle[title] = id
	ix.titles[id] = title
	ix.order = append(ix.order, id)
	return id
}

// Lookup resolves a title without registering it
func (ix *PropertyIndex) Lookup(title string) (PropertyID, bool) {
	id, ok := ix.byTitle[title]
	return id, ok
}

// Title returns the title registered for id
func (ix *PropertyIndex) Title(id PropertyID) string {
	return ix.titles[id]
}

// IDs returns every registered ID in registration order
func (ix *PropertyIndex) IDs() []PropertyID {
	return append([]PropertyID(nil), ix.order...)
}

// Len returns the number of registered titles
func (ix *PropertyIndex) Len() int { return len(ix.order) }
