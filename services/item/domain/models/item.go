package models

import (
	"slices"
	"time"
)

// Item is the core aggregate for this bounded context: a named, geotagged
// record with a direction computed relative to the fixed reference point.
//
// The validate tags describe the persisted-record consistency check applied
// before every write; see services.ValidateRecord.
type Item struct {
	ID                     ItemID
	Name                   ItemName  `validate:"required,max=50"`
	Postcode               string    `validate:"required"`
	Latitude               float64   `validate:"gte=-90,lte=90"`
	Longitude              float64   `validate:"gte=-180,lte=180"`
	DirectionFromReference Direction `validate:"oneof=NE SE SW NW"`
	Title                  *string
	Users                  []string `validate:"dive,max=50"`
	StartDate              *time.Time
	CreatedAt              time.Time
}

// NewItem constructs an Item aggregate without an ID. The ID is assigned by
// the repository when the item is saved.
func NewItem(name ItemName, postcode string, lat, lon float64, direction Direction, users []string) *Item {
	return &Item{
		Name:                   name,
		Postcode:               postcode,
		Latitude:               lat,
		Longitude:              lon,
		DirectionFromReference: direction,
		Users:                  slices.Clone(users),
		CreatedAt:              time.Now().UTC(),
	}
}

// HasUser reports whether name is an exact member of the item's users.
func (i *Item) HasUser(name string) bool {
	return slices.Contains(i.Users, name)
}

// Clone returns a deep copy so callers can mutate the result without
// touching the original (repositories hand out clones).
func (i *Item) Clone() *Item {
	c := *i
	c.Users = slices.Clone(i.Users)
	if i.Title != nil {
		title := *i.Title
		c.Title = &title
	}
	if i.StartDate != nil {
		start := *i.StartDate
		c.StartDate = &start
	}
	return &c
}
