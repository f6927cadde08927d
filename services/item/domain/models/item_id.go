package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ItemID is the opaque identifier of an Item: a 24-character hex object id.
type ItemID string

// NewItemID generates a fresh object id. Only repositories call this.
func NewItemID() ItemID {
	return ItemID(bson.NewObjectID().Hex())
}

// ParseItemID checks that s is a well-formed object id and returns it in
// canonical lower-case form.
func ParseItemID(s string) (ItemID, error) {
	oid, err := bson.ObjectIDFromHex(s)
	if err != nil {
		return "", fmt.Errorf("parse item id %q: %w", s, err)
	}
	return ItemID(oid.Hex()), nil
}

// String returns the underlying string value.
func (id ItemID) String() string {
	return string(id)
}
