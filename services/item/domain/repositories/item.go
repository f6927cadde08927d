package repositories

import (
	"context"

	"github.com/ghuser/geoitems/services/item/domain/models"
)

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// FindByID, Update and Delete return domain.ErrItemNotFound when no record
// has the given ID. Save and Update return domain.ErrConstraintViolation when
// the store rejects the record.
type ItemRepository interface {
	// Save assigns a new ID to item, persists it and returns the ID.
	Save(ctx context.Context, item *models.Item) (models.ItemID, error)
	FindByID(ctx context.Context, id models.ItemID) (*models.Item, error)

	// FindAll returns every item in the store's default (insertion) order.
	FindAll(ctx context.Context) ([]*models.Item, error)

	// Update persists the mutable fields of an existing Item.
	Update(ctx context.Context, item *models.Item) error

	// Delete removes an item by ID.
	Delete(ctx context.Context, id models.ItemID) error
}
