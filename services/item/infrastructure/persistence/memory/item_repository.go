// Package memory is an in-process ItemRepository used by tests and by local
// runs without Postgres. Records are kept in insertion order.
package memory

import (
	"context"
	"sync"

	itemdomain "github.com/ghuser/geoitems/services/item/domain"
	"github.com/ghuser/geoitems/services/item/domain/models"
	"github.com/ghuser/geoitems/services/item/domain/repositories"
)

// ItemRepository stores clones of items in a map guarded by a RWMutex.
type ItemRepository struct {
	mu    sync.RWMutex
	items map[models.ItemID]*models.Item
	order []models.ItemID
}

var _ repositories.ItemRepository = (*ItemRepository)(nil)

// NewItemRepository returns an empty repository.
func NewItemRepository() *ItemRepository {
	return &ItemRepository{items: make(map[models.ItemID]*models.Item)}
}

// Save assigns a fresh object id to item and stores a copy.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) (models.ItemID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id := models.NewItemID()
	for r.items[id] != nil {
		id = models.NewItemID()
	}
	item.ID = id
	r.items[id] = item.Clone()
	r.order = append(r.order, id)
	return id, nil
}

// FindByID returns a copy of the stored item.
func (r *ItemRepository) FindByID(ctx context.Context, id models.ItemID) (*models.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, itemdomain.ErrItemNotFound
	}
	return item.Clone(), nil
}

// FindAll returns copies of every item in insertion order.
func (r *ItemRepository) FindAll(ctx context.Context) ([]*models.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Item, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id].Clone())
	}
	return out, nil
}

// Update replaces the mutable fields of the stored item.
func (r *ItemRepository) Update(ctx context.Context, item *models.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[item.ID]
	if !ok {
		return itemdomain.ErrItemNotFound
	}
	next := item.Clone()
	stored.Name = next.Name
	stored.Title = next.Title
	stored.Users = next.Users
	stored.StartDate = next.StartDate
	return nil
}

// Delete removes the item.
func (r *ItemRepository) Delete(ctx context.Context, id models.ItemID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return itemdomain.ErrItemNotFound
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
