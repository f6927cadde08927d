package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	itemdomain "github.com/ghuser/geoitems/services/item/domain"
	"github.com/ghuser/geoitems/services/item/domain/models"
)

func newItem(name string) *models.Item {
	return models.NewItem(models.ItemName(name), "12345", 45, -70, models.DirectionNE, []string{name})
}

func TestSave_AssignsID(t *testing.T) {
	repo := NewItemRepository()
	item := newItem("Item1")

	id, err := repo.Save(context.Background(), item)
	require.NoError(t, err)

	assert.Equal(t, id, item.ID)
	_, err = models.ParseItemID(id.String())
	assert.NoError(t, err, "assigned id must be a valid object id")
}

func TestFindByID_ReturnsCopy(t *testing.T) {
	repo := NewItemRepository()
	item := newItem("Item1")
	id, err := repo.Save(context.Background(), item)
	require.NoError(t, err)

	got, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	got.Users[0] = "mutated"
	item.Name = "mutated too"

	again, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Item1", again.Users[0])
	assert.Equal(t, models.ItemName("Item1"), again.Name)
}

func TestFindByID_NotFound(t *testing.T) {
	_, err := NewItemRepository().FindByID(context.Background(), models.NewItemID())
	assert.ErrorIs(t, err, itemdomain.ErrItemNotFound)
}

func TestFindAll_InsertionOrder(t *testing.T) {
	repo := NewItemRepository()
	ctx := context.Background()
	names := []string{"c", "a", "b"}
	for _, n := range names {
		_, err := repo.Save(ctx, newItem(n))
		require.NoError(t, err)
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, n := range names {
		assert.Equal(t, models.ItemName(n), all[i].Name)
	}
}

func TestFindAll_Empty(t *testing.T) {
	all, err := NewItemRepository().FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestUpdate_OnlyMutableFields(t *testing.T) {
	repo := NewItemRepository()
	ctx := context.Background()
	item := newItem("Item1")
	id, err := repo.Save(ctx, item)
	require.NoError(t, err)

	changed := item.Clone()
	changed.Name = "Renamed"
	changed.Postcode = "99999"
	changed.Latitude = 0
	require.NoError(t, repo.Update(ctx, changed))

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.ItemName("Renamed"), got.Name)
	assert.Equal(t, "12345", got.Postcode)
	assert.Equal(t, 45.0, got.Latitude)
}

func TestUpdate_NotFound(t *testing.T) {
	item := newItem("x")
	item.ID = models.NewItemID()
	assert.ErrorIs(t, NewItemRepository().Update(context.Background(), item), itemdomain.ErrItemNotFound)
}

func TestDelete(t *testing.T) {
	repo := NewItemRepository()
	ctx := context.Background()
	id1, _ := repo.Save(ctx, newItem("a"))
	id2, _ := repo.Save(ctx, newItem("b"))

	require.NoError(t, repo.Delete(ctx, id1))
	_, err := repo.FindByID(ctx, id1)
	assert.ErrorIs(t, err, itemdomain.ErrItemNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, id1), itemdomain.ErrItemNotFound)

	all, _ := repo.FindAll(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, id2, all[0].ID)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewItemRepository().Save(ctx, newItem("a"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConcurrentSaves(t *testing.T) {
	repo := NewItemRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Save(ctx, newItem("x"))
		}()
	}
	wg.Wait()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 50)
}
