package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/geoitems/pkg/database"
	itemdomain "github.com/ghuser/geoitems/services/item/domain"
	"github.com/ghuser/geoitems/services/item/domain/models"
	"github.com/ghuser/geoitems/services/item/domain/repositories"
	"github.com/ghuser/geoitems/services/item/infrastructure/persistence/postgres/db"
)

// Postgres error codes treated as a rejected record.
const (
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
	pgStringDataTruncated = "22001"
)

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db *database.Database
}

var _ repositories.ItemRepository = (*ItemRepository)(nil)

// NewItemRepository returns an ItemRepository backed by the given connection pool.
func NewItemRepository(database *database.Database) *ItemRepository {
	return &ItemRepository{db: database}
}

// Save assigns a fresh object id to item and inserts it.
// Returns ErrConstraintViolation when the row is rejected by a constraint.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) (models.ItemID, error) {
	item.ID = models.NewItemID()
	q := db.New(r.db.DB())
	if err := q.InsertItem(ctx, db.InsertItemParams{
		ID:                     item.ID.String(),
		Name:                   item.Name.String(),
		Postcode:               item.Postcode,
		Latitude:               item.Latitude,
		Longitude:              item.Longitude,
		DirectionFromReference: item.DirectionFromReference.String(),
		Title:                  nullString(item.Title),
		Users:                  item.Users,
		StartDate:              nullTime(item),
		CreatedAt:              item.CreatedAt,
	}); err != nil {
		item.ID = ""
		return "", mapWriteError("insert item", err)
	}
	return item.ID, nil
}

// FindByID retrieves an Item by ID. Returns ErrItemNotFound if not found.
func (r *ItemRepository) FindByID(ctx context.Context, id models.ItemID) (*models.Item, error) {
	q := db.New(r.db.DB())
	row, err := q.GetItemByID(ctx, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, itemdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return rowToItem(row), nil
}

// FindAll returns every item in insertion order.
func (r *ItemRepository) FindAll(ctx context.Context) ([]*models.Item, error) {
	q := db.New(r.db.DB())
	rows, err := q.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	items := make([]*models.Item, len(rows))
	for i, row := range rows {
		items[i] = rowToItem(row)
	}
	return items, nil
}

// Update persists the mutable fields (name, title, users, start date).
func (r *ItemRepository) Update(ctx context.Context, item *models.Item) error {
	q := db.New(r.db.DB())
	n, err := q.UpdateItem(ctx, db.UpdateItemParams{
		ID:        item.ID.String(),
		Name:      item.Name.String(),
		Title:     nullString(item.Title),
		Users:     item.Users,
		StartDate: nullTime(item),
	})
	if err != nil {
		return mapWriteError("update item", err)
	}
	if n == 0 {
		return itemdomain.ErrItemNotFound
	}
	return nil
}

// Delete removes an item by ID. Returns ErrItemNotFound if nothing was deleted.
func (r *ItemRepository) Delete(ctx context.Context, id models.ItemID) error {
	q := db.New(r.db.DB())
	n, err := q.DeleteItem(ctx, id.String())
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if n == 0 {
		return itemdomain.ErrItemNotFound
	}
	return nil
}

// mapWriteError turns constraint failures into ErrConstraintViolation,
// keeping the server's message as diagnostic detail.
func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgCheckViolation, pgNotNullViolation, pgStringDataTruncated:
			return fmt.Errorf("%w: %s", itemdomain.ErrConstraintViolation, pgErr.Message)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(item *models.Item) sql.NullTime {
	if item.StartDate == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: item.StartDate.UTC(), Valid: true}
}

// rowToItem maps a db.ItemsItem to a domain models.Item.
func rowToItem(row db.ItemsItem) *models.Item {
	item := &models.Item{
		ID:                     models.ItemID(row.ID),
		Name:                   models.ItemName(row.Name),
		Postcode:               row.Postcode,
		Latitude:               row.Latitude,
		Longitude:              row.Longitude,
		DirectionFromReference: models.Direction(row.DirectionFromReference),
		Users:                  row.Users,
		CreatedAt:              row.CreatedAt.UTC(),
	}
	if item.Users == nil {
		item.Users = []string{}
	}
	if row.Title.Valid {
		title := row.Title.String
		item.Title = &title
	}
	if row.StartDate.Valid {
		start := row.StartDate.Time.UTC()
		item.StartDate = &start
	}
	return item
}
