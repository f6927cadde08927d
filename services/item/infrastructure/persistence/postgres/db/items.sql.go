package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const insertItem = `-- name: InsertItem :exec
INSERT INTO items (id, name, postcode, latitude, longitude, direction_from_reference, title, users, start_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

type InsertItemParams struct {
	ID                     string
	Name                   string
	Postcode               string
	Latitude               float64
	Longitude              float64
	DirectionFromReference string
	Title                  sql.NullString
	Users                  []string
	StartDate              sql.NullTime
	CreatedAt              time.Time
}

func (q *Queries) InsertItem(ctx context.Context, arg InsertItemParams) error {
	_, err := q.db.ExecContext(ctx, insertItem,
		arg.ID,
		arg.Name,
		arg.Postcode,
		arg.Latitude,
		arg.Longitude,
		arg.DirectionFromReference,
		arg.Title,
		nonNilUsers(arg.Users),
		arg.StartDate,
		arg.CreatedAt,
	)
	return err
}

const itemColumns = `id, name, postcode, latitude, longitude, direction_from_reference, title, users, start_date, created_at`

const getItemByID = `-- name: GetItemByID :one
SELECT ` + itemColumns + `
FROM items
WHERE id = $1
`

func (q *Queries) GetItemByID(ctx context.Context, id string) (ItemsItem, error) {
	row := q.db.QueryRowContext(ctx, getItemByID, id)
	typeMap := pgtype.NewMap()
	var i ItemsItem
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Postcode,
		&i.Latitude,
		&i.Longitude,
		&i.DirectionFromReference,
		&i.Title,
		typeMap.SQLScanner(&i.Users),
		&i.StartDate,
		&i.CreatedAt,
	)
	i.DirectionFromReference = strings.TrimSpace(i.DirectionFromReference)
	return i, err
}

const listItems = `-- name: ListItems :many
SELECT ` + itemColumns + `
FROM items
ORDER BY seq
`

func (q *Queries) ListItems(ctx context.Context) ([]ItemsItem, error) {
	rows, err := q.db.QueryContext(ctx, listItems)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	typeMap := pgtype.NewMap()
	var items []ItemsItem
	for rows.Next() {
		var i ItemsItem
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Postcode,
			&i.Latitude,
			&i.Longitude,
			&i.DirectionFromReference,
			&i.Title,
			typeMap.SQLScanner(&i.Users),
			&i.StartDate,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		i.DirectionFromReference = strings.TrimSpace(i.DirectionFromReference)
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateItem = `-- name: UpdateItem :execrows
UPDATE items
SET name = $2, title = $3, users = $4, start_date = $5
WHERE id = $1
`

type UpdateItemParams struct {
	ID        string
	Name      string
	Title     sql.NullString
	Users     []string
	StartDate sql.NullTime
}

func (q *Queries) UpdateItem(ctx context.Context, arg UpdateItemParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateItem,
		arg.ID,
		arg.Name,
		arg.Title,
		nonNilUsers(arg.Users),
		arg.StartDate,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteItem = `-- name: DeleteItem :execrows
DELETE FROM items
WHERE id = $1
`

func (q *Queries) DeleteItem(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteItem, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// nonNilUsers keeps NOT NULL users columns from receiving SQL NULL.
func nonNilUsers(users []string) []string {
	if users == nil {
		return []string{}
	}
	return users
}
