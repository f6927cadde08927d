package db

import (
	"database/sql"
	"time"
)

type ItemsItem struct {
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
