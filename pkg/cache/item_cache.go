package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// ItemCacheTTL is the time-to-live for cached items.
	ItemCacheTTL = 24 * time.Hour

	itemCacheKeyPrefix = "item"
)

// CachedItem is the denormalized read model stored in Redis as a hash.
// Optional fields use pointers; a nil pointer is stored as an absent field.
type CachedItem struct {
	ID                     string     `json:"id"`
	Name                   string     `json:"name"`
	Postcode               string     `json:"postcode"`
	Latitude               float64    `json:"latitude"`
	Longitude              float64    `json:"longitude"`
	DirectionFromReference string     `json:"direction_from_reference"`
	Title                  *string    `json:"title,omitempty"`
	Users                  []string   `json:"users"`
	StartDate              *time.Time `json:"start_date,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
}

// IsMiss reports whether err means the key was absent or expired.
func IsMiss(err error) bool {
	return errors.Is(err, redis.Nil)
}

// ItemCache provides structured read/write operations for item cache entries.
// Key format: "item:{itemID}"
type ItemCache struct {
	client *RedisClient
}

// NewItemCache creates a new ItemCache backed by the given RedisClient.
func NewItemCache(r *RedisClient) *ItemCache {
	return &ItemCache{client: r}
}

// Get retrieves a cached item by ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *ItemCache) Get(ctx context.Context, itemID string) (*CachedItem, error) {
	vals, err := c.client.Client().HGetAll(ctx, ItemKey(itemID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}
	return decodeItem(vals)
}

// Set writes a cached item as a Redis hash with a 24-hour TTL.
// The hash is replaced, not merged, so cleared optional fields do not linger.
func (c *ItemCache) Set(ctx context.Context, item *CachedItem) error {
	fields, err := encodeItem(item)
	if err != nil {
		return err
	}
	key := ItemKey(item.ID)
	pipe := c.client.Client().TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, ItemCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached item.
func (c *ItemCache) Delete(ctx context.Context, itemID string) error {
	if err := c.client.Client().Del(ctx, ItemKey(itemID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// ItemKey builds the Redis key: "item:{itemID}"
func ItemKey(itemID string) string {
	return itemCacheKeyPrefix + ":" + itemID
}

func encodeItem(item *CachedItem) (map[string]any, error) {
	users, err := json.Marshal(item.Users)
	if err != nil {
		return nil, fmt.Errorf("cache encode users: %w", err)
	}
	fields := map[string]any{
		"id":                       item.ID,
		"name":                     item.Name,
		"postcode":                 item.Postcode,
		"latitude":                 strconv.FormatFloat(item.Latitude, 'g', -1, 64),
		"longitude":                strconv.FormatFloat(item.Longitude, 'g', -1, 64),
		"direction_from_reference": item.DirectionFromReference,
		"users":                    string(users),
		"created_at":               item.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if item.Title != nil {
		fields["title"] = *item.Title
	}
	if item.StartDate != nil {
		fields["start_date"] = item.StartDate.UTC().Format(time.RFC3339Nano)
	}
	return fields, nil
}

func decodeItem(vals map[string]string) (*CachedItem, error) {
	lat, err := strconv.ParseFloat(vals["latitude"], 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(vals["longitude"], 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse longitude: %w", err)
	}
	var users []string
	if err := json.Unmarshal([]byte(vals["users"]), &users); err != nil {
		return nil, fmt.Errorf("cache parse users: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}

	item := &CachedItem{
		ID:                     vals["id"],
		Name:                   vals["name"],
		Postcode:               vals["postcode"],
		Latitude:               lat,
		Longitude:              lon,
		DirectionFromReference: vals["direction_from_reference"],
		Users:                  users,
		CreatedAt:              createdAt,
	}
	if title, ok := vals["title"]; ok {
		item.Title = &title
	}
	if raw, ok := vals["start_date"]; ok {
		start, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("cache parse start_date: %w", err)
		}
		item.StartDate = &start
	}
	return item, nil
}
