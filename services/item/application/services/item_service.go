package services

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	pkgcache "github.com/ghuser/geoitems/pkg/cache"
	"github.com/ghuser/geoitems/pkg/logger"
	"github.com/ghuser/geoitems/pkg/telemetry"
	itemdomain "github.com/ghuser/geoitems/services/item/domain"
	"github.com/ghuser/geoitems/services/item/domain/models"
	"github.com/ghuser/geoitems/services/item/domain/repositories"
	domainsvcs "github.com/ghuser/geoitems/services/item/domain/services"
)

const meterName = "github.com/ghuser/geoitems/services/item"

// ItemCache is the read model consulted before the repository.
// *cache.ItemCache implements it.
type ItemCache interface {
	Get(ctx context.Context, id string) (*pkgcache.CachedItem, error)
	Set(ctx context.Context, item *pkgcache.CachedItem) error
	Delete(ctx context.Context, id string) error
}

// Notifier announces newly created items. It must not block the caller and
// has no way to report failure.
type Notifier interface {
	NotifyCreated(ctx context.Context, id models.ItemID, name string)
}

// ItemService orchestrates the item use cases: validation, persistence,
// the created notification and the Redis read model.
type ItemService struct {
	repo      repositories.ItemRepository
	validator *domainsvcs.ItemValidator
	notifier  Notifier
	cache     ItemCache
	log       logger.Logger
	created   metric.Int64Counter
}

// NewItemService returns an ItemService. notifier and cache may be nil.
func NewItemService(
	repo repositories.ItemRepository,
	validator *domainsvcs.ItemValidator,
	notifier Notifier,
	cache ItemCache,
	log logger.Logger,
) *ItemService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	created, err := otel.Meter(meterName).Int64Counter("items.created",
		metric.WithDescription("Number of items created"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		log.Warn("items.created counter unavailable", "error", err)
		created, _ = noop.NewMeterProvider().Meter(meterName).Int64Counter("items.created")
	}
	return &ItemService{
		repo:      repo,
		validator: validator,
		notifier:  notifier,
		cache:     cache,
		log:       log,
		created:   created,
	}
}

// Create validates f, persists the new item and returns its ID. The created
// notification is dispatched without waiting for delivery.
func (s *ItemService) Create(ctx context.Context, f domainsvcs.CreateFields) (models.ItemID, error) {
	item, err := s.validator.ValidateForCreate(f)
	if err != nil {
		return "", err
	}
	if err := domainsvcs.ValidateRecord(item); err != nil {
		return "", err
	}

	id, err := s.repo.Save(ctx, item)
	if err != nil {
		return "", s.fail(ctx, "save item", err)
	}

	s.notifier.NotifyCreated(ctx, id, item.Name.String())
	s.warm(ctx, item)
	s.created.Add(ctx, 1)
	s.log.InfoContext(ctx, "Item created.", "item_id", id.String())
	return id, nil
}

// GetByID returns the item with the given raw ID. The ID format is checked
// before any lookup. Reads go through the cache when one is configured;
// a cache failure falls back to the repository.
func (s *ItemService) GetByID(ctx context.Context, rawID string) (*models.Item, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id.String())
		if err == nil {
			s.log.InfoContext(ctx, "Retrieved item.", "item_id", id.String(), "source", "cache")
			return fromCached(cached), nil
		}
		if !pkgcache.IsMiss(err) {
			s.log.WarnContext(ctx, "item cache read failed", "item_id", id.String(), "error", err)
		}
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "get item", err)
	}
	s.warm(ctx, item)
	s.log.InfoContext(ctx, "Retrieved item.", "item_id", id.String(), "source", "store")
	return item, nil
}

// List returns every item in creation order. The result is never nil.
func (s *ItemService) List(ctx context.Context) ([]*models.Item, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.fail(ctx, "list items", err)
	}
	if items == nil {
		items = []*models.Item{}
	}
	s.log.InfoContext(ctx, fmt.Sprintf("Retrieved %d items.", len(items)), "count", len(items))
	return items, nil
}

// Update applies patch to the item with the given raw ID. An empty patch
// leaves the stored item unchanged.
func (s *ItemService) Update(ctx context.Context, rawID string, patch domainsvcs.ItemPatch) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.fail(ctx, "get item", err)
	}

	updated, err := s.validator.ValidateForUpdate(existing, patch)
	if err != nil {
		return err
	}
	if err := domainsvcs.ValidateRecord(updated); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return s.fail(ctx, "update item", err)
	}
	s.invalidate(ctx, id)
	s.log.InfoContext(ctx, "Item updated.", "item_id", id.String())
	return nil
}

// Delete removes the item with the given raw ID.
func (s *ItemService) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.fail(ctx, "delete item", err)
	}
	s.invalidate(ctx, id)
	s.log.InfoContext(ctx, "Item deleted.", "item_id", id.String())
	return nil
}

func parseID(raw string) (models.ItemID, error) {
	id, err := models.ParseItemID(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", itemdomain.ErrInvalidItemID, err)
	}
	return id, nil
}

// fail passes domain errors through and wraps everything else as
// ErrInfrastructure, logging and reporting it.
func (s *ItemService) fail(ctx context.Context, op string, err error) error {
	if isDomainError(err) {
		return err
	}
	s.log.ErrorContext(ctx, op+" failed", "error", err)
	telemetry.CaptureError(ctx, err)
	return fmt.Errorf("%w: %s: %w", itemdomain.ErrInfrastructure, op, err)
}

var domainErrors = []error{
	itemdomain.ErrItemNotFound,
	itemdomain.ErrInvalidItemID,
	itemdomain.ErrConstraintViolation,
	itemdomain.ErrMissingRequiredField,
	itemdomain.ErrNameNotInUsers,
	itemdomain.ErrInvalidPostcode,
	itemdomain.ErrInvalidStartDate,
	itemdomain.ErrInvalidCoordinateType,
	itemdomain.ErrInvalidCoordinateRange,
	itemdomain.ErrInfrastructure,
}

func isDomainError(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (s *ItemService) warm(ctx context.Context, item *models.Item) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, toCached(item)); err != nil {
		s.log.WarnContext(ctx, "item cache write failed", "item_id", item.ID.String(), "error", err)
	}
}

func (s *ItemService) invalidate(ctx context.Context, id models.ItemID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id.String()); err != nil {
		s.log.WarnContext(ctx, "item cache invalidation failed", "item_id", id.String(), "error", err)
	}
}

func toCached(item *models.Item) *pkgcache.CachedItem {
	c := item.Clone()
	return &pkgcache.CachedItem{
		ID:                     c.ID.String(),
		Name:                   c.Name.String(),
		Postcode:               c.Postcode,
		Latitude:               c.Latitude,
		Longitude:              c.Longitude,
		DirectionFromReference: c.DirectionFromReference.String(),
		Title:                  c.Title,
		Users:                  c.Users,
		StartDate:              c.StartDate,
		CreatedAt:              c.CreatedAt,
	}
}

func fromCached(c *pkgcache.CachedItem) *models.Item {
	item := &models.Item{
		ID:                     models.ItemID(c.ID),
		Name:                   models.ItemName(c.Name),
		Postcode:               c.Postcode,
		Latitude:               c.Latitude,
		Longitude:              c.Longitude,
		DirectionFromReference: models.Direction(c.DirectionFromReference),
		Title:                  c.Title,
		Users:                  c.Users,
		StartDate:              c.StartDate,
		CreatedAt:              c.CreatedAt,
	}
	if item.Users == nil {
		item.Users = []string{}
	}
	return item
}

type nopNotifier struct{}

func (nopNotifier) NotifyCreated(context.Context, models.ItemID, string) {}
