package services

import (
	"github.com/ghuser/geoitems/pkg/app"
	"github.com/ghuser/geoitems/pkg/cache"
	"github.com/ghuser/geoitems/services/item/domain/repositories"
	domainsvcs "github.com/ghuser/geoitems/services/item/domain/services"
	"github.com/ghuser/geoitems/services/item/infrastructure/notify"
	"github.com/ghuser/geoitems/services/item/infrastructure/persistence/memory"
	"github.com/ghuser/geoitems/services/item/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Item *ItemService
}

// New wires all item application services with infrastructure from the Application container.
// Without a database the in-memory repository is used; without Redis reads
// skip the cache; without a publisher nothing is notified.
func New(a *app.Application) *Services {
	var repo repositories.ItemRepository
	if a.Db != nil {
		repo = postgres.NewItemRepository(a.Db)
	} else {
		repo = memory.NewItemRepository()
	}

	var itemCache ItemCache
	if a.Redis != nil {
		itemCache = cache.NewItemCache(a.Redis)
	}

	var notifier Notifier
	if a.Publisher != nil {
		notifier = notify.NewEventNotifier(a.Publisher, a.Logger, a.Clock)
	}

	validator := domainsvcs.NewItemValidator(domainsvcs.NewStartDateValidator(a.Clock))
	return &Services{
		Item: NewItemService(repo, validator, notifier, itemCache, a.Logger),
	}
}
