package directory

import (
	"context"

	"oncampus/internal/catalog"
	"oncampus/internal/collection"
	"oncampus/internal/logger"
	"oncampus/internal/models"
	"oncampus/internal/storage"
)

// Collection kinds. Names double as URL segments and CLI arguments.
var (
	ClubKind    = collection.NewKind("clubs", catalog.Clubs, catalog.ClubImagePool)
	EventKind   = collection.NewKind("events", catalog.Events, catalog.EventImagePool)
	BenefitKind = collection.NewKind("benefits", catalog.Benefits, catalog.BenefitImagePool)
)

// Directory bundles the three collection stores over one key-value store.
type Directory struct {
	Clubs    *collection.Store[models.Club]
	Events   *collection.Store[models.CampusEvent]
	Benefits *collection.Store[models.Benefit]
}

func New(kv storage.Store, log *logger.Logger, opts ...collection.Option) *Directory {
	return &Directory{
		Clubs:    collection.New(ClubKind, kv, log, opts...),
		Events:   collection.New(EventKind, kv, log, opts...),
		Benefits: collection.New(BenefitKind, kv, log, opts...),
	}
}

// Initialize reconciles every collection and returns one result per kind in
// the order clubs, events, benefits.
func (d *Directory) Initialize(ctx context.Context) []collection.InitResult {
	return []collection.InitResult{
		d.Clubs.Initialize(ctx),
		d.Events.Initialize(ctx),
		d.Benefits.Initialize(ctx),
	}
}

// Kinds lists the collection names.
func Kinds() []string {
	return []string{ClubKind.Name, EventKind.Name, BenefitKind.Name}
}
