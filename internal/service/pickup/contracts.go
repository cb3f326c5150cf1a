//go:generate mockgen -source=contracts.go -destination=pickup_mocks_test.go -package=pickup_test

package pickup

import (
	"context"

	"service-pickup/internal/domain"
)

// pickupStore is the record store the service reads and conditionally writes.
type pickupStore interface {
	Create(ctx context.Context, ownerID string, f domain.PickupFields) (*domain.Pickup, error)
	Get(ctx context.Context, id string) (*domain.Pickup, error)
	Update(ctx context.Context, id string, u domain.PickupUpdate, cond domain.Condition) (*domain.Pickup, error)
	HardDelete(ctx context.Context, id string) (*domain.Pickup, error)
	List(ctx context.Context, f domain.ListFilter) (domain.Page, error)
	ScanByStatus(ctx context.Context, st domain.PickupStatus) ([]domain.Pickup, error)
}

// EventPublisher delivers pickup events after a transition is committed.
type EventPublisher interface {
	Publish(ctx context.Context, e domain.PickupEvent) error
}
