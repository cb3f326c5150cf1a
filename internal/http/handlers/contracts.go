package handlers

import (
	"context"

	"service-pickup/internal/domain"
	"service-pickup/internal/service/pickup"
)

// PickupUsecase is the pickup service as seen by the HTTP layer.
type PickupUsecase interface {
	Create(ctx context.Context, actor domain.Actor, in pickup.CreateInput) (*domain.Pickup, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Pickup, error)
	List(ctx context.Context, actor domain.Actor, f domain.ListFilter) (domain.Page, error)
	ListAvailable(ctx context.Context, actor domain.Actor) ([]domain.Pickup, error)
	Update(ctx context.Context, actor domain.Actor, id string, in pickup.UpdateInput) (*domain.Pickup, error)
	Accept(ctx context.Context, actor domain.Actor, id string) (*domain.Pickup, error)
	CancelAcceptance(ctx context.Context, actor domain.Actor, id string) (*domain.Pickup, error)
	Delete(ctx context.Context, actor domain.Actor, id string, hard bool) error
}

// AccountUsecase is the account service as seen by the HTTP layer.
type AccountUsecase interface {
	CreateUser(ctx context.Context, actor domain.Actor, u domain.User) (*domain.User, error)
	GetUser(ctx context.Context, actor domain.Actor, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, actor domain.Actor, u domain.PartialUserUpdate) (*domain.User, error)
	DeleteUser(ctx context.Context, actor domain.Actor, id string) error

	CreateDriver(ctx context.Context, actor domain.Actor, d domain.Driver) (*domain.Driver, error)
	GetDriver(ctx context.Context, actor domain.Actor, id string) (*domain.Driver, error)
	UpdateDriver(ctx context.Context, actor domain.Actor, d domain.PartialDriverUpdate) (*domain.Driver, error)
	DeleteDriver(ctx context.Context, actor domain.Actor, id string) error
}
