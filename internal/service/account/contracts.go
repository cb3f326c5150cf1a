//go:generate mockgen -source=contracts.go -destination=account_mocks_test.go -package=account_test

package account

import (
	"context"

	"service-pickup/internal/domain"
)

// accountRepository defines the account storage used by the service.
type accountRepository interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, u domain.PartialUserUpdate) (bool, error)
	DeleteUser(ctx context.Context, id string) (bool, error)

	CreateDriver(ctx context.Context, d *domain.Driver) error
	GetDriver(ctx context.Context, id string) (*domain.Driver, error)
	UpdateDriver(ctx context.Context, d domain.PartialDriverUpdate) (bool, error)
	DeleteDriver(ctx context.Context, id string) (bool, error)
}
