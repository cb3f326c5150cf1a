package account

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"service-pickup/internal/apperr"
	"service-pickup/internal/domain"
	"service-pickup/internal/policy"
)

// Service coordinates user and driver accounts.
type Service struct {
	repo             accountRepository
	operationTimeout time.Duration
	newID            func() string
}

// NewService creates and configures an account Service.
func NewService(r accountRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		repo:             r,
		operationTimeout: timeout,
		newID:            func() string { return uuid.New().String() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validateEmail(v string) error {
	if _, err := mail.ParseAddress(v); err != nil {
		return apperr.BadRequest("email", "must be a valid email address")
	}
	return nil
}

func validateName(v *string) error {
	if v != nil && strings.TrimSpace(*v) == "" {
		return apperr.BadRequest("name", "must not be empty")
	}
	return nil
}

// CreateUser registers a new user. Admins only.
func (s *Service) CreateUser(ctx context.Context, actor domain.Actor, u domain.User) (*domain.User, error) {
	if err := policy.CanManageAccounts(actor).Err(); err != nil {
		return nil, err
	}
	if err := validateEmail(u.Email); err != nil {
		return nil, err
	}
	if err := validateName(&u.Name); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	u.ID = s.newID()
	if err := s.repo.CreateUser(ctx, &u); err != nil {
		return nil, mapConflict(err)
	}
	return &u, nil
}

// GetUser returns a user visible to actor.
func (s *Service) GetUser(ctx context.Context, actor domain.Actor, id string) (*domain.User, error) {
	if err := policy.CanAccessAccount(actor, domain.RoleUser, id).Err(); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("User not found")
	}
	return u, nil
}

// UpdateUser applies a partial update and returns the stored user.
func (s *Service) UpdateUser(ctx context.Context, actor domain.Actor, u domain.PartialUserUpdate) (*domain.User, error) {
	if err := policy.CanAccessAccount(actor, domain.RoleUser, u.ID).Err(); err != nil {
		return nil, err
	}
	if u.Name == nil && u.Phone == nil && u.Address == nil {
		return nil, apperr.BadRequest("body", "no fields to update")
	}
	if err := validateName(u.Name); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.repo.UpdateUser(ctx, u)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	return s.repo.GetUser(ctx, u.ID)
}

// DeleteUser removes a user and its account.
func (s *Service) DeleteUser(ctx context.Context, actor domain.Actor, id string) error {
	if err := policy.CanAccessAccount(actor, domain.RoleUser, id).Err(); err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("User not found")
	}
	return nil
}

// CreateDriver registers a new driver. Admins only.
func (s *Service) CreateDriver(ctx context.Context, actor domain.Actor, d domain.Driver) (*domain.Driver, error) {
	if err := policy.CanManageAccounts(actor).Err(); err != nil {
		return nil, err
	}
	if err := validateEmail(d.Email); err != nil {
		return nil, err
	}
	if err := validateName(&d.Name); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d.ID = s.newID()
	if err := s.repo.CreateDriver(ctx, &d); err != nil {
		return nil, mapConflict(err)
	}
	return &d, nil
}

// GetDriver returns a driver visible to actor.
func (s *Service) GetDriver(ctx context.Context, actor domain.Actor, id string) (*domain.Driver, error) {
	if err := policy.CanAccessAccount(actor, domain.RoleDriver, id).Err(); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.repo.GetDriver(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.NotFound("Driver not found")
	}
	return d, nil
}

// UpdateDriver applies a partial update and returns the stored driver.
func (s *Service) UpdateDriver(ctx context.Context, actor domain.Actor, d domain.PartialDriverUpdate) (*domain.Driver, error) {
	if err := policy.CanAccessAccount(actor, domain.RoleDriver, d.ID).Err(); err != nil {
		return nil, err
	}
	if d.Name == nil && d.Phone == nil && d.VehicleType == nil && d.LicensePlate == nil {
		return nil, apperr.BadRequest("body", "no fields to update")
	}
	if err := validateName(d.Name); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.repo.UpdateDriver(ctx, d)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("Driver not found")
	}
	return s.repo.GetDriver(ctx, d.ID)
}

// DeleteDriver removes a driver and its account.
func (s *Service) DeleteDriver(ctx context.Context, actor domain.Actor, id string) error {
	if err := policy.CanAccessAccount(actor, domain.RoleDriver, id).Err(); err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.repo.DeleteDriver(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("Driver not found")
	}
	return nil
}

func mapConflict(err error) error {
	if apperr.KindOf(err) == apperr.KindConflict {
		return apperr.Conflict("Account with this email already exists")
	}
	return err
}
