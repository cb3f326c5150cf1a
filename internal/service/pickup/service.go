package pickup

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"service-pickup/internal/apperr"
	"service-pickup/internal/domain"
	"service-pickup/internal/logx"
	"service-pickup/internal/policy"
)

// Operation names used in events and metrics.
const (
	OpCreate           = "create"
	OpUpdate           = "update"
	OpPublish          = "publish"
	OpAccept           = "accept"
	OpCancelAcceptance = "cancel_acceptance"
	OpSoftDelete       = "soft_delete"
	OpHardDelete       = "hard_delete"
)

// Service runs pickup use cases: load, gate, conditional write, publish.
type Service struct {
	store            pickupStore
	events           EventPublisher
	transitions      *prometheus.CounterVec
	logger           logx.Logger
	operationTimeout time.Duration
	now              func() time.Time
}

// NewService creates and configures a pickup Service. events and transitions may be nil.
func NewService(store pickupStore, events EventPublisher, transitions *prometheus.CounterVec, logger logx.Logger, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		store:            store,
		events:           events,
		transitions:      transitions,
		logger:           logger,
		operationTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Create stores a new pending pickup.
func (s *Service) Create(ctx context.Context, actor domain.Actor, in CreateInput) (p *domain.Pickup, err error) {
	defer func() { s.observe(OpCreate, err) }()

	if err := policy.CanCreate(actor).Err(); err != nil {
		return nil, err
	}
	if err := validateFields(in.Fields); err != nil {
		return nil, err
	}

	owner := actor.ID
	if actor.IsAdmin() && in.OwnerID != "" {
		owner = in.OwnerID
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p, err = s.store.Create(ctx, owner, in.Fields)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, actor, OpCreate, "", *p)
	return p, nil
}

// Get returns a pickup visible to actor.
func (s *Service) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Pickup, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, *p, policy.ActionRead).Err(); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns a filtered page of all pickups. Admins only.
func (s *Service) List(ctx context.Context, actor domain.Actor, f domain.ListFilter) (domain.Page, error) {
	if !actor.IsAdmin() {
		return domain.Page{}, apperr.Forbidden("Only admins can list all pickups")
	}
	if err := validateFilter(f); err != nil {
		return domain.Page{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.List(ctx, f)
}

// ListAvailable returns every pickup open for acceptance.
func (s *Service) ListAvailable(ctx context.Context, actor domain.Actor) ([]domain.Pickup, error) {
	if !actor.HasRole(domain.RoleDriver, domain.RoleAdmin) {
		return nil, apperr.Forbidden("Only drivers can list available pickups")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.ScanByStatus(ctx, domain.StatusAvailable)
}

// Update merges attribute changes and optionally publishes a pending pickup.
func (s *Service) Update(ctx context.Context, actor domain.Actor, id string, in UpdateInput) (p *domain.Pickup, err error) {
	op, action := OpUpdate, policy.ActionUpdate
	if in.Status != nil {
		op, action = OpPublish, policy.ActionPublish
	}
	defer func() { s.observe(op, err) }()

	if err := validateUpdate(in); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cur, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Status != nil {
		if err := policy.Authorize(actor, *cur, policy.ActionPublish).Err(); err != nil {
			return nil, err
		}
	}
	if in.hasFields() {
		if err := policy.Authorize(actor, *cur, policy.ActionUpdate).Err(); err != nil {
			return nil, err
		}
	}

	p, err = s.store.Update(ctx, id, in.toUpdate(), policy.ConditionFor(action, *cur))
	if err != nil {
		return nil, s.writeErr(err, actor, *cur, action)
	}
	s.publish(ctx, actor, op, cur.Status, *p)
	return p, nil
}

// Accept assigns an available pickup to the calling driver.
func (s *Service) Accept(ctx context.Context, actor domain.Actor, id string) (*domain.Pickup, error) {
	return s.transition(ctx, actor, id, OpAccept, policy.ActionAccept, policy.AcceptEffect(actor))
}

// CancelAcceptance releases an accepted pickup and cancels it.
func (s *Service) CancelAcceptance(ctx context.Context, actor domain.Actor, id string) (*domain.Pickup, error) {
	return s.transition(ctx, actor, id, OpCancelAcceptance, policy.ActionCancelAcceptance, policy.CancelAcceptanceEffect())
}

func (s *Service) transition(ctx context.Context, actor domain.Actor, id, op string, action policy.Action, effect domain.PickupUpdate) (p *domain.Pickup, err error) {
	defer func() { s.observe(op, err) }()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cur, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, *cur, action).Err(); err != nil {
		return nil, err
	}

	p, err = s.store.Update(ctx, id, effect, policy.ConditionFor(action, *cur))
	if err != nil {
		return nil, s.writeErr(err, actor, *cur, action)
	}
	s.publish(ctx, actor, op, cur.Status, *p)
	return p, nil
}

// Delete soft-deletes a pickup, or removes it permanently when hard is set.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id string, hard bool) (err error) {
	op, action := OpSoftDelete, policy.ActionSoftDelete
	if hard {
		op, action = OpHardDelete, policy.ActionHardDelete
	}
	defer func() { s.observe(op, err) }()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cur, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actor, *cur, action).Err(); err != nil {
		return err
	}

	var p *domain.Pickup
	if hard {
		p, err = s.store.HardDelete(ctx, id)
	} else {
		p, err = s.store.Update(ctx, id, policy.SoftDeleteEffect(s.now()), policy.ConditionFor(action, *cur))
	}
	if err != nil {
		return s.writeErr(err, actor, *cur, action)
	}
	s.publish(ctx, actor, op, cur.Status, *p)
	return nil
}

// load returns the pickup or a NotFound error.
func (s *Service) load(ctx context.Context, id string) (*domain.Pickup, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound(policy.NotFoundMessage)
	}
	return p, nil
}

// writeErr maps a failed conditional write. The status reported by the store
// is fed back into the gate, so a lost race reads exactly like a request made
// after the winner committed. The pickup is not re-read.
func (s *Service) writeErr(err error, actor domain.Actor, cur domain.Pickup, action policy.Action) error {
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.NotFound(policy.NotFoundMessage)
	}
	var conflict *domain.StatusConflictError
	if errors.As(err, &conflict) {
		if d := policy.CanAccess(actor, policy.OwnersOf(cur), conflict.Current, action); !d.Allowed() {
			return d.Err()
		}
		return apperr.Conflict("Pickup was modified concurrently")
	}
	return err
}

func (s *Service) publish(ctx context.Context, actor domain.Actor, op string, from domain.PickupStatus, p domain.Pickup) {
	if s.events == nil {
		return
	}
	e := domain.PickupEvent{
		PickupID:   p.ID,
		Operation:  op,
		FromStatus: from,
		ToStatus:   p.Status,
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		At:         s.now(),
	}
	if op == OpHardDelete {
		e.ToStatus = ""
	}
	if err := s.events.Publish(ctx, e); err != nil {
		s.logger.Warn("publish pickup event failed",
			logx.String("pickup_id", p.ID),
			logx.String("operation", op),
			logx.Err(err),
		)
	}
}

func (s *Service) observe(op string, err error) {
	if s.transitions == nil {
		return
	}
	s.transitions.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	switch apperr.KindOf(err) {
	case apperr.KindConflict:
		return "conflict"
	case apperr.KindForbidden, apperr.KindNotFound:
		return "denied"
	case apperr.KindBadRequest:
		return "invalid"
	default:
		return "error"
	}
}
