package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"service-pickup/internal/apperr"
	"service-pickup/internal/domain"
)

var (
	rolesAny       = []domain.Role{domain.RoleUser, domain.RoleDriver, domain.RoleAdmin}
	rolesUserAdmin = []domain.Role{domain.RoleUser, domain.RoleAdmin}
	rolesDriver    = []domain.Role{domain.RoleDriver, domain.RoleAdmin}
	rolesAdmin     = []domain.Role{domain.RoleAdmin}
)

// PickupHandler serves HTTP endpoints for pickup resources.
type PickupHandler struct {
	create           http.HandlerFunc
	list             http.HandlerFunc
	listAvailable    http.HandlerFunc
	get              http.HandlerFunc
	update           http.HandlerFunc
	remove           http.HandlerFunc
	accept           http.HandlerFunc
	cancelAcceptance http.HandlerFunc
}

// NewPickupHandler builds every pickup operation on top of d.
func NewPickupHandler(d *Dispatcher, uc PickupUsecase) *PickupHandler {
	return &PickupHandler{
		create: Handle(d, Operation[createPickupRequest, pickupDTO]{
			Name:  "createPickup",
			Roles: rolesUserAdmin,
			Bind: func(w http.ResponseWriter, r *http.Request, in *createPickupRequest) error {
				return decodeBody(w, r, in)
			},
			Run: func(ctx context.Context, actor domain.Actor, in createPickupRequest) (pickupDTO, error) {
				p, err := uc.Create(ctx, actor, in.toInput())
				if err != nil {
					return pickupDTO{}, err
				}
				return pickupToResponse(*p), nil
			},
			Status: http.StatusCreated,
		}),

		list: Handle(d, Operation[domain.ListFilter, pickupListResponse]{
			Name:  "listPickups",
			Roles: rolesAdmin,
			Bind: func(_ http.ResponseWriter, r *http.Request, in *domain.ListFilter) error {
				f, err := parseListFilter(r.URL.Query())
				if err != nil {
					return err
				}
				*in = f
				return nil
			},
			Run: func(ctx context.Context, actor domain.Actor, in domain.ListFilter) (pickupListResponse, error) {
				page, err := uc.List(ctx, actor, in)
				if err != nil {
					return pickupListResponse{}, err
				}
				return pickupListResponse{Pickups: pickupsToResponse(page.Pickups), NextCursor: page.NextCursor}, nil
			},
		}),

		listAvailable: Handle(d, Operation[struct{}, pickupListResponse]{
			Name:  "listAvailablePickups",
			Roles: rolesDriver,
			Run: func(ctx context.Context, actor domain.Actor, _ struct{}) (pickupListResponse, error) {
				list, err := uc.ListAvailable(ctx, actor)
				if err != nil {
					return pickupListResponse{}, err
				}
				return pickupListResponse{Pickups: pickupsToResponse(list)}, nil
			},
		}),

		get: Handle(d, Operation[pickupIDRequest, pickupDTO]{
			Name:  "getPickup",
			Roles: rolesAny,
			Bind:  bindPickupID,
			Run: func(ctx context.Context, actor domain.Actor, in pickupIDRequest) (pickupDTO, error) {
				return pickupResult(uc.Get(ctx, actor, in.ID))
			},
		}),

		update: Handle(d, Operation[updatePickupRequest, pickupDTO]{
			Name:  "updatePickup",
			Roles: rolesUserAdmin,
			Bind: func(w http.ResponseWriter, r *http.Request, in *updatePickupRequest) error {
				id, err := pathParam(r, "pickupId")
				if err != nil {
					return err
				}
				if err := decodeBody(w, r, in); err != nil {
					return err
				}
				in.ID = id
				return nil
			},
			Run: func(ctx context.Context, actor domain.Actor, in updatePickupRequest) (pickupDTO, error) {
				return pickupResult(uc.Update(ctx, actor, in.ID, in.toInput()))
			},
		}),

		remove: Handle(d, Operation[deletePickupRequest, struct{}]{
			Name:  "deletePickup",
			Roles: rolesUserAdmin,
			Bind: func(_ http.ResponseWriter, r *http.Request, in *deletePickupRequest) error {
				id, err := pathParam(r, "pickupId")
				if err != nil {
					return err
				}
				hard, err := parseFlag(r.URL.Query(), "hardDelete")
				if err != nil {
					return err
				}
				in.ID, in.Hard = id, hard
				return nil
			},
			Run: func(ctx context.Context, actor domain.Actor, in deletePickupRequest) (struct{}, error) {
				return struct{}{}, uc.Delete(ctx, actor, in.ID, in.Hard)
			},
			Status: http.StatusNoContent,
		}),

		accept: Handle(d, Operation[pickupIDRequest, pickupDTO]{
			Name:  "acceptPickup",
			Roles: rolesDriver,
			Bind:  bindPickupID,
			Run: func(ctx context.Context, actor domain.Actor, in pickupIDRequest) (pickupDTO, error) {
				return pickupResult(uc.Accept(ctx, actor, in.ID))
			},
		}),

		cancelAcceptance: Handle(d, Operation[pickupIDRequest, pickupDTO]{
			Name:  "cancelAcceptance",
			Roles: rolesAny,
			Bind:  bindPickupID,
			Run: func(ctx context.Context, actor domain.Actor, in pickupIDRequest) (pickupDTO, error) {
				return pickupResult(uc.CancelAcceptance(ctx, actor, in.ID))
			},
		}),
	}
}

// Create handles POST /v1/pickups.
func (h *PickupHandler) Create(w http.ResponseWriter, r *http.Request) { h.create(w, r) }

// List handles GET /v1/pickups.
func (h *PickupHandler) List(w http.ResponseWriter, r *http.Request) { h.list(w, r) }

// ListAvailable handles GET /v1/pickups/available.
func (h *PickupHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	h.listAvailable(w, r)
}

// Get handles GET /v1/pickups/{pickupId}.
func (h *PickupHandler) Get(w http.ResponseWriter, r *http.Request) { h.get(w, r) }

// Update handles PUT /v1/pickups/{pickupId}.
func (h *PickupHandler) Update(w http.ResponseWriter, r *http.Request) { h.update(w, r) }

// Delete handles DELETE /v1/pickups/{pickupId}.
func (h *PickupHandler) Delete(w http.ResponseWriter, r *http.Request) { h.remove(w, r) }

// Accept handles POST /v1/pickups/{pickupId}/accept.
func (h *PickupHandler) Accept(w http.ResponseWriter, r *http.Request) { h.accept(w, r) }

// CancelAcceptance handles POST /v1/pickups/{pickupId}/cancel-acceptance.
func (h *PickupHandler) CancelAcceptance(w http.ResponseWriter, r *http.Request) {
	h.cancelAcceptance(w, r)
}

func bindPickupID(_ http.ResponseWriter, r *http.Request, in *pickupIDRequest) error {
	id, err := pathParam(r, "pickupId")
	if err != nil {
		return err
	}
	in.ID = id
	return nil
}

func pickupResult(p *domain.Pickup, err error) (pickupDTO, error) {
	if err != nil {
		return pickupDTO{}, err
	}
	return pickupToResponse(*p), nil
}

// parseListFilter reads status, limit, cursor, startRequestedTime,
// endRequestedTime and order from the query string.
func parseListFilter(q url.Values) (domain.ListFilter, error) {
	var f domain.ListFilter

	for _, raw := range q["status"] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			s := domain.PickupStatus(part)
			if !s.Valid() {
				return f, apperr.BadRequest("status", "unknown status "+part)
			}
			f.Statuses = append(f.Statuses, s)
		}
	}

	if s := q.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return f, apperr.BadRequest("limit", "must be a positive integer")
		}
		f.Limit = v
	}

	f.Cursor = q.Get("cursor")

	var err error
	if f.Start, err = parseTime(q, "startRequestedTime"); err != nil {
		return f, err
	}
	if f.End, err = parseTime(q, "endRequestedTime"); err != nil {
		return f, err
	}

	switch strings.ToLower(q.Get("order")) {
	case "", "asc":
	case "desc":
		f.Reverse = true
	default:
		return f, apperr.BadRequest("order", "must be asc or desc")
	}
	return f, nil
}

func parseTime(q url.Values, name string) (*time.Time, error) {
	s := q.Get(name)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, apperr.BadRequest(name, "must be an RFC3339 timestamp")
	}
	t = t.UTC()
	return &t, nil
}

// parseFlag treats a bare "?name" as true.
func parseFlag(q url.Values, name string) (bool, error) {
	vals, ok := q[name]
	if !ok {
		return false, nil
	}
	if len(vals) == 0 || vals[0] == "" {
		return true, nil
	}
	v, err := strconv.ParseBool(vals[0])
	if err != nil {
		return false, apperr.BadRequest(name, "must be a boolean")
	}
	return v, nil
}
