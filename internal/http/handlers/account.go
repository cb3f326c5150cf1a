package handlers

import (
	"context"
	"net/http"

	"service-pickup/internal/domain"
)

// AccountHandler serves HTTP endpoints for user and driver accounts.
type AccountHandler struct {
	createUser   http.HandlerFunc
	getUser      http.HandlerFunc
	updateUser   http.HandlerFunc
	deleteUser   http.HandlerFunc
	createDriver http.HandlerFunc
	getDriver    http.HandlerFunc
	updateDriver http.HandlerFunc
	deleteDriver http.HandlerFunc
}

// NewAccountHandler builds the account operations on top of d.
func NewAccountHandler(d *Dispatcher, uc AccountUsecase) *AccountHandler {
	return &AccountHandler{
		createUser: Handle(d, Operation[createUserRequest, userDTO]{
			Name:  "createUser",
			Roles: rolesAdmin,
			Bind: func(w http.ResponseWriter, r *http.Request, in *createUserRequest) error {
				return decodeBody(w, r, in)
			},
			Run: func(ctx context.Context, actor domain.Actor, in createUserRequest) (userDTO, error) {
				u, err := uc.CreateUser(ctx, actor, in.toModel())
				if err != nil {
					return userDTO{}, err
				}
				return userToResponse(*u), nil
			},
			Status: http.StatusCreated,
		}),
		getUser: Handle(d, Operation[accountIDRequest, userDTO]{
			Name:  "getUser",
			Roles: rolesUserAdmin,
			Bind:  bindAccountID("userId"),
			Run: func(ctx context.Context, actor domain.Actor, in accountIDRequest) (userDTO, error) {
				u, err := uc.GetUser(ctx, actor, in.ID)
				if err != nil {
					return userDTO{}, err
				}
				return userToResponse(*u), nil
			},
		}),
		updateUser: Handle(d, Operation[updateUserRequest, userDTO]{
			Name:  "updateUser",
			Roles: rolesUserAdmin,
			Bind: func(w http.ResponseWriter, r *http.Request, in *updateUserRequest) error {
				id, err := pathParam(r, "userId")
				if err != nil {
					return err
				}
				if err := decodeBody(w, r, in); err != nil {
					return err
				}
				in.ID = id
				return nil
			},
			Run: func(ctx context.Context, actor domain.Actor, in updateUserRequest) (userDTO, error) {
				u, err := uc.UpdateUser(ctx, actor, in.toModel())
				if err != nil {
					return userDTO{}, err
				}
				return userToResponse(*u), nil
			},
		}),
		deleteUser: Handle(d, Operation[accountIDRequest, struct{}]{
			Name:  "deleteUser",
			Roles: rolesUserAdmin,
			Bind:  bindAccountID("userId"),
			Run: func(ctx context.Context, actor domain.Actor, in accountIDRequest) (struct{}, error) {
				return struct{}{}, uc.DeleteUser(ctx, actor, in.ID)
			},
			Status: http.StatusNoContent,
		}),

		createDriver: Handle(d, Operation[createDriverRequest, driverDTO]{
			Name:  "createDriver",
			Roles: rolesAdmin,
			Bind: func(w http.ResponseWriter, r *http.Request, in *createDriverRequest) error {
				return decodeBody(w, r, in)
			},
			Run: func(ctx context.Context, actor domain.Actor, in createDriverRequest) (driverDTO, error) {
				dr, err := uc.CreateDriver(ctx, actor, in.toModel())
				if err != nil {
					return driverDTO{}, err
				}
				return driverToResponse(*dr), nil
			},
			Status: http.StatusCreated,
		}),
		getDriver: Handle(d, Operation[accountIDRequest, driverDTO]{
			Name:  "getDriver",
			Roles: rolesDriver,
			Bind:  bindAccountID("driverId"),
			Run: func(ctx context.Context, actor domain.Actor, in accountIDRequest) (driverDTO, error) {
				dr, err := uc.GetDriver(ctx, actor, in.ID)
				if err != nil {
					return driverDTO{}, err
				}
				return driverToResponse(*dr), nil
			},
		}),
		updateDriver: Handle(d, Operation[updateDriverRequest, driverDTO]{
			Name:  "updateDriver",
			Roles: rolesDriver,
			Bind: func(w http.ResponseWriter, r *http.Request, in *updateDriverRequest) error {
				id, err := pathParam(r, "driverId")
				if err != nil {
					return err
				}
				if err := decodeBody(w, r, in); err != nil {
					return err
				}
				in.ID = id
				return nil
			},
			Run: func(ctx context.Context, actor domain.Actor, in updateDriverRequest) (driverDTO, error) {
				dr, err := uc.UpdateDriver(ctx, actor, in.toModel())
				if err != nil {
					return driverDTO{}, err
				}
				return driverToResponse(*dr), nil
			},
		}),
		deleteDriver: Handle(d, Operation[accountIDRequest, struct{}]{
			Name:  "deleteDriver",
			Roles: rolesDriver,
			Bind:  bindAccountID("driverId"),
			Run: func(ctx context.Context, actor domain.Actor, in accountIDRequest) (struct{}, error) {
				return struct{}{}, uc.DeleteDriver(ctx, actor, in.ID)
			},
			Status: http.StatusNoContent,
		}),
	}
}

// CreateUser handles POST /v1/users.
func (h *AccountHandler) CreateUser(w http.ResponseWriter, r *http.Request) { h.createUser(w, r) }

// GetUser handles GET /v1/users/{userId}.
func (h *AccountHandler) GetUser(w http.ResponseWriter, r *http.Request) { h.getUser(w, r) }

// UpdateUser handles PUT /v1/users/{userId}.
func (h *AccountHandler) UpdateUser(w http.ResponseWriter, r *http.Request) { h.updateUser(w, r) }

// DeleteUser handles DELETE /v1/users/{userId}.
func (h *AccountHandler) DeleteUser(w http.ResponseWriter, r *http.Request) { h.deleteUser(w, r) }

// CreateDriver handles POST /v1/drivers.
func (h *AccountHandler) CreateDriver(w http.ResponseWriter, r *http.Request) { h.createDriver(w, r) }

// GetDriver handles GET /v1/drivers/{driverId}.
func (h *AccountHandler) GetDriver(w http.ResponseWriter, r *http.Request) { h.getDriver(w, r) }

// UpdateDriver handles PUT /v1/drivers/{driverId}.
func (h *AccountHandler) UpdateDriver(w http.ResponseWriter, r *http.Request) { h.updateDriver(w, r) }

// DeleteDriver handles DELETE /v1/drivers/{driverId}.
func (h *AccountHandler) DeleteDriver(w http.ResponseWriter, r *http.Request) { h.deleteDriver(w, r) }

func bindAccountID(param string) func(http.ResponseWriter, *http.Request, *accountIDRequest) error {
	return func(_ http.ResponseWriter, r *http.Request, in *accountIDRequest) error {
		id, err := pathParam(r, param)
		if err != nil {
			return err
		}
		in.ID = id
		return nil
	}
}
