package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"service-pickup/internal/apperr"
	"service-pickup/internal/domain"
	"service-pickup/internal/http/handlers"
)

type stubAccountUsecase struct {
	createUserFn   func(ctx context.Context, actor domain.Actor, u domain.User) (*domain.User, error)
	getUserFn      func(ctx context.Context, actor domain.Actor, id string) (*domain.User, error)
	updateUserFn   func(ctx context.Context, actor domain.Actor, u domain.PartialUserUpdate) (*domain.User, error)
	deleteUserFn   func(ctx context.Context, actor domain.Actor, id string) error
	createDriverFn func(ctx context.Context, actor domain.Actor, d domain.Driver) (*domain.Driver, error)
	getDriverFn    func(ctx context.Context, actor domain.Actor, id string) (*domain.Driver, error)
	updateDriverFn func(ctx context.Context, actor domain.Actor, d domain.PartialDriverUpdate) (*domain.Driver, error)
	deleteDriverFn func(ctx context.Context, actor domain.Actor, id string) error
}

func (s *stubAccountUsecase) CreateUser(ctx context.Context, actor domain.Actor, u domain.User) (*domain.User, error) {
	return s.createUserFn(ctx, actor, u)
}

func (s *stubAccountUsecase) GetUser(ctx context.Context, actor domain.Actor, id string) (*domain.User, error) {
	return s.getUserFn(ctx, actor, id)
}

func (s *stubAccountUsecase) UpdateUser(ctx context.Context, actor domain.Actor, u domain.PartialUserUpdate) (*domain.User, error) {
	return s.updateUserFn(ctx, actor, u)
}

func (s *stubAccountUsecase) DeleteUser(ctx context.Context, actor domain.Actor, id string) error {
	return s.deleteUserFn(ctx, actor, id)
}

func (s *stubAccountUsecase) CreateDriver(ctx context.Context, actor domain.Actor, d domain.Driver) (*domain.Driver, error) {
	return s.createDriverFn(ctx, actor, d)
}

func (s *stubAccountUsecase) GetDriver(ctx context.Context, actor domain.Actor, id string) (*domain.Driver, error) {
	return s.getDriverFn(ctx, actor, id)
}

func (s *stubAccountUsecase) UpdateDriver(ctx context.Context, actor domain.Actor, d domain.PartialDriverUpdate) (*domain.Driver, error) {
	return s.updateDriverFn(ctx, actor, d)
}

func (s *stubAccountUsecase) DeleteDriver(ctx context.Context, actor domain.Actor, id string) error {
	return s.deleteDriverFn(ctx, actor, id)
}

func TestAccountHandler_CreateUser(t *testing.T) {
	t.Parallel()

	var got domain.User
	uc := &stubAccountUsecase{
		createUserFn: func(_ context.Context, _ domain.Actor, u domain.User) (*domain.User, error) {
			got = u
			u.ID = "u-9"
			return &u, nil
		},
	}
	h := handlers.NewAccountHandler(testDispatcher(), uc)

	rr := httptest.NewRecorder()
	h.CreateUser(rr, newRequest(http.MethodPost, "/v1/users", `{"email":"a@b.io","name":" Ann "}`, admin))

	require.Equal(t, http.StatusCreated, rr.Code)
	require.Equal(t, "Ann", got.Name)

	var resp struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Equal(t, "u-9", resp.ID)
	require.Equal(t, "a@b.io", resp.Email)
}

func TestAccountHandler_CreateUser_Rejected(t *testing.T) {
	t.Parallel()

	h := handlers.NewAccountHandler(testDispatcher(), &stubAccountUsecase{
		createUserFn: func(context.Context, domain.Actor, domain.User) (*domain.User, error) {
			require.FailNow(t, "CreateUser must not be called")
			return nil, nil
		},
	})

	rr := httptest.NewRecorder()
	h.CreateUser(rr, newRequest(http.MethodPost, "/v1/users", `{"email":"a@b.io","name":"Ann"}`, userU))
	require.Equal(t, http.StatusForbidden, rr.Code)

	rr = httptest.NewRecorder()
	h.CreateUser(rr, newRequest(http.MethodPost, "/v1/users", `{"email":"nope","name":"Ann"}`, admin))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, decodeError(t, rr).Message, "email")
}

func TestAccountHandler_GetUser(t *testing.T) {
	t.Parallel()

	uc := &stubAccountUsecase{
		getUserFn: func(_ context.Context, actor domain.Actor, id string) (*domain.User, error) {
			if actor.ID != id && !actor.IsAdmin() {
				return nil, apperr.Forbidden("Not allowed to access this account")
			}
			return &domain.User{ID: id, Email: "a@b.io", Name: "Ann"}, nil
		},
	}
	h := handlers.NewAccountHandler(testDispatcher(), uc)

	rr := httptest.NewRecorder()
	h.GetUser(rr, newRequest(http.MethodGet, "/v1/users/user-1", "", userU, "userId", "user-1"))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.GetUser(rr, newRequest(http.MethodGet, "/v1/users/other", "", userU, "userId", "other"))
	require.Equal(t, http.StatusForbidden, rr.Code)

	rr = httptest.NewRecorder()
	h.GetUser(rr, newRequest(http.MethodGet, "/v1/users/user-1", "", driverD, "userId", "user-1"))
	require.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAccountHandler_UpdateUser(t *testing.T) {
	t.Parallel()

	var got domain.PartialUserUpdate
	uc := &stubAccountUsecase{
		updateUserFn: func(_ context.Context, _ domain.Actor, u domain.PartialUserUpdate) (*domain.User, error) {
			got = u
			return &domain.User{ID: u.ID, Name: *u.Name}, nil
		},
	}
	h := handlers.NewAccountHandler(testDispatcher(), uc)

	rr := httptest.NewRecorder()
	h.UpdateUser(rr, newRequest(http.MethodPut, "/v1/users/user-1", `{"name":"Bob"}`, userU, "userId", "user-1"))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "user-1", got.ID)
	require.NotNil(t, got.Name)
	require.Equal(t, "Bob", *got.Name)
	require.Nil(t, got.Phone)
}

func TestAccountHandler_DeleteUser(t *testing.T) {
	t.Parallel()

	uc := &stubAccountUsecase{
		deleteUserFn: func(_ context.Context, _ domain.Actor, id string) error {
			if id == "gone" {
				return apperr.ErrNotFound
			}
			return nil
		},
	}
	h := handlers.NewAccountHandler(testDispatcher(), uc)

	rr := httptest.NewRecorder()
	h.DeleteUser(rr, newRequest(http.MethodDelete, "/v1/users/user-1", "", admin, "userId", "user-1"))
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	h.DeleteUser(rr, newRequest(http.MethodDelete, "/v1/users/gone", "", admin, "userId", "gone"))
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAccountHandler_Drivers(t *testing.T) {
	t.Parallel()

	uc := &stubAccountUsecase{
		createDriverFn: func(_ context.Context, _ domain.Actor, d domain.Driver) (*domain.Driver, error) {
			d.ID = "d-7"
			return &d, nil
		},
		getDriverFn: func(_ context.Context, _ domain.Actor, id string) (*domain.Driver, error) {
			return &domain.Driver{ID: id, Name: "Dan"}, nil
		},
		updateDriverFn: func(_ context.Context, _ domain.Actor, d domain.PartialDriverUpdate) (*domain.Driver, error) {
			return &domain.Driver{ID: d.ID, VehicleType: *d.VehicleType}, nil
		},
		deleteDriverFn: func(context.Context, domain.Actor, string) error {
			return apperr.Conflict("driver has active pickups")
		},
	}
	h := handlers.NewAccountHandler(testDispatcher(), uc)

	rr := httptest.NewRecorder()
	h.CreateDriver(rr, newRequest(http.MethodPost, "/v1/drivers", `{"email":"d@b.io","name":"Dan","vehicleType":"truck"}`, admin))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = httptest.NewRecorder()
	h.GetDriver(rr, newRequest(http.MethodGet, "/v1/drivers/driver-1", "", driverD, "driverId", "driver-1"))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.GetDriver(rr, newRequest(http.MethodGet, "/v1/drivers/driver-1", "", userU, "driverId", "driver-1"))
	require.Equal(t, http.StatusForbidden, rr.Code)

	rr = httptest.NewRecorder()
	h.UpdateDriver(rr, newRequest(http.MethodPut, "/v1/drivers/driver-1", `{"vehicleType":"van"}`, driverD, "driverId", "driver-1"))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"vehicleType":"van"`)

	rr = httptest.NewRecorder()
	h.DeleteDriver(rr, newRequest(http.MethodDelete, "/v1/drivers/driver-1", "", admin, "driverId", "driver-1"))
	require.Equal(t, http.StatusConflict, rr.Code)
}
