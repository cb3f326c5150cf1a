package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"service-pickup/internal/domain"
	"service-pickup/internal/http/handlers"
	"service-pickup/internal/http/middleware"
	"service-pickup/internal/http/middleware/ratelimit"
	"service-pickup/internal/http/router"
	"service-pickup/internal/logx"
	"service-pickup/internal/service/pickup"
)

var secret = []byte("router-secret")

type fakePickups struct {
	handlers.PickupUsecase
	gotID string
}

func (f *fakePickups) Get(_ context.Context, _ domain.Actor, id string) (*domain.Pickup, error) {
	f.gotID = id
	return &domain.Pickup{ID: id, Status: domain.StatusAvailable}, nil
}

func (f *fakePickups) ListAvailable(context.Context, domain.Actor) ([]domain.Pickup, error) {
	return []domain.Pickup{{ID: "p-av", Status: domain.StatusAvailable}}, nil
}

func (f *fakePickups) Create(_ context.Context, actor domain.Actor, _ pickup.CreateInput) (*domain.Pickup, error) {
	return &domain.Pickup{ID: "p-new", UserID: actor.ID, Status: domain.StatusPending}, nil
}

func newServer(t *testing.T, origins ...string) (http.Handler, *fakePickups) {
	t.Helper()
	logger := logx.Nop()
	d := handlers.NewDispatcher(logger)
	fp := &fakePickups{}
	h := router.New(
		router.Options{Logger: logger, JWTSecret: secret, AllowedOrigins: origins},
		handlers.New(logger),
		handlers.NewPickupHandler(d, fp),
		handlers.NewAccountHandler(d, nil),
	)
	return h, fp
}

func bearer(t *testing.T, a domain.Actor) string {
	t.Helper()
	tok, err := middleware.IssueToken(secret, a, time.Minute)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestRouter_Ping(t *testing.T) {
	t.Parallel()

	h, _ := newServer(t)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"message":"pong"}`, rr.Body.String())
}

func TestRouter_PickupRoutes(t *testing.T) {
	t.Parallel()

	h, fp := newServer(t)
	driver := domain.Actor{ID: "d-1", Role: domain.RoleDriver}

	req := httptest.NewRequest(http.MethodGet, "/v1/pickups/available", nil)
	req.Header.Set("Authorization", bearer(t, driver))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "p-av")

	req = httptest.NewRequest(http.MethodGet, "/v1/pickups/p-42", nil)
	req.Header.Set("Authorization", bearer(t, driver))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "p-42", fp.gotID)
}

func TestRouter_CreateRequiresToken(t *testing.T) {
	t.Parallel()

	h, _ := newServer(t)
	body := `{"location":"x","estimatedWeight":5,"wasteType":"green","requestedTime":"2023-04-01T10:00:00Z"}`

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/pickups", strings.NewReader(body)))
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.JSONEq(t, `{"code":"Unauthorized","message":"Missing or invalid identity claims"}`, rr.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/v1/pickups", strings.NewReader(body))
	req.Header.Set("Authorization", bearer(t, domain.Actor{ID: "u-1", Role: domain.RoleUser}))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	t.Parallel()

	h, _ := newServer(t)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v2/nothing", nil))

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Contains(t, rr.Body.String(), `"code":"NotFound"`)
}

func TestRouter_CORS(t *testing.T) {
	t.Parallel()

	h, _ := newServer(t, "https://app.example.com")

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, "https://app.example.com", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/v1/pickups", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	h, _ := newServer(t)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "http_requests_total")
}

func TestRouter_RateLimitAppliesToV1Only(t *testing.T) {
	t.Parallel()

	logger := logx.Nop()
	d := handlers.NewDispatcher(logger)
	limiter := ratelimit.NewTokenBucket(nil, ratelimit.Config{Rate: 0.001, Burst: 1})
	h := router.New(
		router.Options{
			Logger:    logger,
			JWTSecret: secret,
			RateLimit: ratelimit.New(logger, nil, limiter, middleware.CallerKey).Handler(),
		},
		handlers.New(logger),
		handlers.NewPickupHandler(d, &fakePickups{}),
		handlers.NewAccountHandler(d, nil),
	)

	driver := bearer(t, domain.Actor{ID: "d-1", Role: domain.RoleDriver})
	call := func(target, auth string) int {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	require.Equal(t, http.StatusOK, call("/v1/pickups/available", driver))
	require.Equal(t, http.StatusTooManyRequests, call("/v1/pickups/available", driver))

	other := bearer(t, domain.Actor{ID: "d-2", Role: domain.RoleDriver})
	require.Equal(t, http.StatusOK, call("/v1/pickups/available", other))

	require.Equal(t, http.StatusOK, call("/ping", ""))
	require.Equal(t, http.StatusOK, call("/ping", ""))
}
