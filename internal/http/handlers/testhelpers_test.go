package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"service-pickup/internal/domain"
	"service-pickup/internal/http/handlers"
	"service-pickup/internal/http/middleware"
	"service-pickup/internal/logx"
)

var (
	userU   = domain.Actor{ID: "user-1", Role: domain.RoleUser}
	driverD = domain.Actor{ID: "driver-1", Role: domain.RoleDriver}
	admin   = domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}
)

func testDispatcher() *handlers.Dispatcher {
	return handlers.NewDispatcher(logx.Nop())
}

// newRequest builds a request carrying actor and chi URL params given as
// name/value pairs. A zero actor means an anonymous request.
func newRequest(method, target, body string, actor domain.Actor, params ...string) *http.Request {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)

	ctx := req.Context()
	if actor.ID != "" {
		ctx = middleware.WithActor(ctx, actor)
	}
	if len(params) > 0 {
		rc := chi.NewRouteContext()
		for i := 0; i+1 < len(params); i += 2 {
			rc.URLParams.Add(params[i], params[i+1])
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rc)
	}
	return req.WithContext(ctx)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"details"`
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body
}
