package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"service-pickup/internal/http/handlers"
	mw "service-pickup/internal/http/middleware"
	"service-pickup/internal/logx"
)

// Options configures the HTTP stack.
type Options struct {
	Logger         logx.Logger
	JWTSecret      []byte
	AllowedOrigins []string
	RequestTimeout time.Duration
	// Metrics serves GET /metrics. Defaults to the default prometheus registry.
	Metrics http.Handler
	// RateLimit wraps the /v1 routes when set.
	RateLimit func(http.Handler) http.Handler
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(opts Options, h *handlers.Handlers, pickups *handlers.PickupHandler, accounts *handlers.AccountHandler) http.Handler {
	if opts.Logger == nil {
		opts.Logger = logx.Nop()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 5 * time.Second
	}
	if opts.Metrics == nil {
		opts.Metrics = promhttp.Handler()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Authenticate(opts.JWTSecret, opts.Logger))
	r.Use(mw.Observability(opts.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opts.RequestTimeout))

	r.Get("/ping", h.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.HealthcheckHead))
	r.Method(http.MethodGet, "/metrics", opts.Metrics)

	r.Route("/v1", func(r chi.Router) {
		if opts.RateLimit != nil {
			r.Use(opts.RateLimit)
		}

		r.Route("/pickups", func(r chi.Router) {
			r.Post("/", pickups.Create)
			r.Get("/", pickups.List)
			r.Get("/available", pickups.ListAvailable)
			r.Get("/{pickupId}", pickups.Get)
			r.Put("/{pickupId}", pickups.Update)
			r.Delete("/{pickupId}", pickups.Delete)
			r.Post("/{pickupId}/accept", pickups.Accept)
			r.Post("/{pickupId}/cancel-acceptance", pickups.CancelAcceptance)
		})

		r.Post("/users", accounts.CreateUser)
		r.Get("/users/{userId}", accounts.GetUser)
		r.Put("/users/{userId}", accounts.UpdateUser)
		r.Delete("/users/{userId}", accounts.DeleteUser)

		r.Post("/drivers", accounts.CreateDriver)
		r.Get("/drivers/{driverId}", accounts.GetDriver)
		r.Put("/drivers/{driverId}", accounts.UpdateDriver)
		r.Delete("/drivers/{driverId}", accounts.DeleteDriver)
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	c := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	})
	return c.Handler(r)
}
