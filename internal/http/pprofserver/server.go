package pprofserver

import (
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Config stores pprof server settings.
type Config struct {
	User string
	Pass string
}

// Handler serves net/http/pprof under /debug/pprof/. Loopback clients are
// let through; everyone else needs basic auth with the configured pair.
func Handler(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(localOrBasicAuth(cfg))
	r.Mount("/debug", middleware.Profiler())
	return r
}

func localOrBasicAuth(cfg Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		var guarded http.Handler = http.HandlerFunc(deny)
		if cfg.User != "" && cfg.Pass != "" {
			guarded = middleware.BasicAuth("pprof", map[string]string{cfg.User: cfg.Pass})(next)
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isLoopback(r.RemoteAddr) {
				next.ServeHTTP(w, r)
				return
			}
			guarded.ServeHTTP(w, r)
		})
	}
}

func deny(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("WWW-Authenticate", `Basic realm="pprof"`)
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

func isLoopback(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	ip := net.ParseIP(strings.TrimSpace(host))
	return ip != nil && ip.IsLoopback()
}
