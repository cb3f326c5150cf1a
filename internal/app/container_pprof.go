package app

import (
	"net/http"
	"time"

	"go.uber.org/dig"

	"service-pickup/internal/config"
	"service-pickup/internal/http/pprofserver"
	"service-pickup/internal/logx"
)

type pprofOut struct {
	dig.Out

	Server *http.Server `name:"pprof_server"`
}

// newPprofServer yields a nil server when PPROF_ADDR is unset.
func newPprofServer(cfg *config.Config, logger logx.Logger) pprofOut {
	if cfg.Pprof.Addr == "" {
		return pprofOut{}
	}
	if cfg.Pprof.User == "" || cfg.Pprof.Pass == "" {
		logger.Warn("pprof credentials are empty, only loopback clients are served")
	}
	return pprofOut{Server: &http.Server{
		Addr:              cfg.Pprof.Addr,
		Handler:           pprofserver.Handler(pprofserver.Config{User: cfg.Pprof.User, Pass: cfg.Pprof.Pass}),
		ReadHeaderTimeout: 5 * time.Second,
	}}
}
