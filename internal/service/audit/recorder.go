package audit

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"service-pickup/internal/apperr"
	"service-pickup/internal/domain"
	"service-pickup/internal/logx"
	"service-pickup/internal/service/pickup"
)

var knownOperations = map[string]struct{}{
	pickup.OpCreate:           {},
	pickup.OpUpdate:           {},
	pickup.OpPublish:          {},
	pickup.OpAccept:           {},
	pickup.OpCancelAcceptance: {},
	pickup.OpSoftDelete:       {},
	pickup.OpHardDelete:       {},
}

// Recorder writes consumed pickup events to the audit log.
type Recorder struct {
	logger   logx.Logger
	consumed *prometheus.CounterVec
}

// NewRecorder creates a Recorder. consumed may be nil.
func NewRecorder(logger logx.Logger, consumed *prometheus.CounterVec) *Recorder {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Recorder{logger: logger, consumed: consumed}
}

// Handle validates and records one event. Events that can never be recorded
// fail with a BadRequest error.
func (r *Recorder) Handle(ctx context.Context, e domain.PickupEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := knownOperations[e.Operation]; !ok {
		return apperr.BadRequest("operation", "unknown operation "+e.Operation)
	}
	if e.ToStatus != "" && !e.ToStatus.Valid() {
		return apperr.BadRequest("toStatus", "unknown status "+string(e.ToStatus))
	}
	if e.ToStatus == "" && e.Operation != pickup.OpHardDelete {
		return apperr.BadRequest("toStatus", "is required")
	}

	r.logger.Info("pickup transition",
		logx.String("pickup_id", e.PickupID),
		logx.String("operation", e.Operation),
		logx.String("from_status", string(e.FromStatus)),
		logx.String("to_status", string(e.ToStatus)),
		logx.String("actor_id", e.ActorID),
		logx.String("actor_role", string(e.ActorRole)),
		logx.Time("at", e.At),
	)
	if r.consumed != nil {
		r.consumed.WithLabelValues(e.Operation).Inc()
	}
	return nil
}
