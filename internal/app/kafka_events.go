package app

import (
	"context"

	"service-pickup/internal/apperr"
	"service-pickup/internal/domain"
	"service-pickup/internal/transport/kafka"
)

type auditHandler interface {
	Handle(ctx context.Context, e domain.PickupEvent) error
}

// makeAuditKafka adapts the audit recorder to the consumer. Events the
// recorder rejects as invalid are skipped instead of retried.
func makeAuditKafka(h auditHandler) kafka.HandleFunc {
	return func(ctx context.Context, e domain.PickupEvent) error {
		if err := h.Handle(ctx, e); err != nil {
			if apperr.KindOf(err) == apperr.KindBadRequest {
				return kafka.Skip(err)
			}
			return err
		}
		return nil
	}
}
