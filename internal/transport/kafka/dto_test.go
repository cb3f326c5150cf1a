package kafka_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"service-pickup/internal/domain"
	"service-pickup/internal/transport/kafka"
)

func TestToDomain_TrimsAndCopiesFields(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	got := kafka.ToDomain(kafka.EventDTO{
		PickupID:   "  p-1  ",
		Operation:  " cancel_acceptance ",
		FromStatus: "accepted",
		ToStatus:   " cancelled",
		ActorID:    "d-1",
		ActorRole:  "driver",
		At:         ts,
	})

	require.Equal(t, domain.PickupEvent{
		PickupID:   "p-1",
		Operation:  "cancel_acceptance",
		FromStatus: domain.StatusAccepted,
		ToStatus:   domain.StatusCancelled,
		ActorID:    "d-1",
		ActorRole:  domain.RoleDriver,
		At:         ts,
	}, got)
}

func TestFromDomain_HardDeleteOmitsToStatus(t *testing.T) {
	t.Parallel()

	dto := kafka.FromDomain(domain.PickupEvent{
		PickupID:   "p-1",
		Operation:  "hard_delete",
		FromStatus: domain.StatusCancelled,
		ActorID:    "a-1",
		ActorRole:  domain.RoleAdmin,
		At:         time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600)),
	})

	require.Empty(t, dto.ToStatus)
	require.Equal(t, time.UTC, dto.At.Location())
}
