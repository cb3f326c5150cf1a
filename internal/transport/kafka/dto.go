package kafka

import (
	"strings"
	"time"

	"service-pickup/internal/domain"
)

// EventDTO is the wire form of domain.PickupEvent.
type EventDTO struct {
	PickupID   string    `json:"pickupId"`
	Operation  string    `json:"operation"`
	FromStatus string    `json:"fromStatus,omitempty"`
	ToStatus   string    `json:"toStatus,omitempty"`
	ActorID    string    `json:"actorId"`
	ActorRole  string    `json:"actorRole"`
	At         time.Time `json:"at"`
}

// FromDomain converts domain.PickupEvent to EventDTO.
func FromDomain(e domain.PickupEvent) EventDTO {
	return EventDTO{
		PickupID:   e.PickupID,
		Operation:  e.Operation,
		FromStatus: string(e.FromStatus),
		ToStatus:   string(e.ToStatus),
		ActorID:    e.ActorID,
		ActorRole:  string(e.ActorRole),
		At:         e.At.UTC(),
	}
}

// ToDomain converts EventDTO to domain.PickupEvent.
func ToDomain(dto EventDTO) domain.PickupEvent {
	return domain.PickupEvent{
		PickupID:   strings.TrimSpace(dto.PickupID),
		Operation:  strings.TrimSpace(dto.Operation),
		FromStatus: domain.PickupStatus(strings.TrimSpace(dto.FromStatus)),
		ToStatus:   domain.PickupStatus(strings.TrimSpace(dto.ToStatus)),
		ActorID:    strings.TrimSpace(dto.ActorID),
		ActorRole:  domain.Role(strings.TrimSpace(dto.ActorRole)),
		At:         dto.At,
	}
}
