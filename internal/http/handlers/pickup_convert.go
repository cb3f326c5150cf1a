package handlers

import (
	"strings"

	"service-pickup/internal/domain"
	"service-pickup/internal/service/pickup"
)

func (r createPickupRequest) toInput() pickup.CreateInput {
	in := pickup.CreateInput{
		OwnerID: strings.TrimSpace(r.UserID),
		Fields: domain.PickupFields{
			Location:        strings.TrimSpace(r.Location),
			EstimatedWeight: r.EstimatedWeight,
			WasteType:       r.WasteType,
		},
	}
	if r.RequestedTime != nil {
		in.Fields.RequestedTime = r.RequestedTime.UTC()
	}
	return in
}

func (r updatePickupRequest) toInput() pickup.UpdateInput {
	return pickup.UpdateInput{
		Status:          r.Status,
		Location:        r.Location,
		EstimatedWeight: r.EstimatedWeight,
		WasteType:       r.WasteType,
		RequestedTime:   r.RequestedTime,
	}
}

func pickupToResponse(p domain.Pickup) pickupDTO {
	return pickupDTO{
		ID:              p.ID,
		UserID:          p.UserID,
		DriverID:        p.DriverID,
		Status:          p.Status,
		Location:        p.Location,
		EstimatedWeight: p.EstimatedWeight,
		WasteType:       p.WasteType,
		RequestedTime:   p.RequestedTime,
		DeletedAt:       p.DeletedAt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func pickupsToResponse(list []domain.Pickup) []pickupDTO {
	out := make([]pickupDTO, 0, len(list))
	for _, p := range list {
		out = append(out, pickupToResponse(p))
	}
	return out
}
