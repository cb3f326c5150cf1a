package pickup

import (
	"strings"
	"time"

	"service-pickup/internal/apperr"
	"service-pickup/internal/domain"
	"service-pickup/internal/policy"
)

// CreateInput carries a new pickup. OwnerID is honoured for admins only.
type CreateInput struct {
	OwnerID string
	Fields  domain.PickupFields
}

// UpdateInput carries an update request. Nil fields are kept as they are.
type UpdateInput struct {
	Status          *domain.PickupStatus
	Location        *string
	EstimatedWeight *float64
	WasteType       *domain.WasteType
	RequestedTime   *time.Time
}

func (in UpdateInput) hasFields() bool {
	return in.Location != nil || in.EstimatedWeight != nil || in.WasteType != nil || in.RequestedTime != nil
}

// toUpdate merges the field changes into the publish effect when a status is
// requested. validateUpdate only lets status=available through.
func (in UpdateInput) toUpdate() domain.PickupUpdate {
	var u domain.PickupUpdate
	if in.Status != nil {
		u = policy.PublishEffect()
	}
	if in.Location != nil {
		u.Location = domain.Set(strings.TrimSpace(*in.Location))
	}
	if in.EstimatedWeight != nil {
		u.EstimatedWeight = domain.Set(*in.EstimatedWeight)
	}
	if in.WasteType != nil {
		u.WasteType = domain.Set(*in.WasteType)
	}
	if in.RequestedTime != nil {
		u.RequestedTime = domain.Set(in.RequestedTime.UTC())
	}
	return u
}

func validateLocation(v string) error {
	if strings.TrimSpace(v) == "" {
		return apperr.BadRequest("location", "must not be empty")
	}
	return nil
}

func validateWeight(v float64) error {
	if v < 1 {
		return apperr.BadRequest("estimatedWeight", "must be at least 1")
	}
	return nil
}

func validateWasteType(v domain.WasteType) error {
	if !v.Valid() {
		return apperr.BadRequest("wasteType", "unknown waste type "+string(v))
	}
	return nil
}

func validateFields(f domain.PickupFields) error {
	if err := validateLocation(f.Location); err != nil {
		return err
	}
	if err := validateWeight(f.EstimatedWeight); err != nil {
		return err
	}
	if err := validateWasteType(f.WasteType); err != nil {
		return err
	}
	if f.RequestedTime.IsZero() {
		return apperr.BadRequest("requestedTime", "is required")
	}
	return nil
}

func validateUpdate(in UpdateInput) error {
	if in.Status == nil && !in.hasFields() {
		return apperr.BadRequest("body", "no fields to update")
	}
	if in.Status != nil && *in.Status != domain.StatusAvailable {
		return apperr.BadRequest("status", "status can only be set to available")
	}
	if in.Location != nil {
		if err := validateLocation(*in.Location); err != nil {
			return err
		}
	}
	if in.EstimatedWeight != nil {
		if err := validateWeight(*in.EstimatedWeight); err != nil {
			return err
		}
	}
	if in.WasteType != nil {
		if err := validateWasteType(*in.WasteType); err != nil {
			return err
		}
	}
	if in.RequestedTime != nil && in.RequestedTime.IsZero() {
		return apperr.BadRequest("requestedTime", "must be a valid timestamp")
	}
	return nil
}

func validateFilter(f domain.ListFilter) error {
	for _, s := range f.Statuses {
		if !s.Valid() {
			return apperr.BadRequest("status", "unknown status "+string(s))
		}
	}
	if f.Limit < 0 {
		return apperr.BadRequest("limit", "must be positive")
	}
	if f.Start != nil && f.End != nil && f.End.Before(*f.Start) {
		return apperr.BadRequest("endRequestedTime", "must not be before startRequestedTime")
	}
	return nil
}
