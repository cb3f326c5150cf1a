package policy

import (
	"fmt"
	"time"

	"service-pickup/internal/apperr"
	"service-pickup/internal/domain"
)

// Action names a pickup operation subject to policy.
type Action string

// List of actions
const (
	ActionRead             Action = "read"
	ActionUpdate           Action = "update"
	ActionPublish          Action = "publish"
	ActionAccept           Action = "accept"
	ActionCancelAcceptance Action = "cancel_acceptance"
	ActionSoftDelete       Action = "soft_delete"
	ActionHardDelete       Action = "hard_delete"
)

// Owners are the account ids attached to a pickup.
type Owners struct {
	UserID   string
	DriverID string
}

// OwnersOf extracts the ownership data of p.
func OwnersOf(p domain.Pickup) Owners {
	o := Owners{UserID: p.UserID}
	if p.DriverID != nil {
		o.DriverID = *p.DriverID
	}
	return o
}

// Status sets from which a transition may start.
var (
	publishFrom    = []domain.PickupStatus{domain.StatusPending}
	acceptFrom     = []domain.PickupStatus{domain.StatusAvailable}
	cancelFrom     = []domain.PickupStatus{domain.StatusAccepted}
	softDeleteFrom = []domain.PickupStatus{domain.StatusAvailable, domain.StatusAccepted, domain.StatusCancelled}
	updateFrom     = []domain.PickupStatus{domain.StatusPending, domain.StatusAvailable, domain.StatusInProgress, domain.StatusCancelled}
)

func ownerOrAdmin(a domain.Actor, o Owners, msg string) Decision {
	if a.IsAdmin() || (a.Role == domain.RoleUser && o.UserID == a.ID) {
		return Allow()
	}
	return Deny(apperr.KindForbidden, msg)
}

// CanCreate allows users and admins to create pickups.
func CanCreate(a domain.Actor) Decision {
	if a.HasRole(domain.RoleUser, domain.RoleAdmin) {
		return Allow()
	}
	return Deny(apperr.KindForbidden, "Only users and admins can create pickups")
}

// CanPublish guards pending -> available. Publishing is an update, so a
// pickup that cannot be updated at all is Forbidden before the publish
// precondition is checked.
func CanPublish(a domain.Actor, o Owners, s domain.PickupStatus) Decision {
	return CanUpdate(a, o, s).then(func() Decision {
		if !s.In(publishFrom...) {
			return Deny(apperr.KindConflict, fmt.Sprintf("Pickup can't be published, current status is: %s", s))
		}
		return Allow()
	})
}

// CanAccept guards available -> accepted. Ownership plays no part.
func CanAccept(a domain.Actor, s domain.PickupStatus) Decision {
	if !a.HasRole(domain.RoleDriver, domain.RoleAdmin) {
		return Deny(apperr.KindForbidden, "Only drivers can accept pickups")
	}
	if !s.In(acceptFrom...) {
		return Deny(apperr.KindConflict, "Pickup not available")
	}
	return Allow()
}

// CanCancelAcceptance guards accepted -> cancelled. The status is checked
// before the actor so a wrong status is always a Conflict.
func CanCancelAcceptance(a domain.Actor, o Owners, s domain.PickupStatus) Decision {
	if !s.In(cancelFrom...) {
		return Deny(apperr.KindConflict, fmt.Sprintf("Pickup can't be cancelled, current status is: %s", s))
	}
	switch {
	case a.IsAdmin():
		return Allow()
	case a.Role == domain.RoleDriver && o.DriverID != "" && o.DriverID == a.ID:
		return Allow()
	case a.Role == domain.RoleUser && o.UserID == a.ID:
		return Allow()
	default:
		return Deny(apperr.KindForbidden, "Not allowed to cancel this pickup")
	}
}

// CanUpdate guards a general attribute update.
func CanUpdate(a domain.Actor, o Owners, s domain.PickupStatus) Decision {
	return ownerOrAdmin(a, o, "Not allowed to update this pickup").then(func() Decision {
		if !s.In(updateFrom...) {
			return Deny(apperr.KindForbidden, fmt.Sprintf("Cannot update pickup with status %s", s))
		}
		return Allow()
	})
}

// CanSoftDelete guards the transition to deleted. Pending pickups cannot be
// soft-deleted.
func CanSoftDelete(a domain.Actor, o Owners, s domain.PickupStatus) Decision {
	return ownerOrAdmin(a, o, "Not allowed to delete this pickup").then(func() Decision {
		if !s.In(softDeleteFrom...) {
			return Deny(apperr.KindForbidden, fmt.Sprintf("Cannot delete pickup with status %s", s))
		}
		return Allow()
	})
}

// CanHardDelete allows permanent removal by admins only.
func CanHardDelete(a domain.Actor) Decision {
	if a.IsAdmin() {
		return Allow()
	}
	return Deny(apperr.KindForbidden, "Only admins can permanently delete pickups")
}

// AcceptEffect assigns the pickup to the accepting actor.
func AcceptEffect(a domain.Actor) domain.PickupUpdate {
	return domain.PickupUpdate{
		Status:   domain.Set(domain.StatusAccepted),
		DriverID: domain.Set(a.ID),
	}
}

// CancelAcceptanceEffect releases the driver and cancels the pickup.
func CancelAcceptanceEffect() domain.PickupUpdate {
	return domain.PickupUpdate{
		Status:   domain.Set(domain.StatusCancelled),
		DriverID: domain.Remove[string](),
	}
}

// PublishEffect makes a pending pickup visible to drivers.
func PublishEffect() domain.PickupUpdate {
	return domain.PickupUpdate{Status: domain.Set(domain.StatusAvailable)}
}

// SoftDeleteEffect marks a pickup deleted at now and releases its driver.
func SoftDeleteEffect(now time.Time) domain.PickupUpdate {
	return domain.PickupUpdate{
		Status:    domain.Set(domain.StatusDeleted),
		DriverID:  domain.Remove[string](),
		DeletedAt: domain.Set(now),
	}
}

// ConditionFor returns the store precondition that keeps a decision made
// against p valid at write time. Accept only needs the status so that the
// first of several concurrent drivers wins.
func ConditionFor(action Action, p domain.Pickup) domain.Condition {
	switch action {
	case ActionAccept:
		return domain.Condition{StatusIn: acceptFrom}
	case ActionPublish:
		return domain.Condition{StatusIn: publishFrom, Version: p.Version}
	case ActionCancelAcceptance:
		return domain.Condition{StatusIn: cancelFrom, Version: p.Version}
	case ActionUpdate:
		return domain.Condition{StatusIn: updateFrom, Version: p.Version}
	case ActionSoftDelete:
		return domain.Condition{StatusIn: softDeleteFrom, Version: p.Version}
	default:
		return domain.Condition{}
	}
}
