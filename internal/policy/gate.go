package policy

import (
	"service-pickup/internal/apperr"
	"service-pickup/internal/domain"
)

// NotFoundMessage is returned for absent pickups and for pickups hidden from the actor.
const NotFoundMessage = "Pickup not found"

// CanAccess decides whether a may perform action on a pickup with the given
// owners and status. Rules apply in order:
//
//  1. admins may read anything, deleted pickups included, and pass every
//     ownership check below;
//  2. deleted pickups are invisible to everyone else;
//  3. reads: the owning user, any driver while available, the assigned driver;
//  4. writes: the transition guard of the action.
func CanAccess(a domain.Actor, o Owners, s domain.PickupStatus, action Action) Decision {
	if a.IsAdmin() && action == ActionRead {
		return Allow()
	}
	if s == domain.StatusDeleted && !a.IsAdmin() {
		return Deny(apperr.KindNotFound, NotFoundMessage)
	}

	switch action {
	case ActionRead:
		return canRead(a, o, s)
	case ActionUpdate:
		return CanUpdate(a, o, s)
	case ActionPublish:
		return CanPublish(a, o, s)
	case ActionAccept:
		return CanAccept(a, s)
	case ActionCancelAcceptance:
		return CanCancelAcceptance(a, o, s)
	case ActionSoftDelete:
		return CanSoftDelete(a, o, s)
	case ActionHardDelete:
		return CanHardDelete(a)
	default:
		return Deny(apperr.KindForbidden, "Action not permitted")
	}
}

// Authorize is CanAccess over a loaded pickup snapshot.
func Authorize(a domain.Actor, p domain.Pickup, action Action) Decision {
	return CanAccess(a, OwnersOf(p), p.Status, action)
}

func canRead(a domain.Actor, o Owners, s domain.PickupStatus) Decision {
	switch a.Role {
	case domain.RoleUser:
		if o.UserID == a.ID {
			return Allow()
		}
	case domain.RoleDriver:
		if s == domain.StatusAvailable || (o.DriverID != "" && o.DriverID == a.ID) {
			return Allow()
		}
	}
	return Deny(apperr.KindForbidden, "Not allowed to view this pickup")
}
