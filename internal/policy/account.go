package policy

import (
	"service-pickup/internal/apperr"
	"service-pickup/internal/domain"
)

// CanManageAccounts allows account creation by admins only.
func CanManageAccounts(a domain.Actor) Decision {
	if a.IsAdmin() {
		return Allow()
	}
	return Deny(apperr.KindForbidden, "Only admins can create accounts")
}

// CanAccessAccount allows the account holder of the given role and admins.
// Unlike pickups, no stored state is involved.
func CanAccessAccount(a domain.Actor, role domain.Role, id string) Decision {
	if a.IsAdmin() || (a.Role == role && a.ID == id) {
		return Allow()
	}
	return Deny(apperr.KindForbidden, "Not allowed to access this account")
}
