// Package policy holds the pickup authorization gate and status machine.
// Everything here is pure: callers pass value snapshots and get decisions back.
package policy

import "service-pickup/internal/apperr"

// Decision is the outcome of a policy check: Allow, or Deny with a reason.
type Decision struct {
	denied  bool
	kind    apperr.Kind
	message string
}

// Allow returns a permitting decision.
func Allow() Decision { return Decision{} }

// Deny returns a refusing decision of the given kind.
func Deny(kind apperr.Kind, message string) Decision {
	return Decision{denied: true, kind: kind, message: message}
}

// Allowed reports whether the decision permits the action.
func (d Decision) Allowed() bool { return !d.denied }

// Kind returns the error kind of a denial.
func (d Decision) Kind() apperr.Kind { return d.kind }

// Message returns the caller-facing reason of a denial.
func (d Decision) Message() string { return d.message }

// Err converts a denial into an *apperr.Error, or nil when allowed.
func (d Decision) Err() error {
	if !d.denied {
		return nil
	}
	return apperr.New(d.kind, d.message)
}

// then evaluates next only when d allows.
func (d Decision) then(next func() Decision) Decision {
	if d.denied {
		return d
	}
	return next()
}
