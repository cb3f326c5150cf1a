package domain

import (
	"fmt"
	"time"
)

// Pickup is a single waste-collection request and its lifecycle state.
type Pickup struct {
	ID              string
	UserID          string
	DriverID        *string
	Status          PickupStatus
	Location        string
	EstimatedWeight float64
	WasteType       WasteType
	RequestedTime   time.Time
	DeletedAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	// Version is bumped by the store on every write and used for conditional writes.
	Version int64
}

// PickupFields carries the caller-supplied attributes of a new pickup.
type PickupFields struct {
	Location        string
	EstimatedWeight float64
	WasteType       WasteType
	RequestedTime   time.Time
}

// IsOwner reports whether the account id owns the pickup.
func (p Pickup) IsOwner(id string) bool { return p.UserID == id }

// IsAssignedTo reports whether the pickup is assigned to the driver id.
func (p Pickup) IsAssignedTo(id string) bool {
	return p.DriverID != nil && *p.DriverID == id
}

// Condition guards a conditional write. Zero values disable a check.
type Condition struct {
	StatusIn []PickupStatus
	Version  int64
}

// StatusConflictError is returned by the store when a Condition does not hold
// at write time.
type StatusConflictError struct {
	Current PickupStatus
}

func (e *StatusConflictError) Error() string {
	return fmt.Sprintf("conditional write failed, current status is %s", e.Current)
}
