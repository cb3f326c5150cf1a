package domain

type (
	// PickupStatus is the lifecycle state of a pickup.
	PickupStatus string
	// WasteType classifies what is collected by a pickup.
	WasteType string
)

// List of pickup statuses
const (
	StatusPending    PickupStatus = "pending"
	StatusAvailable  PickupStatus = "available"
	StatusAccepted   PickupStatus = "accepted"
	StatusInProgress PickupStatus = "in_progress"
	StatusCompleted  PickupStatus = "completed"
	StatusCancelled  PickupStatus = "cancelled"
	StatusDeleted    PickupStatus = "deleted"
)

// List of waste types
const (
	WasteHousehold    WasteType = "household"
	WasteConstruction WasteType = "construction"
	WasteGreen        WasteType = "green"
	WasteElectronic   WasteType = "electronic"
	WasteRecyclable   WasteType = "recyclable"
)

var allowedStatuses = [...]PickupStatus{
	StatusPending, StatusAvailable, StatusAccepted, StatusInProgress,
	StatusCompleted, StatusCancelled, StatusDeleted,
}

var allowedWasteTypes = [...]WasteType{
	WasteHousehold, WasteConstruction, WasteGreen, WasteElectronic, WasteRecyclable,
}

// Valid checks if the PickupStatus is known
func (s PickupStatus) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// HasDriver reports whether a pickup in this status carries an assigned driver.
func (s PickupStatus) HasDriver() bool {
	switch s {
	case StatusAccepted, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// In reports whether s is one of the given statuses.
func (s PickupStatus) In(set ...PickupStatus) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the WasteType is known
func (t WasteType) Valid() bool {
	for _, v := range allowedWasteTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Statuses returns all known pickup statuses in lifecycle order.
func Statuses() []PickupStatus {
	out := make([]PickupStatus, len(allowedStatuses))
	copy(out, allowedStatuses[:])
	return out
}
