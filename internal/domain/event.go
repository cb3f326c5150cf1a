package domain

import "time"

// PickupEvent describes a committed pickup transition.
// ToStatus is empty for hard deletes.
type PickupEvent struct {
	PickupID   string
	Operation  string
	FromStatus PickupStatus
	ToStatus   PickupStatus
	ActorID    string
	ActorRole  Role
	At         time.Time
}
