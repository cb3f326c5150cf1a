package domain

import "time"

// UpdateOp tells the store what to do with one attribute.
type UpdateOp uint8

// List of update instructions
const (
	OpKeep UpdateOp = iota
	OpSet
	OpRemove
)

// Field is a tagged update instruction: keep, set to a value, or remove.
type Field[T any] struct {
	op    UpdateOp
	value T
}

// Set returns an instruction that sets the attribute to v.
func Set[T any](v T) Field[T] { return Field[T]{op: OpSet, value: v} }

// Remove returns an instruction that removes the attribute.
func Remove[T any]() Field[T] { return Field[T]{op: OpRemove} }

// Op returns the instruction kind.
func (f Field[T]) Op() UpdateOp { return f.op }

// Value returns the value to set; ok is false unless the op is OpSet.
func (f Field[T]) Value() (T, bool) { return f.value, f.op == OpSet }

// PickupUpdate is a typed partial update of a pickup.
type PickupUpdate struct {
	Status          Field[PickupStatus]
	DriverID        Field[string]
	Location        Field[string]
	EstimatedWeight Field[float64]
	WasteType       Field[WasteType]
	RequestedTime   Field[time.Time]
	DeletedAt       Field[time.Time]
}

// Empty reports whether the update carries no instruction.
func (u PickupUpdate) Empty() bool {
	return u.Status.op == OpKeep &&
		u.DriverID.op == OpKeep &&
		u.Location.op == OpKeep &&
		u.EstimatedWeight.op == OpKeep &&
		u.WasteType.op == OpKeep &&
		u.RequestedTime.op == OpKeep &&
		u.DeletedAt.op == OpKeep
}

// Apply returns a copy of p with the update applied. Stores apply updates
// natively; Apply defines the reference semantics.
func (u PickupUpdate) Apply(p Pickup) Pickup {
	if v, ok := u.Status.Value(); ok {
		p.Status = v
	}
	switch u.DriverID.op {
	case OpSet:
		v := u.DriverID.value
		p.DriverID = &v
	case OpRemove:
		p.DriverID = nil
	}
	if v, ok := u.Location.Value(); ok {
		p.Location = v
	}
	if v, ok := u.EstimatedWeight.Value(); ok {
		p.EstimatedWeight = v
	}
	if v, ok := u.WasteType.Value(); ok {
		p.WasteType = v
	}
	if v, ok := u.RequestedTime.Value(); ok {
		p.RequestedTime = v
	}
	switch u.DeletedAt.op {
	case OpSet:
		v := u.DeletedAt.value
		p.DeletedAt = &v
	case OpRemove:
		p.DeletedAt = nil
	}
	return p
}
