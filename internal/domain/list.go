package domain

import "time"

// Page size bounds for pickup listing.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListFilter selects a page of pickups.
type ListFilter struct {
	Statuses []PickupStatus
	Limit    int
	Cursor   string
	Start    *time.Time
	End      *time.Time
	Reverse  bool
}

// PageSize returns the effective page size.
func (f ListFilter) PageSize() int {
	switch {
	case f.Limit <= 0:
		return DefaultPageSize
	case f.Limit > MaxPageSize:
		return MaxPageSize
	default:
		return f.Limit
	}
}

// Match reports whether p passes the status and requested-time filters.
func (f ListFilter) Match(p Pickup) bool {
	if len(f.Statuses) > 0 && !p.Status.In(f.Statuses...) {
		return false
	}
	if f.Start != nil && p.RequestedTime.Before(*f.Start) {
		return false
	}
	if f.End != nil && p.RequestedTime.After(*f.End) {
		return false
	}
	return true
}

// Page is one page of a pickup listing.
type Page struct {
	Pickups    []Pickup
	NextCursor string
}
