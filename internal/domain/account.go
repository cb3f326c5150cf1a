package domain

import "time"

// User is a customer account that requests pickups.
type User struct {
	ID        string
	Email     string
	Name      string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Driver is an account that collects pickups.
type Driver struct {
	ID           string
	Email        string
	Name         string
	Phone        string
	VehicleType  string
	LicensePlate string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PartialUserUpdate carries optional fields to update a user.
// A nil field means “do not change” that attribute.
type PartialUserUpdate struct {
	ID      string
	Name    *string
	Phone   *string
	Address *string
}

// PartialDriverUpdate carries optional fields to update a driver.
type PartialDriverUpdate struct {
	ID           string
	Name         *string
	Phone        *string
	VehicleType  *string
	LicensePlate *string
}
