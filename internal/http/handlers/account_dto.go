package handlers

import (
	"strings"
	"time"

	"service-pickup/internal/domain"
)

type userDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type driverDTO struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	VehicleType  string    `json:"vehicleType,omitempty"`
	LicensePlate string    `json:"licensePlate,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type createUserRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type updateUserRequest struct {
	ID      string  `json:"-" param:"userId"`
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

type createDriverRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Name         string `json:"name" validate:"required"`
	Phone        string `json:"phone,omitempty"`
	VehicleType  string `json:"vehicleType,omitempty"`
	LicensePlate string `json:"licensePlate,omitempty"`
}

type updateDriverRequest struct {
	ID           string  `json:"-" param:"driverId"`
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Phone        *string `json:"phone,omitempty"`
	VehicleType  *string `json:"vehicleType,omitempty"`
	LicensePlate *string `json:"licensePlate,omitempty"`
}

type accountIDRequest struct {
	ID string `validate:"required"`
}

func (r createUserRequest) toModel() domain.User {
	return domain.User{
		Email:   strings.TrimSpace(r.Email),
		Name:    strings.TrimSpace(r.Name),
		Phone:   r.Phone,
		Address: r.Address,
	}
}

func (r updateUserRequest) toModel() domain.PartialUserUpdate {
	return domain.PartialUserUpdate{
		ID:      r.ID,
		Name:    r.Name,
		Phone:   r.Phone,
		Address: r.Address,
	}
}

func (r createDriverRequest) toModel() domain.Driver {
	return domain.Driver{
		Email:        strings.TrimSpace(r.Email),
		Name:         strings.TrimSpace(r.Name),
		Phone:        r.Phone,
		VehicleType:  r.VehicleType,
		LicensePlate: r.LicensePlate,
	}
}

func (r updateDriverRequest) toModel() domain.PartialDriverUpdate {
	return domain.PartialDriverUpdate{
		ID:           r.ID,
		Name:         r.Name,
		Phone:        r.Phone,
		VehicleType:  r.VehicleType,
		LicensePlate: r.LicensePlate,
	}
}

func userToResponse(u domain.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func driverToResponse(d domain.Driver) driverDTO {
	return driverDTO{
		ID:           d.ID,
		Email:        d.Email,
		Name:         d.Name,
		Phone:        d.Phone,
		VehicleType:  d.VehicleType,
		LicensePlate: d.LicensePlate,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
