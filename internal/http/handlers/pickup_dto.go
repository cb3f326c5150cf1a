package handlers

import (
	"time"

	"service-pickup/internal/domain"
)

type pickupDTO struct {
	ID              string              `json:"id"`
	UserID          string              `json:"userId"`
	DriverID        *string             `json:"driverId,omitempty"`
	Status          domain.PickupStatus `json:"status"`
	Location        string              `json:"location"`
	EstimatedWeight float64             `json:"estimatedWeight"`
	WasteType       domain.WasteType    `json:"wasteType"`
	RequestedTime   time.Time           `json:"requestedTime"`
	DeletedAt       *time.Time          `json:"deletedAt,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

type pickupListResponse struct {
	Pickups    []pickupDTO `json:"pickups"`
	NextCursor string      `json:"nextCursor,omitempty"`
}

type createPickupRequest struct {
	// UserID lets an admin create a pickup on behalf of a user.
	UserID          string           `json:"userId,omitempty"`
	Location        string           `json:"location" validate:"required"`
	EstimatedWeight float64          `json:"estimatedWeight" validate:"required,gte=1"`
	WasteType       domain.WasteType `json:"wasteType" validate:"required,oneof=household construction green electronic recyclable"`
	RequestedTime   *time.Time       `json:"requestedTime" validate:"required"`
}

type updatePickupRequest struct {
	ID              string               `json:"-" param:"pickupId"`
	Status          *domain.PickupStatus `json:"status,omitempty"`
	Location        *string              `json:"location,omitempty" validate:"omitempty,min=1"`
	EstimatedWeight *float64             `json:"estimatedWeight,omitempty" validate:"omitempty,gte=1"`
	WasteType       *domain.WasteType    `json:"wasteType,omitempty"`
	RequestedTime   *time.Time           `json:"requestedTime,omitempty"`
}

type pickupIDRequest struct {
	ID string `param:"pickupId" validate:"required"`
}

type deletePickupRequest struct {
	ID   string `param:"pickupId" validate:"required"`
	Hard bool   `param:"hardDelete"`
}
