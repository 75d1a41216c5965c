package models

// Region is a delivery region with its flat delivery fee.
type Region struct {
	ID            int64   `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	DeliveryPrice float64 `json:"delivery_price" db:"delivery_price"`
	IsActive      bool    `json:"is_active" db:"is_active"`
}

// RegionsResponse is the GET /regions payload.
type RegionsResponse struct {
	Regions []Region `json:"regions"`
}

// RegionRequest is the admin body for creating or updating a region.
type RegionRequest struct {
	Name          string  `json:"name" validate:"required,min=1,max=100"`
	DeliveryPrice float64 `json:"delivery_price" validate:"gte=0"`
	IsActive      bool    `json:"is_active"`
}
