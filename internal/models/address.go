package models

import "time"

// Address is a delivery address owned by a user. The server assigns identity;
// is_default is a per-user singleton enforced in SQL.
type Address struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"-" db:"user_id"`
	RegionID  int64     `json:"region_id" db:"region_id"`
	Street    string    `json:"street" db:"street"`
	House     string    `json:"house" db:"house"`
	Entrance  string    `json:"entrance,omitempty" db:"entrance"`
	Flat      string    `json:"flat,omitempty" db:"flat"`
	Comment   string    `json:"comment,omitempty" db:"comment"`
	IsDefault bool      `json:"is_default" db:"is_default"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AddressRequest is the body for creating or replacing an address.
type AddressRequest struct {
	RegionID  int64  `json:"region_id" validate:"required,gt=0"`
	Street    string `json:"street" validate:"required,min=2"`
	House     string `json:"house" validate:"required"`
	Entrance  string `json:"entrance,omitempty"`
	Flat      string `json:"flat,omitempty"`
	Comment   string `json:"comment,omitempty"`
	IsDefault bool   `json:"is_default"`
}

// AddressesResponse wraps the address list for GET /addresses.
type AddressesResponse struct {
	Addresses []Address `json:"addresses"`
}
