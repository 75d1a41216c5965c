package models

import "errors"

var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidCredentials is returned when admin login fails.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidInitData is returned when the Telegram initData payload
	// cannot be parsed or its signature does not verify.
	ErrInvalidInitData = errors.New("invalid telegram init data")

	// ErrExpiredInitData is returned when auth_date is older than the configured TTL.
	ErrExpiredInitData = errors.New("telegram init data expired")

	// ErrRegionUnavailable is returned when an order references a region
	// that does not exist or is inactive.
	ErrRegionUnavailable = errors.New("region is not available")

	// ErrAddressNotOwned is returned when an order references an address
	// that does not belong to the ordering user.
	ErrAddressNotOwned = errors.New("address does not belong to user")

	// ErrProductUnavailable is returned when an order references a product
	// that does not exist or is inactive.
	ErrProductUnavailable = errors.New("product not found or inactive")

	// ErrEmptyOrder is returned when an order submission contains no items.
	ErrEmptyOrder = errors.New("order must contain at least one item")

	// ErrInvalidOrderStatus is returned when an admin sets a status outside
	// the allowed set.
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

// ErrorResponse is the JSON body returned for any failed request.
type ErrorResponse struct {
	Message string `json:"error"`
}
