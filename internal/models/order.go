package models

import "time"

// Order statuses an operator can move an order through.
const (
	OrderStatusNew       = "new"
	OrderStatusAccepted  = "accepted"
	OrderStatusCooking   = "cooking"
	OrderStatusDelivery  = "delivery"
	OrderStatusDelivered = "delivered"
	OrderStatusCanceled  = "canceled"
)

// Order fulfillment types.
const (
	OrderTypeDelivery = "delivery"
	OrderTypePickup   = "pickup"
)

// Order is a persisted order with its item snapshots. Totals are computed
// server-side from catalog prices at submission time.
type Order struct {
	ID              int64       `json:"id" db:"id"`
	ClientRequestID string      `json:"client_request_id" db:"client_request_id"`
	UserID          int64       `json:"user_id" db:"user_id"`
	AddressID       int64       `json:"address_id,omitempty" db:"address_id"`
	Type            string      `json:"type" db:"type"`
	PaymentMethod   string      `json:"payment_method" db:"payment_method"`
	Status          string      `json:"status" db:"status"`
	RegionID        int64       `json:"region_id" db:"region_id"`
	DeliveryPrice   float64     `json:"delivery_price" db:"delivery_price"`
	ItemsTotal      float64     `json:"items_total" db:"items_total"`
	TotalPrice      float64     `json:"total_price" db:"total_price"`
	Comment         string      `json:"comment,omitempty" db:"comment"`
	CustomerName    string      `json:"customer_name" db:"customer_name"`
	CustomerPhone   string      `json:"customer_phone" db:"customer_phone"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" db:"updated_at"`
	Items           []OrderItem `json:"items"`
}

// OrderItem is a product snapshot captured inside an order. Name and price
// are copied at submission so later catalog edits do not rewrite history.
type OrderItem struct {
	ID          int64   `json:"id" db:"id"`
	OrderID     int64   `json:"order_id" db:"order_id"`
	ProductID   int64   `json:"product_id" db:"product_id"`
	ProductName string  `json:"product_name" db:"product_name"`
	Qty         int32   `json:"qty" db:"qty"`
	Price       float64 `json:"price" db:"price"`
	Total       float64 `json:"total" db:"total"`
}

// OrderItemInput is a (product, qty) pair in an order submission.
type OrderItemInput struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Qty       int32 `json:"qty" validate:"required,gt=0"`
}

// CreateOrderRequest is the body for POST /orders. ClientRequestID is a
// client-generated UUID making the submission idempotent.
type CreateOrderRequest struct {
	ClientRequestID string           `json:"client_request_id" validate:"required,uuid4"`
	Type            string           `json:"type" validate:"required,oneof=delivery pickup"`
	RegionID        int64            `json:"region_id" validate:"required,gt=0"`
	AddressID       int64            `json:"address_id,omitempty"`
	PaymentMethod   string           `json:"payment_method" validate:"required"`
	CustomerName    string           `json:"customer_name" validate:"required,min=1"`
	CustomerPhone   string           `json:"customer_phone" validate:"required,min=5"`
	Comment         string           `json:"comment,omitempty"`
	Items           []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderStatusRequest is the admin body for status transitions.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new accepted cooking delivery delivered canceled"`
}
