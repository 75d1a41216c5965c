package models

import "time"

// User represents a storefront customer created from Telegram identity data.
type User struct {
	ID         int64     `json:"id" db:"id"`
	TelegramID int64     `json:"telegram_id" db:"telegram_id"`
	FirstName  string    `json:"first_name,omitempty" db:"first_name"`
	LastName   string    `json:"last_name,omitempty" db:"last_name"`
	Username   string    `json:"username,omitempty" db:"username"`
	Phone      string    `json:"phone,omitempty" db:"phone"`
	Language   string    `json:"language,omitempty" db:"language"`
	Latitude   *float64  `json:"latitude,omitempty" db:"latitude"`
	Longitude  *float64  `json:"longitude,omitempty" db:"longitude"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// UpsertTelegramUserInput carries the Telegram profile fields persisted on
// every successful initData exchange. Latitude and Longitude are only set
// by bot registration; nil leaves the stored coordinates untouched.
type UpsertTelegramUserInput struct {
	TelegramID int64
	FirstName  string
	LastName   string
	Username   string
	Phone      string
	Language   string
	Latitude   *float64
	Longitude  *float64
}

// BotLocation is the delivery point the customer pins in the bot chat.
type BotLocation struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// BotRegisterRequest is the body for POST /bot/register, sent by the
// companion bot after collecting the customer's phone and location.
type BotRegisterRequest struct {
	TelegramID int64        `json:"telegram_id" validate:"required"`
	Phone      string       `json:"phone" validate:"required"`
	FirstName  string       `json:"first_name"`
	LastName   string       `json:"last_name"`
	Name       string       `json:"name"`
	Location   *BotLocation `json:"location" validate:"required"`
}

// Profile is the aggregate returned by GET /profile: the user plus all of
// their saved addresses.
type Profile struct {
	User      *User     `json:"user"`
	Addresses []Address `json:"addresses"`
}

// TelegramAuthRequest is the body for POST /auth/telegram.
type TelegramAuthRequest struct {
	InitData string `json:"init_data" validate:"required"`
}

// AuthResponse is returned by POST /auth/telegram: a bearer token plus the
// freshly loaded profile, so the mini-app needs a single round trip.
type AuthResponse struct {
	Token   string   `json:"token"`
	Profile *Profile `json:"profile"`
}
