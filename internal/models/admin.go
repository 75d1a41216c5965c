package models

import "time"

// AdminUser is an operator account for the admin console.
type AdminUser struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// AdminLoginRequest is the body for POST /admin/login.
type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminLoginResponse carries the issued admin bearer token.
type AdminLoginResponse struct {
	Token string `json:"token"`
}
