package models

import "github.com/golang-jwt/jwt/v5"

// Roles carried in token claims.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// JwtCustomClaims are the claims issued for both customers and admins.
// UserID refers to the users table for customers and admin_users for admins.
type JwtCustomClaims struct {
	UserID     int64  `json:"user_id"`
	TelegramID int64  `json:"telegram_id,omitempty"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}
