package model

// Role classifies an account for access control.
type Role string

const (
	RoleAdmin   Role = "admin"
	RolePatient Role = "patient"
)

// Account is a login identity. Immutable after creation except for the
// password hash, which changes through password recovery.
type Account struct {
	ID           int64  `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	DisplayName  string `json:"display_name" db:"display_name"`
	Phone        string `json:"phone" db:"phone"`
	Role         Role   `json:"role" db:"role"`
}

type RegisterRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=4"`
	Phone       string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RecoverPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=4"`
}
