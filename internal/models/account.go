package models

import (
	"time"
)

// DefaultRoleID is the role given to self-registered accounts
const DefaultRoleID = 2

// Account is a user created through the create-account endpoint
type Account struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     *string   `json:"fullName"`
	Phone        *string   `json:"phone"`
	Address      *string   `json:"address"`
	RoleID       int       `json:"roleId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateAccountRequest is the create-account request body
type CreateAccountRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}
