package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles and statuses are closed sets; anything else is rejected at the
// data-model boundary.
const (
	RoleAdmin = "admin"
	RoleSales = "sales"

	StatusActive   = "active"
	StatusDisabled = "disabled"
)

// ValidRole reports whether role is one of the permitted account roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleSales
}

// Account is an identity record. Email is the lookup and throttle key and is
// stored lowercased with a unique index.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"` // Never expose in JSON
	Role         string             `bson:"role" json:"role"`
	Status       string             `bson:"status" json:"status"`
	PhoneNumber  string             `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	LastLogin    string             `bson:"last_login,omitempty" json:"last_login,omitempty"`
	CreatedAt    string             `bson:"created_at" json:"created_at"`
}

// PublicAccount is the profile shape returned to clients.
type PublicAccount struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	LastLogin   string `json:"last_login,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// Public strips the password hash and stringifies the identifier.
func (a *Account) Public() *PublicAccount {
	return &PublicAccount{
		ID:          a.ID.Hex(),
		Name:        a.Name,
		Email:       a.Email,
		Role:        a.Role,
		Status:      a.Status,
		LastLogin:   a.LastLogin,
		PhoneNumber: a.PhoneNumber,
		CreatedAt:   a.CreatedAt,
	}
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	User        *PublicAccount `json:"user"`
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// UpdateUserRequest represents the request body for updating a user.
// Nil fields are left untouched.
type UpdateUserRequest struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Password    *string `json:"password,omitempty"`
	Role        *string `json:"role,omitempty"`
	Status      *string `json:"status,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// TimestampNow formats timestamps the way the frontend expects them stored.
func TimestampNow(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// LoginStamp is the human-readable last-login marker ("Jan 02, 2006").
func LoginStamp(t time.Time) string {
	return t.Format("Jan 02, 2006")
}
