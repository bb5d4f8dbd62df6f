package model

import (
	"time"
)

// UserRole distinguishes learners from dashboard administrators.
type UserRole string

const (
	RoleStudent UserRole = "STUDENT"
	RoleAdmin   UserRole = "ADMIN"
)

// User represents a platform account.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterRequest is the payload for student self-registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest is the payload for logging in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest is the admin payload for creating an account.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role" binding:"required,oneof=STUDENT ADMIN"`
}

// UpdateUserRequest is the admin payload for updating an account.
type UpdateUserRequest struct {
	Email     string `json:"email" binding:"omitempty,email"`
	Name      string `json:"name" binding:"omitempty,min=2,max=100"`
	AvatarURL string `json:"avatar_url" binding:"omitempty,url"`
	Password  string `json:"password" binding:"omitempty,min=6,max=72"`
	Role      string `json:"role" binding:"omitempty,oneof=STUDENT ADMIN"`
}
