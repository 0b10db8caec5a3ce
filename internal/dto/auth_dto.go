package dto

import (
	"time"
)

// RegisterRequest represents the request to create an account
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email,max=255" example:"ada@example.com"`
	Password    string `json:"password" binding:"required,min=8,max=72" example:"correct-horse"`
	DisplayName string `json:"displayName" binding:"required,min=1,max=100" example:"Ada"`
}

// LoginRequest represents the request to sign in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password string `json:"password" binding:"required" example:"correct-horse"`
}

// ChangePasswordRequest represents the request to change the signed-in user's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=72"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType" example:"Bearer"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        UserResponse `json:"user"`
}
