package dto

import (
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
)

// CreateUserRequest defines the data needed to register a user.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name" binding:"max=120"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ToUserResponses converts a slice of domain.User to UserResponse DTOs
func ToUserResponses(users []domain.User) []UserResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return userResponses
}
