package dto

import (
	"github.com/revxlabs/revx/internal/models"
)

// UserDTO represents a user profile in API responses
type UserDTO struct {
	ID       uint64  `json:"id"`
	Email    string  `json:"email"`
	Username string  `json:"username"`
	FullName string  `json:"full_name"`
	Bio      *string `json:"bio,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	IsAdmin  bool    `json:"is_admin"`
}

// AdminUserDTO is the admin listing shape: profile plus audit fields.
type AdminUserDTO struct {
	UserDTO
	CreatedAt string `json:"created_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
		Bio:      user.Bio,
		Avatar:   user.Avatar,
		IsAdmin:  user.IsAdmin,
	}
}

// ToAdminUserDTO converts a User model to the admin listing shape
func ToAdminUserDTO(user models.User) AdminUserDTO {
	return AdminUserDTO{
		UserDTO:   ToUserDTO(user),
		CreatedAt: user.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
