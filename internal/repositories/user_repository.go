package repositories

import "catalog/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	// Update persists mutated credential fields (password, reset token).
	Update(user *models.User) error
}
