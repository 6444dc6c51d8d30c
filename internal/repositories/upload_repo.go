package repositories

import (
	"catalog/internal/models"
)

// UploadFileRepository defines the interface for import-log data access.
type UploadFileRepository interface {
	// GetAll returns import logs, newest first.
	GetAll() ([]models.UploadFile, error)
	Create(file *models.UploadFile) error
}
