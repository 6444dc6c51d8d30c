package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"catalog/internal/models"
)

// GORMUploadFileRepository is a GORM implementation of UploadFileRepository.
type GORMUploadFileRepository struct {
	db *gorm.DB
}

// NewGORMUploadFileRepository creates a new instance of
// GORMUploadFileRepository.
func NewGORMUploadFileRepository(db *gorm.DB) *GORMUploadFileRepository {
	return &GORMUploadFileRepository{
		db: db,
	}
}

// GetAll retrieves import logs, newest first.
func (r *GORMUploadFileRepository) GetAll() ([]models.UploadFile, error) {
	var files []models.UploadFile
	if err := r.db.Order("created_at DESC").Find(&files).Error; err != nil {
		return nil, fmt.Errorf("failed to get upload files: %w", err)
	}
	return files, nil
}

// Create records a new import log.
func (r *GORMUploadFileRepository) Create(file *models.UploadFile) error {
	if file.ID == "" {
		file.ID = uuid.New().String()
	}
	if err := r.db.Create(file).Error; err != nil {
		return fmt.Errorf("failed to create upload file record: %w", err)
	}
	return nil
}
