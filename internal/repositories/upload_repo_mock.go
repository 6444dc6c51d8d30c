package repositories

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"catalog/internal/models"
)

// MockUploadFileRepository is an in-memory implementation of
// UploadFileRepository.
type MockUploadFileRepository struct {
	files map[string]models.UploadFile
	mu    sync.RWMutex
}

// NewMockUploadFileRepository creates a new instance of
// MockUploadFileRepository.
func NewMockUploadFileRepository() *MockUploadFileRepository {
	return &MockUploadFileRepository{
		files: make(map[string]models.UploadFile),
	}
}

// GetAll returns all import logs, newest first.
func (r *MockUploadFileRepository) GetAll() ([]models.UploadFile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fileList := make([]models.UploadFile, 0, len(r.files))
	for _, f := range r.files {
		fileList = append(fileList, f)
	}
	sort.Slice(fileList, func(i, j int) bool {
		return fileList[i].CreatedAt.After(fileList[j].CreatedAt)
	})
	return fileList, nil
}

// Create records a new import log.
func (r *MockUploadFileRepository) Create(file *models.UploadFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if file.ID == "" {
		file.ID = uuid.New().String()
	}
	file.CreatedAt = time.Now()
	r.files[file.ID] = *file
	return nil
}
