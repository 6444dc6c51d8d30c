package models

import "time"

// UploadFile records a bulk-import event so the UI can display the last
// uploaded file.
type UploadFile struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	FileName   string    `json:"fileName"`
	UploadDate string    `json:"uploadDate"`
	UserID     string    `json:"userId" gorm:"index;type:varchar(36)"`
	ItemCount  int       `json:"itemCount"`
	CreatedAt  time.Time `json:"createdAt"`
}
