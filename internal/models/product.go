package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList stores an ordered list of strings as a JSON text column so the
// same model works on both postgres and sqlite.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to encode string list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// Product represents a catalog item. Every product is exclusively linked to
// the user who created it; only that user or an admin may mutate it.
//
// The validate tags document the field constraints; requests are validated
// against the payload shapes in internal/validation, not this struct.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID      string  `json:"userId" gorm:"index;type:varchar(36)"`
	Name        string  `json:"name" validate:"required,min=3,max=100"`
	Description string  `json:"description,omitempty" validate:"omitempty,max=500"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`

	MerchantID          string     `json:"merchantId,omitempty"`
	VariantID           string     `json:"variantId,omitempty"`
	SupplierModelNumber string     `json:"supplierModelNumber,omitempty"`
	EAN                 StringList `json:"ean" gorm:"type:text"`
	Size                string     `json:"size,omitempty"`
	Vendor              string     `json:"vendor,omitempty"`
	ProductType         StringList `json:"productType" gorm:"type:text"`
	ProductGroup        StringList `json:"productGroup" gorm:"type:text"`
	Department          StringList `json:"department" gorm:"type:text"`
	ImageURL            string     `json:"imageUrl,omitempty" validate:"omitempty,url"`

	// MSC marks the product as available for multi-sales-channel sale.
	MSC bool `json:"msc"`

	VariantCreated        *time.Time `json:"variantCreated,omitempty"`
	VariantUpdated        *time.Time `json:"variantUpdated,omitempty"`
	InventoryLevelCreated *time.Time `json:"inventoryLevelCreated,omitempty"`
	InventoryLevelUpdated *time.Time `json:"inventoryLevelUpdated,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductPatch is a sparse update: nil fields are left untouched. It is the
// unit of both single-row partial updates and bulk updates.
type ProductPatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	MSC         *bool    `json:"msc,omitempty"`
}

// BulkPatch is the validated subset of fields a bulk update may touch.
type BulkPatch struct {
	Price *float64
	MSC   *bool
}

// Empty reports whether the patch carries no fields at all.
func (p BulkPatch) Empty() bool {
	return p.Price == nil && p.MSC == nil
}
