package services

import (
	"fmt"
	"log"

	"catalog/internal/apperrors"
	"catalog/internal/models"
	"catalog/internal/validation"
	"catalog/pkg/rabbitmq"
)

// ImportProducts validates and persists a batch of imported products in one
// write, stamping the caller as owner of every row and recording an import
// log for the uploaded file.
func (s *ProductService) ImportProducts(callerID, fileName, uploadDate string, payloads []validation.ProductPayload) (int64, error) {
	products := make([]models.Product, 0, len(payloads))
	for i := range payloads {
		product := payloads[i].ToModel()
		product.UserID = callerID
		products = append(products, product)
	}

	count, err := s.repo.CreateMany(products)
	if err != nil {
		return 0, err
	}

	if err := s.uploadRepo.Create(&models.UploadFile{
		FileName:   fileName,
		UploadDate: uploadDate,
		UserID:     callerID,
		ItemCount:  int(count),
	}); err != nil {
		log.Printf("Warning: failed to record import log for %s: %v", fileName, err)
	}

	s.invalidateCache()
	s.publishEvent(rabbitmq.Event{
		Type:   "product.imported",
		UserID: callerID,
		Count:  count,
	})
	return count, nil
}

// BulkUpdateProducts applies one shared patch across the selected rows as a
// single batched write scoped to the caller's own products. Rows owned by
// other users are silently excluded; the returned count covers only the rows
// actually changed, so callers cannot infer ownership of excluded rows.
func (s *ProductService) BulkUpdateProducts(callerID string, rows []validation.BulkProductUpdate) (int64, error) {
	if len(rows) == 0 {
		return 0, apperrors.NewBadRequest("No products to update")
	}

	patch := models.BulkPatch{MSC: rows[0].MSC}
	if rows[0].Price != nil {
		price := float64(*rows[0].Price)
		patch.Price = &price
	}
	if patch.Empty() {
		return 0, apperrors.NewBadRequest("No fields to update")
	}

	// Every record must carry the same field values: the wire shape allows
	// per-row values, but the pipeline applies one shared patch. Rejecting
	// heterogeneous batches here keeps a silent partial mismatch from ever
	// reaching the store.
	details := validation.FieldErrors{}
	for i, row := range rows {
		if !samePatch(patch, row) {
			return 0, apperrors.NewBadRequest("All products in a bulk update must share the same field values")
		}
		if !validation.ValidID(row.ID) {
			details[fmt.Sprintf("products[%d].id", i)] = []string{"Invalid product ID"}
		}
	}
	// All-or-nothing: one malformed id rejects the whole batch.
	if len(details) > 0 {
		return 0, apperrors.NewValidation("Invalid product ID", details)
	}

	if patch.Price != nil && *patch.Price <= 0 {
		return 0, apperrors.NewValidation("Invalid data", validation.FieldErrors{
			"price": {"Price must be greater than zero"},
		})
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	count, err := s.repo.BulkUpdate(ids, patch, callerID)
	if err != nil {
		return 0, err
	}
	log.Printf("Bulk update by user %s touched %d of %d selected products", callerID, count, len(ids))

	s.invalidateCache()
	s.publishEvent(rabbitmq.Event{
		Type:       "product.bulk_updated",
		UserID:     callerID,
		ProductIDs: ids,
		Count:      count,
	})
	return count, nil
}

func samePatch(patch models.BulkPatch, row validation.BulkProductUpdate) bool {
	if (patch.MSC == nil) != (row.MSC == nil) {
		return false
	}
	if patch.MSC != nil && *patch.MSC != *row.MSC {
		return false
	}
	if (patch.Price == nil) != (row.Price == nil) {
		return false
	}
	if patch.Price != nil && *patch.Price != float64(*row.Price) {
		return false
	}
	return true
}
