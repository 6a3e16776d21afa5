package services

import (
	"fmt"
	"unicode/utf8"

	"inventario_api/internal/models"

	"gorm.io/gorm"
)

// maxCodeLength bounds the stored product code.
const maxCodeLength = 50

type RecordService struct {
	db *gorm.DB
}

func NewRecordService(db *gorm.DB) *RecordService {
	return &RecordService{db: db}
}

// RecordInput carries the writable fields of a scan record. Code is
// always text; numeric input has been coerced by the caller.
type RecordInput struct {
	Code     string
	Name     string
	Quantity int
}

// validate enforces presence and length. Quantity sign/zero is not
// validated; a count of zero or a correction below zero is stored as-is.
func (in RecordInput) validate() error {
	if in.Code == "" {
		return NewValidationError("code", "El campo 'code' es obligatorio")
	}
	if utf8.RuneCountInString(in.Code) > maxCodeLength {
		return NewValidationError("code", fmt.Sprintf("El campo 'code' supera los %d caracteres", maxCodeLength))
	}
	if in.Name == "" {
		return NewValidationError("name", "El campo 'name' es obligatorio")
	}
	return nil
}

// Create inserts a new record for the session and returns its id.
func (rs *RecordService) Create(sessionID string, in RecordInput) (uint, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}

	record := models.ScanRecord{
		Code:      in.Code,
		Name:      in.Name,
		Quantity:  in.Quantity,
		SessionID: sessionID,
	}
	if err := rs.db.Create(&record).Error; err != nil {
		return 0, fmt.Errorf("failed to save record: %w", err)
	}

	return record.ID, nil
}

// Update overwrites code, name and quantity of the record matching both
// id and session. A miss on either returns ErrRecordNotFound, so a
// guessed id never reveals or mutates another session's record.
func (rs *RecordService) Update(sessionID string, id uint, in RecordInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	result := rs.db.Model(&models.ScanRecord{}).
		Where("id = ? AND session_id = ?", id, sessionID).
		Updates(map[string]interface{}{
			"code":     in.Code,
			"name":     in.Name,
			"quantity": in.Quantity,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// Delete removes the record matching both id and session.
func (rs *RecordService) Delete(sessionID string, id uint) error {
	result := rs.db.
		Where("id = ? AND session_id = ?", id, sessionID).
		Delete(&models.ScanRecord{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// List returns every record of the session in storage order. An empty
// session yields an empty slice, not an error.
func (rs *RecordService) List(sessionID string) ([]models.ScanRecord, error) {
	records := []models.ScanRecord{}
	if err := rs.db.Where("session_id = ?", sessionID).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}
