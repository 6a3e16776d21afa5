package models

import "time"

// ScanRecord represents a single scanned product entry within a session
type ScanRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Code      string    `json:"code" gorm:"size:50;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	SessionID string    `json:"session_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for ScanRecord
func (ScanRecord) TableName() string {
	return "scan_records"
}

// ExportRow is one aggregated line of the inventory export:
// records sharing (code, name) within a session collapse into a
// single row with their quantities summed.
type ExportRow struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	TotalQuantity int    `json:"total_quantity"`
}
