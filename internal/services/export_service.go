package services

import (
	"fmt"
	"time"

	"inventario_api/internal/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const exportSheet = "Inventario"

type ExportService struct {
	db *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{db: db}
}

// ExportFilename embeds the export date: inventario_<YYYY-MM-DD>.xlsx.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("inventario_%s.xlsx", t.Format("2006-01-02"))
}

// ExportAndPurge aggregates the session's records by (code, name),
// renders them into a spreadsheet, and deletes the session's records.
// Aggregation, build and purge share one transaction: a record created
// while the export runs is either included in the sheet or survives the
// purge, and any failure rolls back without deleting anything.
func (es *ExportService) ExportAndPurge(sessionID string) ([]byte, error) {
	var out []byte

	err := es.db.Transaction(func(tx *gorm.DB) error {
		var rows []models.ExportRow
		if err := tx.Model(&models.ScanRecord{}).
			Select("code, name, SUM(quantity) AS total_quantity").
			Where("session_id = ?", sessionID).
			Group("code, name").
			Scan(&rows).Error; err != nil {
			return fmt.Errorf("failed to aggregate records: %w", err)
		}

		data, err := buildWorkbook(rows)
		if err != nil {
			return fmt.Errorf("failed to build spreadsheet: %w", err)
		}

		// Purge only once the response bytes are fully built.
		if err := tx.Where("session_id = ?", sessionID).
			Delete(&models.ScanRecord{}).Error; err != nil {
			return fmt.Errorf("failed to purge records: %w", err)
		}

		out = data
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// buildWorkbook renders one sheet with a header row and one row per
// aggregated group.
func buildWorkbook(rows []models.ExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	header := []interface{}{"Código", "Nombre", "Cantidad Total"}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []interface{}{row.Code, row.Name, row.TotalQuantity}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
