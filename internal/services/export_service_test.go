package services

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"inventario_api/internal/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestExportFilename(t *testing.T) {
	ts := time.Date(2024, 3, 7, 15, 4, 5, 0, time.UTC)
	got := ExportFilename(ts)
	want := "inventario_2024-03-07.xlsx"
	if got != want {
		t.Errorf("ExportFilename = %q, want %q", got, want)
	}
}

func TestExportService_Aggregates(t *testing.T) {
	db := newTestDB(t)
	rs := NewRecordService(db)
	es := NewExportService(db)

	seed := []RecordInput{
		{Code: "ABC1", Name: "Widget", Quantity: 3},
		{Code: "ABC1", Name: "Widget", Quantity: 4},
		{Code: "XYZ9", Name: "Gadget", Quantity: 2},
	}
	for _, in := range seed {
		if _, err := rs.Create("s1", in); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	data, err := es.ExportAndPurge("s1")
	if err != nil {
		t.Fatalf("ExportAndPurge returned error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open exported workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("read sheet %q: %v", exportSheet, err)
	}
	if len(rows) != 3 {
		t.Fatalf("sheet has %d rows, want header + 2 groups", len(rows))
	}

	header := rows[0]
	wantHeader := []string{"Código", "Nombre", "Cantidad Total"}
	for i, want := range wantHeader {
		if header[i] != want {
			t.Errorf("header[%d] = %q, want %q", i, header[i], want)
		}
	}

	totals := map[string]string{}
	for _, row := range rows[1:] {
		totals[row[0]+"|"+row[1]] = row[2]
	}
	if totals["ABC1|Widget"] != "7" {
		t.Errorf("total for ABC1/Widget = %q, want %q", totals["ABC1|Widget"], "7")
	}
	if totals["XYZ9|Gadget"] != "2" {
		t.Errorf("total for XYZ9/Gadget = %q, want %q", totals["XYZ9|Gadget"], "2")
	}
}

func TestExportService_Purges(t *testing.T) {
	db := newTestDB(t)
	rs := NewRecordService(db)
	es := NewExportService(db)

	if _, err := rs.Create("s1", RecordInput{Code: "ABC1", Name: "Widget", Quantity: 3}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := rs.Create("other", RecordInput{Code: "KEEP", Name: "Keep", Quantity: 1}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := es.ExportAndPurge("s1"); err != nil {
		t.Fatalf("ExportAndPurge returned error: %v", err)
	}

	records, err := rs.List("s1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("session still has %d records after export, want 0", len(records))
	}

	kept, err := rs.List("other")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(kept) != 1 {
		t.Errorf("other session has %d records after foreign export, want 1", len(kept))
	}
}

func TestExportService_FailureDoesNotPurge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	open := func() *gorm.DB {
		db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			t.Fatalf("open sqlite: %v", err)
		}
		return db
	}

	db := open()
	if err := db.AutoMigrate(&models.ScanRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	rs := NewRecordService(db)
	for _, in := range []RecordInput{
		{Code: "ABC1", Name: "Widget", Quantity: 3},
		{Code: "ABC1", Name: "Widget", Quantity: 4},
	} {
		if _, err := rs.Create("s1", in); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	// Export through a dead connection to the same file.
	broken := open()
	sqlDB, err := broken.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.Close()

	es := NewExportService(broken)
	if _, err := es.ExportAndPurge("s1"); err == nil {
		t.Fatal("ExportAndPurge on a closed store returned nil error")
	}

	// The failed export must not have purged anything.
	records, err := rs.List("s1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("session has %d records after failed export, want 2", len(records))
	}
}

func TestExportService_EmptySession(t *testing.T) {
	db := newTestDB(t)
	es := NewExportService(db)

	data, err := es.ExportAndPurge("empty")
	if err != nil {
		t.Fatalf("ExportAndPurge on empty session returned error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open exported workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("read sheet %q: %v", exportSheet, err)
	}
	if len(rows) != 1 {
		t.Errorf("empty export has %d rows, want header only", len(rows))
	}
}
