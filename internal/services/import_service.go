package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"delivery_tracker/internal/apperr"
)

// importColumns is the fixed CSV schema for bulk product import.
const importColumns = 18

// ImportRow is one parsed line of the bulk import file.
type ImportRow struct {
	ProductID       uint
	WarehouseID     uint
	Name            string
	Category        string
	Description     string
	SKU             string
	Barcode         string
	UnitPrice       float64
	StockQuantity   int
	ReorderLevel    int
	LastRestockDate *time.Time
	ExpiryDate      *time.Time
	SupplierID      uint
	Weight          float64
	Dimensions      string
	Fragile         bool
	Refrigerated    bool
	Status          string
}

// RowError reports a single rejected line without failing the import.
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ImportReport summarizes a bulk import run.
type ImportReport struct {
	Created int        `json:"created"`
	Merged  int        `json:"merged"`
	Errors  []RowError `json:"errors"`
}

// ParseImportRow validates and converts one CSV record. Dates use the
// D/M/YYYY convention of the upload format.
func ParseImportRow(record []string) (ImportRow, error) {
	if len(record) != importColumns {
		return ImportRow{}, fmt.Errorf("expected %d columns, got %d", importColumns, len(record))
	}
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}

	row := ImportRow{
		Name:        record[2],
		Category:    record[3],
		Description: record[4],
		SKU:         record[5],
		Barcode:     record[6],
		Dimensions:  record[14],
		Status:      record[17],
	}
	if row.Name == "" || row.SKU == "" || row.Category == "" {
		return ImportRow{}, fmt.Errorf("name, category and sku are required")
	}

	var err error
	if row.ProductID, err = parseUintField(record[0], "product id"); err != nil {
		return ImportRow{}, err
	}
	if row.WarehouseID, err = parseUintField(record[1], "warehouse id"); err != nil {
		return ImportRow{}, err
	}
	if row.UnitPrice, err = parseFloatField(record[7], "unit price"); err != nil {
		return ImportRow{}, err
	}
	if row.StockQuantity, err = parseIntField(record[8], "stock quantity"); err != nil {
		return ImportRow{}, err
	}
	if row.ReorderLevel, err = parseIntField(record[9], "reorder level"); err != nil {
		return ImportRow{}, err
	}
	if row.LastRestockDate, err = parseDateField(record[10], "last restock date"); err != nil {
		return ImportRow{}, err
	}
	if row.ExpiryDate, err = parseDateField(record[11], "expiry date"); err != nil {
		return ImportRow{}, err
	}
	if row.SupplierID, err = parseUintField(record[12], "supplier id"); err != nil {
		return ImportRow{}, err
	}
	if row.Weight, err = parseFloatField(record[13], "weight"); err != nil {
		return ImportRow{}, err
	}
	row.Fragile = parseBoolField(record[15])
	row.Refrigerated = parseBoolField(record[16])
	return row, nil
}

// ImportCSV reads the upload row by row and applies each line through
// the regular service calls, so re-importing the same file is
// idempotent for reference entities: categories and suppliers resolve
// to existing rows, existing SKUs merge stock instead of duplicating.
func ImportCSV(ctx context.Context, r io.Reader) (*ImportReport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // length is validated per row

	report := &ImportReport{Errors: []RowError{}}
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperr.Validation("malformed csv at line %d: %v", line+1, err)
		}
		line++

		// Tolerate a header line.
		if line == 1 && strings.EqualFold(record[0], "product_id") {
			continue
		}

		row, err := ParseImportRow(record)
		if err != nil {
			report.Errors = append(report.Errors, RowError{Line: line, Message: err.Error()})
			continue
		}

		if err := importRow(ctx, row, line, report); err != nil {
			report.Errors = append(report.Errors, RowError{Line: line, Message: err.Error()})
		}
	}

	logrus.WithFields(logrus.Fields{
		"created": report.Created,
		"merged":  report.Merged,
		"errors":  len(report.Errors),
	}).Info("Bulk import finished.")
	return report, nil
}

func importRow(ctx context.Context, row ImportRow, line int, report *ImportReport) error {
	category, err := FindOrCreateCategory(ctx, row.Category)
	if err != nil {
		return fmt.Errorf("category: %w", err)
	}
	if row.SupplierID != 0 {
		if _, err := GetSupplier(ctx, row.SupplierID); err != nil {
			return fmt.Errorf("supplier: %w", err)
		}
	}

	product, created, err := FindOrCreateProductBySKU(ctx, CreateProductInput{
		Name:            row.Name,
		SKU:             row.SKU,
		Barcode:         row.Barcode,
		Description:     row.Description,
		CategoryID:      category.ID,
		UnitPrice:       row.UnitPrice,
		ReorderLevel:    row.ReorderLevel,
		Weight:          row.Weight,
		Dimensions:      row.Dimensions,
		Fragile:         row.Fragile,
		Refrigerated:    row.Refrigerated,
		LastRestockDate: row.LastRestockDate,
		ExpiryDate:      row.ExpiryDate,
		SupplierID:      row.SupplierID,
		WarehouseID:     row.WarehouseID,
		InitialStock:    row.StockQuantity,
	})
	if err != nil {
		return err
	}

	if created {
		report.Created++
		return nil
	}

	// Existing SKU: merge the incoming quantity into stock.
	if row.StockQuantity > 0 {
		ref := fmt.Sprintf("csv import line %d", line)
		if _, err := AddStock(ctx, row.WarehouseID, product.ID, row.StockQuantity, ref); err != nil {
			return fmt.Errorf("stock merge: %w", err)
		}
	}
	report.Merged++
	return nil
}

func parseUintField(raw, name string) (uint, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return uint(v), nil
}

func parseIntField(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}

func parseFloatField(raw, name string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}

// parseDateField reads the D/M/YYYY upload convention.
func parseDateField(raw, name string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2/1/2006", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q (want D/M/YYYY)", name, raw)
	}
	return &t, nil
}

func parseBoolField(raw string) bool {
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "si", "sí":
		return true
	}
	return false
}
