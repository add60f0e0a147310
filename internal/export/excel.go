// =============================================================================
// Australian POS Data Generator - Excel Writer
// =============================================================================

package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/aus-pos-datagen/internal/models"
	"github.com/ginjaninja78/aus-pos-datagen/pkg/utils"
)

// WriteExcel writes the dataset as a single workbook with one sheet per
// entity and returns the path written.
func WriteExcel(ds *models.Dataset, dir string) (string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, tbl := range tables(ds) {
		sheet := sheetTitle(tbl.Name)
		if i == 0 {
			// Rename the default sheet instead of leaving an empty Sheet1.
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return "", fmt.Errorf("renaming sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return "", fmt.Errorf("creating sheet %s: %w", sheet, err)
			}
		}
		if err := writeSheet(f, sheet, tbl); err != nil {
			return "", err
		}
	}

	path := filepath.Join(dir, "aus_pos_data.xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving workbook: %w", err)
	}
	return path, nil
}

func writeSheet(f *excelize.File, sheet string, tbl table) error {
	header := make([]any, len(tbl.Header))
	for i, h := range tbl.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header on %s: %w", sheet, err)
	}

	for ri, row := range tbl.Rows {
		cells := make([]any, len(row))
		for ci, v := range row {
			cells[ci] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, ri+2)
		if err != nil {
			return fmt.Errorf("addressing row on %s: %w", sheet, err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("writing row on %s: %w", sheet, err)
		}
	}
	return nil
}

// sheetTitle turns an entity name like "transaction_items" into a sheet
// title like "Transaction Items".
func sheetTitle(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
