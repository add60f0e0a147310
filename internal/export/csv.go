// =============================================================================
// Australian POS Data Generator - CSV Writer
// =============================================================================

package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ginjaninja78/aus-pos-datagen/internal/models"
	"github.com/ginjaninja78/aus-pos-datagen/pkg/utils"
)

// WriteCSV writes the dataset as five CSV files under dir and returns the
// paths written, keyed by entity name. Existing files are overwritten.
func WriteCSV(ds *models.Dataset, dir string) (map[string]string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, err
	}

	paths := make(map[string]string, 5)
	for _, tbl := range tables(ds) {
		path := filepath.Join(dir, tbl.Name+".csv")
		if err := writeCSVFile(path, tbl); err != nil {
			return nil, err
		}
		paths[tbl.Name] = path
	}
	return paths, nil
}

func writeCSVFile(path string, tbl table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(tbl.Header); err != nil {
		return fmt.Errorf("writing header to %s: %w", path, err)
	}
	for _, row := range tbl.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row to %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return f.Close()
}
