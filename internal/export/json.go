// =============================================================================
// Australian POS Data Generator - JSON Writer
// =============================================================================

package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ginjaninja78/aus-pos-datagen/internal/models"
	"github.com/ginjaninja78/aus-pos-datagen/pkg/utils"
)

// WriteJSON writes the dataset as five JSON array files under dir. Unlike
// the flat CSV layout, transactions carry their line items nested, so no
// separate transaction_items file is produced.
func WriteJSON(ds *models.Dataset, dir string) (map[string]string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, err
	}

	files := []struct {
		name string
		data any
	}{
		{nameBusinesses, ds.Businesses},
		{nameCustomers, ds.Customers},
		{"products", ds.Products},
		{nameTxns, ds.Transactions},
		{nameReturns, ds.Returns},
	}

	paths := make(map[string]string, len(files))
	for _, file := range files {
		path := filepath.Join(dir, file.name+".json")
		if err := writeJSONFile(path, file.data); err != nil {
			return nil, err
		}
		paths[file.name] = path
	}
	return paths, nil
}

func writeJSONFile(path string, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
