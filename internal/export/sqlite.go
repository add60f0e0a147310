// =============================================================================
// Australian POS Data Generator - SQLite Writer
// =============================================================================
//
// Writes the dataset into a self-contained SQLite database file. The schema
// mirrors the CSV layout one table per entity, so downstream consumers can
// switch between the two without remapping columns.
//
// =============================================================================

package export

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/ginjaninja78/aus-pos-datagen/internal/models"
	"github.com/ginjaninja78/aus-pos-datagen/pkg/utils"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS businesses (
	store_id        TEXT PRIMARY KEY,
	business_name   TEXT NOT NULL,
	abn             TEXT NOT NULL,
	state           TEXT NOT NULL,
	postcode        TEXT NOT NULL,
	gst_registered  TEXT NOT NULL,
	pos_system_type TEXT NOT NULL,
	terminal_count  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS customers (
	customer_id    TEXT PRIMARY KEY,
	customer_type  TEXT NOT NULL,
	state          TEXT NOT NULL,
	postcode       TEXT NOT NULL,
	loyalty_points INTEGER NOT NULL,
	abn            TEXT
);
CREATE TABLE IF NOT EXISTS transactions (
	transaction_id       TEXT PRIMARY KEY,
	store_id             TEXT NOT NULL REFERENCES businesses(store_id),
	customer_id          TEXT,
	transaction_datetime TEXT NOT NULL,
	subtotal_ex_gst      NUMERIC NOT NULL,
	gst_amount           NUMERIC NOT NULL,
	total_inc_gst        NUMERIC NOT NULL,
	payment_method       TEXT NOT NULL,
	tender_amount        NUMERIC NOT NULL,
	change_amount        NUMERIC NOT NULL
);
CREATE TABLE IF NOT EXISTS transaction_items (
	transaction_id       TEXT NOT NULL REFERENCES transactions(transaction_id),
	line_number          INTEGER NOT NULL,
	product_id           TEXT NOT NULL,
	quantity             INTEGER NOT NULL,
	unit_price_ex_gst    NUMERIC NOT NULL,
	line_gst_amount      NUMERIC NOT NULL,
	line_total_inc_gst   NUMERIC NOT NULL,
	gst_code             TEXT NOT NULL,
	unit_price_inc_gst   NUMERIC NOT NULL,
	line_subtotal_ex_gst NUMERIC NOT NULL,
	PRIMARY KEY (transaction_id, line_number)
);
CREATE TABLE IF NOT EXISTS returns (
	return_id               TEXT PRIMARY KEY,
	original_transaction_id TEXT NOT NULL REFERENCES transactions(transaction_id),
	return_date             TEXT NOT NULL,
	return_reason_code      TEXT NOT NULL,
	refund_amount           NUMERIC NOT NULL,
	line_number             INTEGER NOT NULL,
	customer_id             TEXT
);
`

// WriteSQLite writes the dataset into a SQLite database under dir and
// returns the database path. All inserts run in one transaction so a failed
// export never leaves a half-populated file behind.
func WriteSQLite(ds *models.Dataset, dir string) (string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "aus_pos_data.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return "", fmt.Errorf("opening sqlite database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return "", fmt.Errorf("creating sqlite schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning sqlite transaction: %w", err)
	}
	defer tx.Rollback()

	for _, tbl := range tables(ds) {
		if err := insertRows(tx, tbl); err != nil {
			return "", err
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing sqlite transaction: %w", err)
	}
	return path, db.Close()
}

func insertRows(tx *sql.Tx, tbl table) error {
	placeholders := make([]string, len(tbl.Header))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		tbl.Name,
		strings.Join(tbl.Header, ", "),
		strings.Join(placeholders, ", "),
	)

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w", tbl.Name, err)
	}
	defer stmt.Close()

	for _, row := range tbl.Rows {
		args := make([]any, len(row))
		for i, v := range row {
			args[i] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("inserting into %s: %w", tbl.Name, err)
		}
	}
	return nil
}
