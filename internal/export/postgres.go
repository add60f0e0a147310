// =============================================================================
// Australian POS Data Generator - PostgreSQL Writer
// =============================================================================
//
// Loads the dataset into a PostgreSQL database. Tables are dropped and
// recreated on every export so the database always reflects exactly one
// generation run.
//
// =============================================================================

package export

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/ginjaninja78/aus-pos-datagen/internal/models"
)

const postgresSchema = `
DROP TABLE IF EXISTS returns;
DROP TABLE IF EXISTS transaction_items;
DROP TABLE IF EXISTS transactions;
DROP TABLE IF EXISTS customers;
DROP TABLE IF EXISTS businesses;

CREATE TABLE businesses (
	store_id        TEXT PRIMARY KEY,
	business_name   TEXT NOT NULL,
	abn             TEXT NOT NULL,
	state           TEXT NOT NULL,
	postcode        TEXT NOT NULL,
	gst_registered  BOOLEAN NOT NULL,
	pos_system_type TEXT NOT NULL,
	terminal_count  INTEGER NOT NULL
);
CREATE TABLE customers (
	customer_id    TEXT PRIMARY KEY,
	customer_type  TEXT NOT NULL,
	state          TEXT NOT NULL,
	postcode       TEXT NOT NULL,
	loyalty_points INTEGER NOT NULL,
	abn            TEXT
);
CREATE TABLE transactions (
	transaction_id       TEXT PRIMARY KEY,
	store_id             TEXT NOT NULL REFERENCES businesses(store_id),
	customer_id          TEXT,
	transaction_datetime TIMESTAMPTZ NOT NULL,
	subtotal_ex_gst      NUMERIC(12,2) NOT NULL,
	gst_amount           NUMERIC(12,2) NOT NULL,
	total_inc_gst        NUMERIC(12,2) NOT NULL,
	payment_method       TEXT NOT NULL,
	tender_amount        NUMERIC(12,2) NOT NULL,
	change_amount        NUMERIC(12,2) NOT NULL
);
CREATE TABLE transaction_items (
	transaction_id       TEXT NOT NULL REFERENCES transactions(transaction_id),
	line_number          INTEGER NOT NULL,
	product_id           TEXT NOT NULL,
	quantity             INTEGER NOT NULL,
	unit_price_ex_gst    NUMERIC(12,2) NOT NULL,
	line_gst_amount      NUMERIC(12,2) NOT NULL,
	line_total_inc_gst   NUMERIC(12,2) NOT NULL,
	gst_code             TEXT NOT NULL,
	unit_price_inc_gst   NUMERIC(12,2) NOT NULL,
	line_subtotal_ex_gst NUMERIC(12,2) NOT NULL,
	PRIMARY KEY (transaction_id, line_number)
);
CREATE TABLE returns (
	return_id               TEXT PRIMARY KEY,
	original_transaction_id TEXT NOT NULL REFERENCES transactions(transaction_id),
	return_date             DATE NOT NULL,
	return_reason_code      TEXT NOT NULL,
	refund_amount           NUMERIC(12,2) NOT NULL,
	line_number             INTEGER NOT NULL,
	customer_id             TEXT
);
`

const (
	insertBusiness = `INSERT INTO businesses (store_id, business_name, abn, state, postcode, gst_registered, pos_system_type, terminal_count)
		VALUES (:store_id, :business_name, :abn, :state, :postcode, :gst_registered, :pos_system_type, :terminal_count)`
	insertCustomer = `INSERT INTO customers (customer_id, customer_type, state, postcode, loyalty_points, abn)
		VALUES (:customer_id, :customer_type, :state, :postcode, :loyalty_points, :abn)`
	insertTransaction = `INSERT INTO transactions (transaction_id, store_id, customer_id, transaction_datetime, subtotal_ex_gst, gst_amount, total_inc_gst, payment_method, tender_amount, change_amount)
		VALUES (:transaction_id, :store_id, :customer_id, :transaction_datetime, :subtotal_ex_gst, :gst_amount, :total_inc_gst, :payment_method, :tender_amount, :change_amount)`
	insertItem = `INSERT INTO transaction_items (transaction_id, line_number, product_id, quantity, unit_price_ex_gst, line_gst_amount, line_total_inc_gst, gst_code, unit_price_inc_gst, line_subtotal_ex_gst)
		VALUES (:transaction_id, :line_number, :product_id, :quantity, :unit_price_ex_gst, :line_gst_amount, :line_total_inc_gst, :gst_code, :unit_price_inc_gst, :line_subtotal_ex_gst)`
	insertReturn = `INSERT INTO returns (return_id, original_transaction_id, return_date, return_reason_code, refund_amount, line_number, customer_id)
		VALUES (:return_id, :original_transaction_id, :return_date, :return_reason_code, :refund_amount, :line_number, :customer_id)`
)

// WritePostgres loads the dataset into the database at dsn. The whole load
// runs in one transaction; on error the database keeps its previous content.
func WritePostgres(ctx context.Context, ds *models.Dataset, dsn string) error {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning postgres transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, postgresSchema); err != nil {
		return fmt.Errorf("creating postgres schema: %w", err)
	}

	for _, b := range ds.Businesses {
		if _, err := tx.NamedExecContext(ctx, insertBusiness, b); err != nil {
			return fmt.Errorf("inserting business %s: %w", b.StoreID, err)
		}
	}
	for _, c := range ds.Customers {
		if _, err := tx.NamedExecContext(ctx, insertCustomer, c); err != nil {
			return fmt.Errorf("inserting customer %s: %w", c.CustomerID, err)
		}
	}
	for _, t := range ds.Transactions {
		if _, err := tx.NamedExecContext(ctx, insertTransaction, t); err != nil {
			return fmt.Errorf("inserting transaction %s: %w", t.TransactionID, err)
		}
		for _, it := range t.Items {
			if _, err := tx.NamedExecContext(ctx, insertItem, it); err != nil {
				return fmt.Errorf("inserting line %d of %s: %w", it.LineNumber, it.TransactionID, err)
			}
		}
	}
	for _, ret := range ds.Returns {
		if _, err := tx.NamedExecContext(ctx, insertReturn, ret); err != nil {
			return fmt.Errorf("inserting return %s: %w", ret.ReturnID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing postgres transaction: %w", err)
	}
	return nil
}
