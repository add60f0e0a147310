package export

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/aus-pos-datagen/internal/catalog"
	"github.com/ginjaninja78/aus-pos-datagen/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testDataset(t *testing.T) *models.Dataset {
	t.Helper()
	products := catalog.Products()
	coffee := products[0]

	business, err := models.NewBusiness("01", "Harbour Trading Co Pty Ltd", "51 824 753 556", models.NSW, "2000", true, "Square", 2)
	require.NoError(t, err)

	customer, err := models.NewCustomer("000001", models.CustomerLoyalty, models.NSW, "2100", "")
	require.NoError(t, err)

	at := time.Date(2025, 5, 12, 13, 30, 0, 0, time.UTC)
	item, err := models.NewTransactionItem("TX000001", 1, coffee, 2, dec("8.18"), dec("0.82"), dec("9.00"))
	require.NoError(t, err)
	transaction, err := models.NewTransaction("TX000001", "01", "000001", at, models.PaymentEFTPOS, dec("9.00"), decimal.Zero, []models.TransactionItem{item})
	require.NoError(t, err)

	ret, err := models.NewReturn("RET00001", transaction, 1, at.AddDate(0, 0, 5), models.ReasonChangeMind, dec("9.00"))
	require.NoError(t, err)

	return &models.Dataset{
		Businesses:   []models.Business{business},
		Customers:    []models.Customer{customer},
		Products:     products,
		Transactions: []models.Transaction{transaction},
		Returns:      []models.Return{ret},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	ds := testDataset(t)

	paths, err := WriteCSV(ds, dir)
	require.NoError(t, err)
	require.Len(t, paths, 5)

	transactions := readCSV(t, paths["transactions"])
	require.Len(t, transactions, 2) // header + one row
	assert.Equal(t, transactionHeader(), transactions[0])
	row := transactions[1]
	assert.Equal(t, "TX000001", row[0])
	assert.Equal(t, "2025-05-12 13:30:00", row[3])
	assert.Equal(t, "8.18", row[4])
	assert.Equal(t, "0.82", row[5])
	assert.Equal(t, "9.00", row[6])
	assert.Equal(t, "EFTPOS", row[7])

	items := readCSV(t, paths["transaction_items"])
	require.Len(t, items, 2)
	assert.Equal(t, itemHeader(), items[0])
	assert.Equal(t, "1", items[1][1]) // line_number

	businesses := readCSV(t, paths["businesses"])
	assert.Equal(t, businessHeader(), businesses[0])
	assert.Equal(t, "51 824 753 556", businesses[1][2])

	returns := readCSV(t, paths["returns"])
	require.Len(t, returns, 2)
	assert.Equal(t, "2025-05-17", returns[1][2]) // return_date, date only
}

func TestWriteJSONNestsLineItems(t *testing.T) {
	dir := t.TempDir()
	ds := testDataset(t)

	paths, err := WriteJSON(ds, dir)
	require.NoError(t, err)
	// No separate items file: items travel inside their transaction.
	_, ok := paths[nameItems]
	assert.False(t, ok)

	data, err := os.ReadFile(paths["transactions"])
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)

	items, ok := decoded[0]["items"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 1)
}

func TestWriteExcelSheets(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteExcel(testDataset(t), dir)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".xlsx"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteSQLiteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ds := testDataset(t)

	path, err := WriteSQLite(ds, dir)
	require.NoError(t, err)

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	counts := map[string]int{
		"businesses":        1,
		"customers":         1,
		"transactions":      1,
		"transaction_items": 1,
		"returns":           1,
	}
	for tableName, want := range counts {
		var got int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+tableName).Scan(&got))
		assert.Equal(t, want, got, "row count for %s", tableName)
	}

	var abn string
	require.NoError(t, db.QueryRow("SELECT abn FROM businesses WHERE store_id = '01'").Scan(&abn))
	assert.Equal(t, "51 824 753 556", abn)
}

func TestSheetTitle(t *testing.T) {
	assert.Equal(t, "Transaction Items", sheetTitle("transaction_items"))
	assert.Equal(t, "Businesses", sheetTitle("businesses"))
}

func TestConsoleSinkEmitsNDJSON(t *testing.T) {
	ds := testDataset(t)

	var buf strings.Builder
	sink := NewConsoleSink(&buf)
	require.NoError(t, sink.Emit(context.Background(), ds.Transactions[0]))
	require.NoError(t, sink.Emit(context.Background(), ds.Transactions[0]))
	require.NoError(t, sink.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &decoded))
	assert.Equal(t, "TX000001", decoded["transaction_id"])
}

func TestFileSinkAppends(t *testing.T) {
	ds := testDataset(t)
	path := filepath.Join(t.TempDir(), "stream.ndjson")

	sink, err := NewFileSink(path)
	require.NoError(t, err)
	require.NoError(t, sink.Emit(context.Background(), ds.Transactions[0]))
	require.NoError(t, sink.Close())

	sink, err = NewFileSink(path)
	require.NoError(t, err)
	require.NoError(t, sink.Emit(context.Background(), ds.Transactions[0]))
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2)
}
