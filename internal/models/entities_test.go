package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validABN = "51 824 753 556"

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testProduct() Product {
	return Product{
		ProductID:       "000001",
		SKU:             "COFFEE-REG",
		Name:            "Regular Flat White",
		Category:        CategoryBeverages,
		UnitPriceIncGST: dec("4.50"),
		UnitPriceExGST:  dec("4.09"),
		GSTCode:         GSTStandard,
	}
}

// mustItem builds a reconciled single line for transaction-level tests.
func mustItem(t *testing.T, transactionID string, line, quantity int) TransactionItem {
	t.Helper()
	product := testProduct()
	total := product.UnitPriceIncGST.Mul(decimal.NewFromInt(int64(quantity)))
	gst := total.Div(decimal.NewFromInt(11)).Round(2)
	item, err := NewTransactionItem(transactionID, line, product, quantity, total.Sub(gst), gst, total)
	require.NoError(t, err)
	return item
}

func TestNewBusiness(t *testing.T) {
	b, err := NewBusiness("01", "Harbour Trading Co Pty Ltd", validABN, NSW, "2000", true, "Square", 3)
	require.NoError(t, err)
	assert.Equal(t, "01", b.StoreID)
	assert.Equal(t, NSW, b.State)
}

func TestNewBusinessRejectsBadABN(t *testing.T) {
	_, err := NewBusiness("01", "Bad ABN Pty Ltd", "12 345 678 901", NSW, "2000", true, "Square", 1)
	require.Error(t, err)

	var checksumErr *ChecksumError
	assert.ErrorAs(t, err, &checksumErr)
}

func TestNewBusinessRejectsMismatchedPostcode(t *testing.T) {
	// 3000 is a Victorian postcode.
	_, err := NewBusiness("01", "Wrong State Pty Ltd", validABN, NSW, "3000", true, "Square", 1)
	assert.Error(t, err)
}

func TestNewBusinessRejectsZeroTerminals(t *testing.T) {
	_, err := NewBusiness("01", "No Tills Pty Ltd", validABN, NSW, "2000", true, "Square", 0)
	assert.Error(t, err)
}

func TestNewCustomerBusinessTypeRequiresABN(t *testing.T) {
	_, err := NewCustomer("000001", CustomerBusiness, VIC, "3000", "")
	assert.Error(t, err)

	c, err := NewCustomer("000001", CustomerBusiness, VIC, "3000", validABN)
	require.NoError(t, err)
	assert.Equal(t, validABN, c.ABN)

	// Individuals may omit the ABN entirely.
	_, err = NewCustomer("000002", CustomerIndividual, VIC, "3000", "")
	assert.NoError(t, err)
}

func TestNewCustomerRejectsInvalidABN(t *testing.T) {
	_, err := NewCustomer("000001", CustomerBusiness, VIC, "3000", "12 345 678 901")
	require.Error(t, err)

	var checksumErr *ChecksumError
	assert.ErrorAs(t, err, &checksumErr)
}

func TestNewTransactionItemReconciliation(t *testing.T) {
	product := testProduct()

	// 2 x 4.50 = 9.00; gst = round(9.00/11) = 0.82.
	item, err := NewTransactionItem("TX1", 1, product, 2, dec("8.18"), dec("0.82"), dec("9.00"))
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	assert.True(t, item.UnitPriceExGST.Equal(dec("4.09")))

	// Broken split: subtotal + gst != total.
	_, err = NewTransactionItem("TX1", 1, product, 2, dec("8.00"), dec("0.82"), dec("9.00"))
	var recErr *ReconciliationError
	require.ErrorAs(t, err, &recErr)

	// Total inconsistent with unit price x quantity.
	_, err = NewTransactionItem("TX1", 1, product, 3, dec("8.18"), dec("0.82"), dec("9.00"))
	assert.ErrorAs(t, err, &recErr)
}

func TestNewTransactionItemGSTFreeMustBeZero(t *testing.T) {
	product := testProduct()
	product.GSTCode = GSTFree
	product.UnitPriceIncGST = dec("7.00")

	_, err := NewTransactionItem("TX1", 1, product, 1, dec("6.36"), dec("0.64"), dec("7.00"))
	var recErr *ReconciliationError
	require.ErrorAs(t, err, &recErr)

	item, err := NewTransactionItem("TX1", 1, product, 1, dec("7.00"), decimal.Zero, dec("7.00"))
	require.NoError(t, err)
	assert.True(t, item.LineGSTAmount.IsZero())
}

func TestNewTransactionSumsLines(t *testing.T) {
	items := []TransactionItem{
		mustItem(t, "TX1", 1, 1),
		mustItem(t, "TX1", 2, 2),
	}
	// 4.50 + 9.00 = 13.50.
	total := dec("13.50")

	at := time.Date(2025, 5, 12, 13, 0, 0, 0, time.UTC)
	tr, err := NewTransaction("TX1", "01", "", at, PaymentEFTPOS, total, decimal.Zero, items)
	require.NoError(t, err)

	assert.True(t, tr.TotalIncGST.Equal(total))
	assert.True(t, tr.SubtotalExGST.Add(tr.GSTAmount).Equal(tr.TotalIncGST))
	assert.True(t, tr.TenderAmount.Sub(tr.ChangeAmount).Equal(tr.TotalIncGST))
}

func TestNewTransactionRejectsGappedLineNumbers(t *testing.T) {
	items := []TransactionItem{
		mustItem(t, "TX1", 1, 1),
		mustItem(t, "TX1", 3, 1), // gap
	}
	at := time.Date(2025, 5, 12, 13, 0, 0, 0, time.UTC)
	_, err := NewTransaction("TX1", "01", "", at, PaymentEFTPOS, dec("9.00"), decimal.Zero, items)
	assert.Error(t, err)
}

func TestNewTransactionRejectsForeignLines(t *testing.T) {
	items := []TransactionItem{mustItem(t, "OTHER", 1, 1)}
	at := time.Date(2025, 5, 12, 13, 0, 0, 0, time.UTC)
	_, err := NewTransaction("TX1", "01", "", at, PaymentEFTPOS, dec("4.50"), decimal.Zero, items)

	var intErr *IntegrityError
	assert.ErrorAs(t, err, &intErr)
}

func TestNewTransactionRejectsTenderMismatch(t *testing.T) {
	items := []TransactionItem{mustItem(t, "TX1", 1, 1)}
	at := time.Date(2025, 5, 12, 13, 0, 0, 0, time.UTC)

	// Tender 5.00 with no change does not settle a 4.50 total.
	_, err := NewTransaction("TX1", "01", "", at, PaymentCash, dec("5.00"), decimal.Zero, items)
	var recErr *ReconciliationError
	require.ErrorAs(t, err, &recErr)

	// With the 0.50 change it reconciles.
	_, err = NewTransaction("TX1", "01", "", at, PaymentCash, dec("5.00"), dec("0.50"), items)
	assert.NoError(t, err)
}

func TestNewTransactionRequiresItems(t *testing.T) {
	at := time.Date(2025, 5, 12, 13, 0, 0, 0, time.UTC)
	_, err := NewTransaction("TX1", "01", "", at, PaymentEFTPOS, decimal.Zero, decimal.Zero, nil)
	assert.Error(t, err)
}

func testTransaction(t *testing.T) Transaction {
	t.Helper()
	items := []TransactionItem{mustItem(t, "TX1", 1, 2)}
	at := time.Date(2025, 5, 12, 13, 0, 0, 0, time.UTC)
	tr, err := NewTransaction("TX1", "01", "000042", at, PaymentEFTPOS, dec("9.00"), decimal.Zero, items)
	require.NoError(t, err)
	return tr
}

func TestNewReturn(t *testing.T) {
	original := testTransaction(t)
	returnDate := original.TransactionDatetime.AddDate(0, 0, 7)

	r, err := NewReturn("RET1", original, 1, returnDate, ReasonDefective, dec("9.00"))
	require.NoError(t, err)
	assert.Equal(t, original.TransactionID, r.OriginalTransactionID)
	assert.Equal(t, original.CustomerID, r.CustomerID)
}

func TestNewReturnRejectsMissingLine(t *testing.T) {
	original := testTransaction(t)
	returnDate := original.TransactionDatetime.AddDate(0, 0, 7)

	_, err := NewReturn("RET1", original, 2, returnDate, ReasonDefective, dec("9.00"))
	var intErr *IntegrityError
	assert.ErrorAs(t, err, &intErr)
}

func TestNewReturnRejectsOversizedRefund(t *testing.T) {
	original := testTransaction(t)
	returnDate := original.TransactionDatetime.AddDate(0, 0, 7)

	_, err := NewReturn("RET1", original, 1, returnDate, ReasonDefective, dec("9.01"))
	var recErr *ReconciliationError
	require.ErrorAs(t, err, &recErr)

	_, err = NewReturn("RET1", original, 1, returnDate, ReasonDefective, decimal.Zero)
	assert.ErrorAs(t, err, &recErr)
}

func TestNewReturnRejectsDateBeforePurchase(t *testing.T) {
	original := testTransaction(t)
	early := original.TransactionDatetime.AddDate(0, 0, -1)

	_, err := NewReturn("RET1", original, 1, early, ReasonDefective, dec("9.00"))
	var intErr *IntegrityError
	assert.ErrorAs(t, err, &intErr)
}
