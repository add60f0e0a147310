package validation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/aus-pos-datagen/internal/catalog"
	"github.com/ginjaninja78/aus-pos-datagen/internal/models"
	"github.com/ginjaninja78/aus-pos-datagen/internal/season"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// validDataset builds a small hand-assembled dataset that passes every
// check, used as the baseline each corruption test mutates.
func validDataset(t *testing.T) *models.Dataset {
	t.Helper()
	products := catalog.Products()
	coffee := products[0] // 4.50 inc, standard rate

	business, err := models.NewBusiness("01", "Harbour Trading Co Pty Ltd", "51 824 753 556", models.NSW, "2000", true, "Square", 2)
	require.NoError(t, err)

	customer, err := models.NewCustomer("000001", models.CustomerLoyalty, models.NSW, "2100", "")
	require.NoError(t, err)

	at := time.Date(2025, 5, 12, 13, 30, 0, 0, time.UTC) // Monday lunch
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

func testOptions() Options {
	return Options{
		Season:     season.New(0.8, 1.4, season.Hours{Open: 9, Close: 17}, season.Hours{Open: 10, Close: 16}),
		RangeStart: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		RangeEnd:   time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestValidDatasetPasses(t *testing.T) {
	ds := validDataset(t)
	result := Check(ds, testOptions())
	assert.True(t, result.IsValid(), "unexpected issues: %v", result.Issues)
	assert.NoError(t, Verify(ds, testOptions()))
}

func TestDetectsDuplicateStoreIDs(t *testing.T) {
	ds := validDataset(t)
	ds.Businesses = append(ds.Businesses, ds.Businesses[0])

	err := Verify(ds, testOptions())
	var intErr *models.IntegrityError
	require.ErrorAs(t, err, &intErr)
}

func TestDetectsCorruptedABN(t *testing.T) {
	ds := validDataset(t)
	ds.Businesses[0].ABN = "51 824 753 557"

	err := Verify(ds, testOptions())
	var checksumErr *models.ChecksumError
	require.ErrorAs(t, err, &checksumErr)
}

func TestDetectsPostcodeOutsideState(t *testing.T) {
	ds := validDataset(t)
	ds.Businesses[0].Postcode = "3000"

	var intErr *models.IntegrityError
	assert.ErrorAs(t, Verify(ds, testOptions()), &intErr)
}

func TestDetectsBusinessCustomerWithoutABN(t *testing.T) {
	ds := validDataset(t)
	ds.Customers[0].CustomerType = models.CustomerBusiness
	ds.Customers[0].ABN = ""

	var intErr *models.IntegrityError
	assert.ErrorAs(t, Verify(ds, testOptions()), &intErr)
}

func TestDetectsNegativeLoyaltyBalance(t *testing.T) {
	ds := validDataset(t)
	ds.Customers[0].LoyaltyPoints = -1

	var recErr *models.ReconciliationError
	assert.ErrorAs(t, Verify(ds, testOptions()), &recErr)
}

func TestDetectsDanglingStoreReference(t *testing.T) {
	ds := validDataset(t)
	ds.Transactions[0].StoreID = "99"

	var intErr *models.IntegrityError
	assert.ErrorAs(t, Verify(ds, testOptions()), &intErr)
}

func TestDetectsDanglingCustomerReference(t *testing.T) {
	ds := validDataset(t)
	ds.Transactions[0].CustomerID = "999999"

	var intErr *models.IntegrityError
	assert.ErrorAs(t, Verify(ds, testOptions()), &intErr)
}

func TestDetectsAggregateDrift(t *testing.T) {
	ds := validDataset(t)
	ds.Transactions[0].GSTAmount = dec("0.99")

	var recErr *models.ReconciliationError
	assert.ErrorAs(t, Verify(ds, testOptions()), &recErr)
}

func TestDetectsLineSumMismatch(t *testing.T) {
	ds := validDataset(t)
	// Aggregates still reconcile with each other but no longer match the
	// line items underneath them.
	ds.Transactions[0].SubtotalExGST = dec("9.09")
	ds.Transactions[0].GSTAmount = dec("0.91")
	ds.Transactions[0].TotalIncGST = dec("10.00")
	ds.Transactions[0].TenderAmount = dec("10.00")

	var recErr *models.ReconciliationError
	assert.ErrorAs(t, Verify(ds, testOptions()), &recErr)
}

func TestDetectsUnknownProduct(t *testing.T) {
	ds := validDataset(t)
	ds.Transactions[0].Items[0].ProductID = "404404"

	var intErr *models.IntegrityError
	assert.ErrorAs(t, Verify(ds, testOptions()), &intErr)
}

func TestDetectsGSTOnFreeLine(t *testing.T) {
	ds := validDataset(t)
	item := &ds.Transactions[0].Items[0]
	item.GSTCode = models.GSTFree

	var recErr *models.ReconciliationError
	assert.ErrorAs(t, Verify(ds, testOptions()), &recErr)
}

func TestDetectsTimestampOutsideRange(t *testing.T) {
	ds := validDataset(t)
	ds.Transactions[0].TransactionDatetime = time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC)

	var intErr *models.IntegrityError
	assert.ErrorAs(t, Verify(ds, testOptions()), &intErr)
}

func TestDetectsTimestampOutsideTradingHours(t *testing.T) {
	ds := validDataset(t)
	ds.Transactions[0].TransactionDatetime = time.Date(2025, 5, 12, 3, 0, 0, 0, time.UTC)

	var intErr *models.IntegrityError
	assert.ErrorAs(t, Verify(ds, testOptions()), &intErr)
}

func TestDetectsReturnForMissingTransaction(t *testing.T) {
	ds := validDataset(t)
	ds.Returns[0].OriginalTransactionID = "TXMISSING"

	var intErr *models.IntegrityError
	assert.ErrorAs(t, Verify(ds, testOptions()), &intErr)
}

func TestDetectsReturnBeforePurchase(t *testing.T) {
	ds := validDataset(t)
	ds.Returns[0].ReturnDate = ds.Transactions[0].TransactionDatetime.AddDate(0, 0, -1)

	var intErr *models.IntegrityError
	assert.ErrorAs(t, Verify(ds, testOptions()), &intErr)
}

func TestDetectsOversizedRefund(t *testing.T) {
	ds := validDataset(t)
	ds.Returns[0].RefundAmount = dec("9.01")

	var recErr *models.ReconciliationError
	assert.ErrorAs(t, Verify(ds, testOptions()), &recErr)
}

func TestLateReturnIsOnlyAWarning(t *testing.T) {
	ds := validDataset(t)
	ds.Returns[0].ReturnDate = ds.Transactions[0].TransactionDatetime.AddDate(0, 0, 60)

	result := Check(ds, testOptions())
	assert.True(t, result.IsValid())
	assert.NoError(t, Verify(ds, testOptions()))

	var warned bool
	for _, issue := range result.Issues {
		if issue.Severity == SeverityWarning && issue.Entity == "return" {
			warned = true
		}
	}
	assert.True(t, warned)
}
