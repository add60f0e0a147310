// =============================================================================
// Australian POS Data Generator - Dataset Validation Engine
// =============================================================================
//
// Re-checks every invariant of a finished dataset before it is handed to
// export writers. The generator's factories already validate at
// construction time; this pass is the independent gate that guarantees the
// core value proposition (tax-compliant, referentially closed data) holds
// across the assembled whole.
//
// VALIDATION STRATEGY:
//   Validation is performed at multiple levels:
//   1. Entity-level: ABN checksums, postcode/state pairing
//   2. Transaction-level: line sums, tender reconciliation, trading hours
//   3. Dataset-level: referential closure across all collections
//
// ERROR HANDLING:
//   Issues are collected, not thrown immediately, so a defective run
//   reports everything wrong with it. Each issue carries the typed error
//   (ChecksumError, IntegrityError, ReconciliationError) that Verify
//   surfaces to abort the run. Warnings do not abort.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/aus-pos-datagen/internal/abn"
	"github.com/ginjaninja78/aus-pos-datagen/internal/models"
	"github.com/ginjaninja78/aus-pos-datagen/internal/season"
)

// Severity of a single issue. Errors are fatal to the run.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single validation finding.
type Issue struct {
	Severity Severity
	Entity   string
	ID       string
	Message  string

	// Err is the typed error behind a fatal issue; nil for warnings.
	Err error
}

func (i *Issue) String() string {
	return fmt.Sprintf("[%s] %s %s: %s", strings.ToUpper(string(i.Severity)), i.Entity, i.ID, i.Message)
}

// Result contains the findings of a full dataset check.
type Result struct {
	Issues []*Issue
}

// IsValid reports whether no fatal issues were found.
func (r *Result) IsValid() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return false
		}
	}
	return true
}

// FirstError returns the typed error of the first fatal issue, or nil.
func (r *Result) FirstError() error {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError && issue.Err != nil {
			return issue.Err
		}
	}
	return nil
}

// Options carries the run context the checks need.
type Options struct {
	// Season supplies trading windows for timestamp checks. Optional;
	// without it hour bounds are not checked.
	Season *season.Model

	// RangeStart and RangeEnd bound transaction dates (inclusive).
	RangeStart time.Time
	RangeEnd   time.Time
}

// Verify runs every check and returns the first fatal error, if any. This
// is the gate the orchestrator calls before handing the dataset over.
func Verify(ds *models.Dataset, opts Options) error {
	return Check(ds, opts).FirstError()
}

// Check runs every check and returns the collected findings.
func Check(ds *models.Dataset, opts Options) *Result {
	result := &Result{}
	checkBusinesses(ds, result)
	checkCustomers(ds, result)
	checkTransactions(ds, opts, result)
	checkReturns(ds, result)
	return result
}

func addError(r *Result, entity, id string, err error) {
	r.Issues = append(r.Issues, &Issue{
		Severity: SeverityError,
		Entity:   entity,
		ID:       id,
		Message:  err.Error(),
		Err:      err,
	})
}

func addWarning(r *Result, entity, id, message string) {
	r.Issues = append(r.Issues, &Issue{
		Severity: SeverityWarning,
		Entity:   entity,
		ID:       id,
		Message:  message,
	})
}

// =============================================================================
// ENTITY-LEVEL CHECKS
// =============================================================================

func checkBusinesses(ds *models.Dataset, r *Result) {
	seen := make(map[string]bool, len(ds.Businesses))
	for _, b := range ds.Businesses {
		if seen[b.StoreID] {
			addError(r, "business", b.StoreID, &models.IntegrityError{
				Entity: "business", ID: b.StoreID, Reference: "store_id", Detail: "duplicate identifier",
			})
		}
		seen[b.StoreID] = true

		if !abn.Validate(b.ABN) {
			addError(r, "business", b.StoreID, &models.ChecksumError{Entity: "business", ID: b.StoreID, ABN: b.ABN})
		}
		if !b.State.ContainsPostcode(b.Postcode) {
			addError(r, "business", b.StoreID, &models.IntegrityError{
				Entity: "business", ID: b.StoreID, Reference: "postcode",
				Detail: fmt.Sprintf("postcode %s is outside %s", b.Postcode, b.State),
			})
		}
	}
}

func checkCustomers(ds *models.Dataset, r *Result) {
	seen := make(map[string]bool, len(ds.Customers))
	for _, c := range ds.Customers {
		if seen[c.CustomerID] {
			addError(r, "customer", c.CustomerID, &models.IntegrityError{
				Entity: "customer", ID: c.CustomerID, Reference: "customer_id", Detail: "duplicate identifier",
			})
		}
		seen[c.CustomerID] = true

		if c.ABN != "" && !abn.Validate(c.ABN) {
			addError(r, "customer", c.CustomerID, &models.ChecksumError{Entity: "customer", ID: c.CustomerID, ABN: c.ABN})
		}
		if c.CustomerType == models.CustomerBusiness && c.ABN == "" {
			addError(r, "customer", c.CustomerID, &models.IntegrityError{
				Entity: "customer", ID: c.CustomerID, Reference: "abn", Detail: "business customer without an ABN",
			})
		}
		if c.LoyaltyPoints < 0 {
			addError(r, "customer", c.CustomerID, &models.ReconciliationError{
				Entity: "customer", ID: c.CustomerID, Detail: "negative loyalty point balance",
			})
		}
	}
}

// =============================================================================
// TRANSACTION-LEVEL CHECKS
// =============================================================================

func checkTransactions(ds *models.Dataset, opts Options, r *Result) {
	stores := make(map[string]bool, len(ds.Businesses))
	for _, b := range ds.Businesses {
		stores[b.StoreID] = true
	}
	customers := make(map[string]bool, len(ds.Customers))
	for _, c := range ds.Customers {
		customers[c.CustomerID] = true
	}
	products := make(map[string]bool, len(ds.Products))
	for _, p := range ds.Products {
		products[p.ProductID] = true
	}

	seen := make(map[string]bool, len(ds.Transactions))
	for _, t := range ds.Transactions {
		if seen[t.TransactionID] {
			addError(r, "transaction", t.TransactionID, &models.IntegrityError{
				Entity: "transaction", ID: t.TransactionID, Reference: "transaction_id", Detail: "duplicate identifier",
			})
		}
		seen[t.TransactionID] = true

		if !stores[t.StoreID] {
			addError(r, "transaction", t.TransactionID, &models.IntegrityError{
				Entity: "transaction", ID: t.TransactionID, Reference: "business " + t.StoreID, Detail: "store does not exist",
			})
		}
		if t.CustomerID != "" && !customers[t.CustomerID] {
			addError(r, "transaction", t.TransactionID, &models.IntegrityError{
				Entity: "transaction", ID: t.TransactionID, Reference: "customer " + t.CustomerID, Detail: "customer does not exist",
			})
		}

		checkTransactionMoney(t, r)
		checkTransactionItems(t, products, r)
		checkTransactionTime(t, opts, r)
	}
}

func checkTransactionMoney(t models.Transaction, r *Result) {
	if !t.SubtotalExGST.Add(t.GSTAmount).Equal(t.TotalIncGST) {
		addError(r, "transaction", t.TransactionID, &models.ReconciliationError{
			Entity: "transaction", ID: t.TransactionID,
			Detail: fmt.Sprintf("subtotal %s + gst %s != total %s", t.SubtotalExGST, t.GSTAmount, t.TotalIncGST),
		})
	}
	if !t.TenderAmount.Sub(t.ChangeAmount).Equal(t.TotalIncGST) {
		addError(r, "transaction", t.TransactionID, &models.ReconciliationError{
			Entity: "transaction", ID: t.TransactionID,
			Detail: fmt.Sprintf("tender %s - change %s != total %s", t.TenderAmount, t.ChangeAmount, t.TotalIncGST),
		})
	}

	subtotal := decimal.Zero
	gst := decimal.Zero
	total := decimal.Zero
	for _, item := range t.Items {
		subtotal = subtotal.Add(item.LineSubtotalExGST)
		gst = gst.Add(item.LineGSTAmount)
		total = total.Add(item.LineTotalIncGST)
	}
	if !subtotal.Equal(t.SubtotalExGST) || !gst.Equal(t.GSTAmount) || !total.Equal(t.TotalIncGST) {
		addError(r, "transaction", t.TransactionID, &models.ReconciliationError{
			Entity: "transaction", ID: t.TransactionID,
			Detail: "line item sums do not equal the transaction aggregates",
		})
	}
}

func checkTransactionItems(t models.Transaction, products map[string]bool, r *Result) {
	for i, item := range t.Items {
		lineID := fmt.Sprintf("%s/%d", t.TransactionID, item.LineNumber)
		if item.LineNumber != i+1 {
			addError(r, "transaction_item", lineID, &models.IntegrityError{
				Entity: "transaction_item", ID: lineID, Reference: "line_number",
				Detail: fmt.Sprintf("line numbers must be 1-based and contiguous, got %d at position %d", item.LineNumber, i+1),
			})
		}
		if item.TransactionID != t.TransactionID {
			addError(r, "transaction_item", lineID, &models.IntegrityError{
				Entity: "transaction_item", ID: lineID, Reference: "transaction " + t.TransactionID,
				Detail: "line item belongs to a different transaction",
			})
		}
		if len(products) > 0 && !products[item.ProductID] {
			addError(r, "transaction_item", lineID, &models.IntegrityError{
				Entity: "transaction_item", ID: lineID, Reference: "product " + item.ProductID,
				Detail: "product does not exist in the catalog",
			})
		}
		if !item.LineSubtotalExGST.Add(item.LineGSTAmount).Equal(item.LineTotalIncGST) {
			addError(r, "transaction_item", lineID, &models.ReconciliationError{
				Entity: "transaction_item", ID: lineID,
				Detail: fmt.Sprintf("subtotal %s + gst %s != total %s", item.LineSubtotalExGST, item.LineGSTAmount, item.LineTotalIncGST),
			})
		}
		if !item.GSTCode.Taxable() && !item.LineGSTAmount.IsZero() {
			addError(r, "transaction_item", lineID, &models.ReconciliationError{
				Entity: "transaction_item", ID: lineID,
				Detail: fmt.Sprintf("GST code %s must carry zero GST", item.GSTCode),
			})
		}
	}
}

func checkTransactionTime(t models.Transaction, opts Options, r *Result) {
	if !opts.RangeStart.IsZero() {
		day := t.TransactionDatetime.Truncate(24 * time.Hour)
		if day.Before(opts.RangeStart) || day.After(opts.RangeEnd) {
			addError(r, "transaction", t.TransactionID, &models.IntegrityError{
				Entity: "transaction", ID: t.TransactionID, Reference: "transaction_datetime",
				Detail: fmt.Sprintf("date %s is outside the configured range", t.TransactionDatetime.Format("2006-01-02")),
			})
		}
	}
	if opts.Season != nil {
		hours := opts.Season.HoursFor(t.TransactionDatetime)
		if !hours.Contains(t.TransactionDatetime.Hour()) {
			addError(r, "transaction", t.TransactionID, &models.IntegrityError{
				Entity: "transaction", ID: t.TransactionID, Reference: "transaction_datetime",
				Detail: fmt.Sprintf("timestamp hour %d is outside trading hours %d-%d", t.TransactionDatetime.Hour(), hours.Open, hours.Close),
			})
		}
	}
}

// =============================================================================
// RETURN CHECKS
// =============================================================================

func checkReturns(ds *models.Dataset, r *Result) {
	transactions := make(map[string]models.Transaction, len(ds.Transactions))
	for _, t := range ds.Transactions {
		transactions[t.TransactionID] = t
	}

	for _, ret := range ds.Returns {
		original, ok := transactions[ret.OriginalTransactionID]
		if !ok {
			addError(r, "return", ret.ReturnID, &models.IntegrityError{
				Entity: "return", ID: ret.ReturnID,
				Reference: "transaction " + ret.OriginalTransactionID,
				Detail:    "original transaction does not exist",
			})
			continue
		}
		if ret.LineNumber < 1 || ret.LineNumber > len(original.Items) {
			addError(r, "return", ret.ReturnID, &models.IntegrityError{
				Entity: "return", ID: ret.ReturnID,
				Reference: fmt.Sprintf("transaction %s line %d", original.TransactionID, ret.LineNumber),
				Detail:    "line number does not exist on the original transaction",
			})
			continue
		}
		if ret.ReturnDate.Before(original.TransactionDatetime) {
			addError(r, "return", ret.ReturnID, &models.IntegrityError{
				Entity: "return", ID: ret.ReturnID,
				Reference: "transaction " + original.TransactionID,
				Detail:    "return date precedes the original purchase",
			})
		}
		line := original.Items[ret.LineNumber-1]
		if ret.RefundAmount.GreaterThan(line.LineTotalIncGST) {
			addError(r, "return", ret.ReturnID, &models.ReconciliationError{
				Entity: "return", ID: ret.ReturnID,
				Detail: fmt.Sprintf("refund %s exceeds line total %s", ret.RefundAmount, line.LineTotalIncGST),
			})
		}
		if ret.ReturnDate.Sub(original.TransactionDatetime) > 45*24*time.Hour {
			addWarning(r, "return", ret.ReturnID, "return processed more than 45 days after purchase")
		}
	}
}
