// =============================================================================
// Australian POS Data Generator - Entity Records
// =============================================================================
//
// The five entity types handed to export writers, plus the static Product
// catalog record. Entities are immutable value types: they are constructed
// only through the validating New* factories below, which reject malformed
// input at construction time. Nothing validates "after the fact".
//
// Field names and their serialized (json/db) spellings are part of the
// interchange contract consumed by the export writers; do not rename them.
//
// =============================================================================

package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/aus-pos-datagen/internal/abn"
)

// =============================================================================
// BUSINESS
// =============================================================================

// Business is a store. Created once during the business phase and never
// mutated; transactions reference it by StoreID.
type Business struct {
	StoreID       string `json:"store_id" db:"store_id"`
	BusinessName  string `json:"business_name" db:"business_name"`
	ABN           string `json:"abn" db:"abn"`
	State         State  `json:"state" db:"state"`
	Postcode      string `json:"postcode" db:"postcode"`
	GSTRegistered bool   `json:"gst_registered" db:"gst_registered"`
	POSSystemType string `json:"pos_system_type" db:"pos_system_type"`
	TerminalCount int    `json:"terminal_count" db:"terminal_count"`
}

// NewBusiness validates and constructs a Business.
func NewBusiness(storeID, name, businessABN string, state State, postcode string, gstRegistered bool, posSystem string, terminals int) (Business, error) {
	var b Business
	if storeID == "" || name == "" {
		return b, fmt.Errorf("business: store_id and business_name are required")
	}
	if !abn.Validate(businessABN) {
		return b, &ChecksumError{Entity: "business", ID: storeID, ABN: businessABN}
	}
	if !state.Valid() {
		return b, fmt.Errorf("business %s: unknown state %q", storeID, string(state))
	}
	if !state.ContainsPostcode(postcode) {
		return b, fmt.Errorf("business %s: postcode %q is not in %s", storeID, postcode, state)
	}
	if terminals < 1 {
		return b, fmt.Errorf("business %s: terminal count must be positive", storeID)
	}
	return Business{
		StoreID:       storeID,
		BusinessName:  name,
		ABN:           businessABN,
		State:         state,
		Postcode:      postcode,
		GSTRegistered: gstRegistered,
		POSSystemType: posSystem,
		TerminalCount: terminals,
	}, nil
}

// =============================================================================
// CUSTOMER
// =============================================================================

// Customer is a shopper. LoyaltyPoints is the only field that changes after
// creation: the orchestrator accrues points as transactions reference the
// customer during the transaction phase.
type Customer struct {
	CustomerID    string       `json:"customer_id" db:"customer_id"`
	CustomerType  CustomerType `json:"customer_type" db:"customer_type"`
	State         State        `json:"state" db:"state"`
	Postcode      string       `json:"postcode" db:"postcode"`
	LoyaltyPoints int          `json:"loyalty_points" db:"loyalty_points"`
	ABN           string       `json:"abn,omitempty" db:"abn"`
}

// NewCustomer validates and constructs a Customer. Business customers must
// carry a checksum-valid ABN; other types may omit it.
func NewCustomer(customerID string, ctype CustomerType, state State, postcode, customerABN string) (Customer, error) {
	var c Customer
	if customerID == "" {
		return c, fmt.Errorf("customer: customer_id is required")
	}
	if !ctype.Valid() {
		return c, fmt.Errorf("customer %s: unknown customer type %q", customerID, string(ctype))
	}
	if !state.Valid() {
		return c, fmt.Errorf("customer %s: unknown state %q", customerID, string(state))
	}
	if !state.ContainsPostcode(postcode) {
		return c, fmt.Errorf("customer %s: postcode %q is not in %s", customerID, postcode, state)
	}
	if ctype == CustomerBusiness && customerABN == "" {
		return c, fmt.Errorf("customer %s: business customers require an ABN", customerID)
	}
	if customerABN != "" && !abn.Validate(customerABN) {
		return c, &ChecksumError{Entity: "customer", ID: customerID, ABN: customerABN}
	}
	return Customer{
		CustomerID:   customerID,
		CustomerType: ctype,
		State:        state,
		Postcode:     postcode,
		ABN:          customerABN,
	}, nil
}

// =============================================================================
// PRODUCT
// =============================================================================

// Product is a static catalog entry, read-only during generation. Inclusive
// and exclusive unit prices are mutually derived by the tax calculator when
// the catalog is built.
type Product struct {
	ProductID      string          `json:"product_id" db:"product_id"`
	SKU            string          `json:"sku" db:"sku"`
	Barcode        string          `json:"barcode" db:"barcode"`
	Name           string          `json:"name" db:"name"`
	Category       Category        `json:"category" db:"category"`
	Brand          string          `json:"brand" db:"brand"`
	UnitPriceIncGST decimal.Decimal `json:"unit_price_inc_gst" db:"unit_price_inc_gst"`
	UnitPriceExGST  decimal.Decimal `json:"unit_price_ex_gst" db:"unit_price_ex_gst"`
	GSTCode        GSTCode         `json:"gst_code" db:"gst_code"`
}

// =============================================================================
// TRANSACTION ITEM
// =============================================================================

// TransactionItem is one line within a transaction. Line numbers are
// 1-based and contiguous within their transaction.
type TransactionItem struct {
	TransactionID     string          `json:"transaction_id" db:"transaction_id"`
	LineNumber        int             `json:"line_number" db:"line_number"`
	ProductID         string          `json:"product_id" db:"product_id"`
	Quantity          int             `json:"quantity" db:"quantity"`
	UnitPriceExGST    decimal.Decimal `json:"unit_price_ex_gst" db:"unit_price_ex_gst"`
	UnitPriceIncGST   decimal.Decimal `json:"unit_price_inc_gst" db:"unit_price_inc_gst"`
	LineSubtotalExGST decimal.Decimal `json:"line_subtotal_ex_gst" db:"line_subtotal_ex_gst"`
	LineGSTAmount     decimal.Decimal `json:"line_gst_amount" db:"line_gst_amount"`
	LineTotalIncGST   decimal.Decimal `json:"line_total_inc_gst" db:"line_total_inc_gst"`
	GSTCode           GSTCode         `json:"gst_code" db:"gst_code"`
}

// NewTransactionItem validates and constructs a line item. The line-level
// money must already reconcile: subtotal + gst = total, and the total must
// equal the inclusive unit price times quantity.
func NewTransactionItem(transactionID string, lineNumber int, product Product, quantity int, subtotalExGST, gstAmount, totalIncGST decimal.Decimal) (TransactionItem, error) {
	var it TransactionItem
	if transactionID == "" {
		return it, fmt.Errorf("transaction item: transaction_id is required")
	}
	if lineNumber < 1 {
		return it, fmt.Errorf("transaction %s: line numbers are 1-based, got %d", transactionID, lineNumber)
	}
	if quantity < 1 {
		return it, fmt.Errorf("transaction %s line %d: quantity must be positive", transactionID, lineNumber)
	}
	if !product.GSTCode.Valid() {
		return it, fmt.Errorf("transaction %s line %d: unknown GST code %q", transactionID, lineNumber, string(product.GSTCode))
	}
	if !subtotalExGST.Add(gstAmount).Equal(totalIncGST) {
		return it, &ReconciliationError{
			Entity: "transaction_item",
			ID:     fmt.Sprintf("%s/%d", transactionID, lineNumber),
			Detail: fmt.Sprintf("subtotal %s + gst %s != total %s", subtotalExGST, gstAmount, totalIncGST),
		}
	}
	expectedTotal := product.UnitPriceIncGST.Mul(decimal.NewFromInt(int64(quantity)))
	if !expectedTotal.Equal(totalIncGST) {
		return it, &ReconciliationError{
			Entity: "transaction_item",
			ID:     fmt.Sprintf("%s/%d", transactionID, lineNumber),
			Detail: fmt.Sprintf("unit price %s x %d != line total %s", product.UnitPriceIncGST, quantity, totalIncGST),
		}
	}
	if !product.GSTCode.Taxable() && !gstAmount.IsZero() {
		return it, &ReconciliationError{
			Entity: "transaction_item",
			ID:     fmt.Sprintf("%s/%d", transactionID, lineNumber),
			Detail: fmt.Sprintf("GST code %s must carry zero GST, got %s", product.GSTCode, gstAmount),
		}
	}
	return TransactionItem{
		TransactionID:     transactionID,
		LineNumber:        lineNumber,
		ProductID:         product.ProductID,
		Quantity:          quantity,
		UnitPriceExGST:    subtotalExGST.Div(decimal.NewFromInt(int64(quantity))).Round(2),
		UnitPriceIncGST:   product.UnitPriceIncGST,
		LineSubtotalExGST: subtotalExGST,
		LineGSTAmount:     gstAmount,
		LineTotalIncGST:   totalIncGST,
		GSTCode:           product.GSTCode,
	}, nil
}

// =============================================================================
// TRANSACTION
// =============================================================================

// Transaction is one completed sale. Immutable once emitted. CustomerID is
// empty for anonymous (walk-in) transactions.
type Transaction struct {
	TransactionID       string            `json:"transaction_id" db:"transaction_id"`
	StoreID             string            `json:"store_id" db:"store_id"`
	CustomerID          string            `json:"customer_id,omitempty" db:"customer_id"`
	TransactionDatetime time.Time         `json:"transaction_datetime" db:"transaction_datetime"`
	SubtotalExGST       decimal.Decimal   `json:"subtotal_ex_gst" db:"subtotal_ex_gst"`
	GSTAmount           decimal.Decimal   `json:"gst_amount" db:"gst_amount"`
	TotalIncGST         decimal.Decimal   `json:"total_inc_gst" db:"total_inc_gst"`
	PaymentMethod       PaymentMethod     `json:"payment_method" db:"payment_method"`
	TenderAmount        decimal.Decimal   `json:"tender_amount" db:"tender_amount"`
	ChangeAmount        decimal.Decimal   `json:"change_amount" db:"change_amount"`
	Items               []TransactionItem `json:"items" db:"-"`
}

// NewTransaction validates and constructs a Transaction from its line
// items. The aggregate fields must be the exact sums of the lines
// (individual item rule), line numbers must be 1-based and contiguous, and
// tender minus change must equal the total.
func NewTransaction(transactionID, storeID, customerID string, at time.Time, method PaymentMethod, tender, change decimal.Decimal, items []TransactionItem) (Transaction, error) {
	var t Transaction
	if transactionID == "" || storeID == "" {
		return t, fmt.Errorf("transaction: transaction_id and store_id are required")
	}
	if !method.Valid() {
		return t, fmt.Errorf("transaction %s: unknown payment method %q", transactionID, string(method))
	}
	if len(items) == 0 {
		return t, fmt.Errorf("transaction %s: at least one line item is required", transactionID)
	}

	subtotal := decimal.Zero
	gst := decimal.Zero
	total := decimal.Zero
	for i, it := range items {
		if it.TransactionID != transactionID {
			return t, &IntegrityError{
				Entity:    "transaction_item",
				ID:        fmt.Sprintf("%s/%d", it.TransactionID, it.LineNumber),
				Reference: "transaction " + transactionID,
				Detail:    "line item belongs to a different transaction",
			}
		}
		if it.LineNumber != i+1 {
			return t, fmt.Errorf("transaction %s: line numbers must be contiguous, got %d at position %d", transactionID, it.LineNumber, i+1)
		}
		subtotal = subtotal.Add(it.LineSubtotalExGST)
		gst = gst.Add(it.LineGSTAmount)
		total = total.Add(it.LineTotalIncGST)
	}

	if !subtotal.Add(gst).Equal(total) {
		return t, &ReconciliationError{
			Entity: "transaction",
			ID:     transactionID,
			Detail: fmt.Sprintf("subtotal %s + gst %s != total %s", subtotal, gst, total),
		}
	}
	if !tender.Sub(change).Equal(total) {
		return t, &ReconciliationError{
			Entity: "transaction",
			ID:     transactionID,
			Detail: fmt.Sprintf("tender %s - change %s != total %s", tender, change, total),
		}
	}

	return Transaction{
		TransactionID:       transactionID,
		StoreID:             storeID,
		CustomerID:          customerID,
		TransactionDatetime: at,
		SubtotalExGST:       subtotal,
		GSTAmount:           gst,
		TotalIncGST:         total,
		PaymentMethod:       method,
		TenderAmount:        tender,
		ChangeAmount:        change,
		Items:               items,
	}, nil
}

// =============================================================================
// RETURN
// =============================================================================

// Return is a refund of one line item from a prior transaction. It is
// created in a second pass over already-emitted transactions, so the
// original transaction always exists before the return does.
type Return struct {
	ReturnID              string          `json:"return_id" db:"return_id"`
	OriginalTransactionID string          `json:"original_transaction_id" db:"original_transaction_id"`
	LineNumber            int             `json:"line_number" db:"line_number"`
	CustomerID            string          `json:"customer_id,omitempty" db:"customer_id"`
	ReturnDate            time.Time       `json:"return_date" db:"return_date"`
	ReturnReasonCode      ReturnReason    `json:"return_reason_code" db:"return_reason_code"`
	RefundAmount          decimal.Decimal `json:"refund_amount" db:"refund_amount"`
}

// NewReturn validates and constructs a Return against its originating
// transaction. The refund may not exceed the referenced line's total and
// the processing date may not precede the purchase.
func NewReturn(returnID string, original Transaction, lineNumber int, at time.Time, reason ReturnReason, refund decimal.Decimal) (Return, error) {
	var r Return
	if returnID == "" {
		return r, fmt.Errorf("return: return_id is required")
	}
	if !reason.Valid() {
		return r, fmt.Errorf("return %s: unknown reason code %q", returnID, string(reason))
	}
	if lineNumber < 1 || lineNumber > len(original.Items) {
		return r, &IntegrityError{
			Entity:    "return",
			ID:        returnID,
			Reference: fmt.Sprintf("transaction %s line %d", original.TransactionID, lineNumber),
			Detail:    "line number does not exist on the original transaction",
		}
	}
	line := original.Items[lineNumber-1]
	if refund.LessThanOrEqual(decimal.Zero) || refund.GreaterThan(line.LineTotalIncGST) {
		return r, &ReconciliationError{
			Entity: "return",
			ID:     returnID,
			Detail: fmt.Sprintf("refund %s exceeds line total %s or is not positive", refund, line.LineTotalIncGST),
		}
	}
	if at.Before(original.TransactionDatetime) {
		return r, &IntegrityError{
			Entity:    "return",
			ID:        returnID,
			Reference: "transaction " + original.TransactionID,
			Detail:    "return date precedes the original purchase",
		}
	}
	return Return{
		ReturnID:              returnID,
		OriginalTransactionID: original.TransactionID,
		LineNumber:            lineNumber,
		CustomerID:            original.CustomerID,
		ReturnDate:            at,
		ReturnReasonCode:      reason,
		RefundAmount:          refund,
	}, nil
}
