// =============================================================================
// Australian POS Data Generator - Export Writers
// =============================================================================
//
// Export writers consume the finished dataset; they have no bearing on the
// correctness of the data itself and their failures (disk full, database
// unreachable) are outside the engine's error surface.
//
// FIELD CONTRACT:
//   Column order, naming and types below are part of the interchange
//   contract consumed downstream (file readers, schema builders). The
//   tables in this file are the single source of truth for CSV, Excel and
//   SQL column ordering; do not reorder them.
//
// =============================================================================

package export

import (
	"strconv"

	"github.com/ginjaninja78/aus-pos-datagen/internal/models"
)

// Timestamp layouts used in flat-file output.
const (
	datetimeLayout = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
)

// File and table names per entity, shared by every writer.
const (
	nameBusinesses = "businesses"
	nameCustomers  = "customers"
	nameTxns       = "transactions"
	nameItems      = "transaction_items"
	nameReturns    = "returns"
)

// =============================================================================
// COLUMN TABLES
// =============================================================================

func businessHeader() []string {
	return []string{"store_id", "business_name", "abn", "state", "postcode", "gst_registered", "pos_system_type", "terminal_count"}
}

func businessRow(b models.Business) []string {
	return []string{
		b.StoreID,
		b.BusinessName,
		b.ABN,
		string(b.State),
		b.Postcode,
		strconv.FormatBool(b.GSTRegistered),
		b.POSSystemType,
		strconv.Itoa(b.TerminalCount),
	}
}

func customerHeader() []string {
	return []string{"customer_id", "customer_type", "state", "postcode", "loyalty_points", "abn"}
}

func customerRow(c models.Customer) []string {
	return []string{
		c.CustomerID,
		string(c.CustomerType),
		string(c.State),
		c.Postcode,
		strconv.Itoa(c.LoyaltyPoints),
		c.ABN,
	}
}

func transactionHeader() []string {
	return []string{"transaction_id", "store_id", "customer_id", "transaction_datetime", "subtotal_ex_gst", "gst_amount", "total_inc_gst", "payment_method", "tender_amount", "change_amount"}
}

func transactionRow(t models.Transaction) []string {
	return []string{
		t.TransactionID,
		t.StoreID,
		t.CustomerID,
		t.TransactionDatetime.Format(datetimeLayout),
		t.SubtotalExGST.StringFixed(2),
		t.GSTAmount.StringFixed(2),
		t.TotalIncGST.StringFixed(2),
		string(t.PaymentMethod),
		t.TenderAmount.StringFixed(2),
		t.ChangeAmount.StringFixed(2),
	}
}

func itemHeader() []string {
	return []string{"transaction_id", "line_number", "product_id", "quantity", "unit_price_ex_gst", "line_gst_amount", "line_total_inc_gst", "gst_code", "unit_price_inc_gst", "line_subtotal_ex_gst"}
}

func itemRow(it models.TransactionItem) []string {
	return []string{
		it.TransactionID,
		strconv.Itoa(it.LineNumber),
		it.ProductID,
		strconv.Itoa(it.Quantity),
		it.UnitPriceExGST.StringFixed(2),
		it.LineGSTAmount.StringFixed(2),
		it.LineTotalIncGST.StringFixed(2),
		string(it.GSTCode),
		it.UnitPriceIncGST.StringFixed(2),
		it.LineSubtotalExGST.StringFixed(2),
	}
}

func returnHeader() []string {
	return []string{"return_id", "original_transaction_id", "return_date", "return_reason_code", "refund_amount", "line_number", "customer_id"}
}

func returnRow(ret models.Return) []string {
	return []string{
		ret.ReturnID,
		ret.OriginalTransactionID,
		ret.ReturnDate.Format(dateLayout),
		string(ret.ReturnReasonCode),
		ret.RefundAmount.StringFixed(2),
		strconv.Itoa(ret.LineNumber),
		ret.CustomerID,
	}
}

// table is one entity collection rendered for tabular writers.
type table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// tables renders the whole dataset in its five ordered collections.
func tables(ds *models.Dataset) []table {
	businesses := table{Name: nameBusinesses, Header: businessHeader()}
	for _, b := range ds.Businesses {
		businesses.Rows = append(businesses.Rows, businessRow(b))
	}

	customers := table{Name: nameCustomers, Header: customerHeader()}
	for _, c := range ds.Customers {
		customers.Rows = append(customers.Rows, customerRow(c))
	}

	transactions := table{Name: nameTxns, Header: transactionHeader()}
	for _, t := range ds.Transactions {
		transactions.Rows = append(transactions.Rows, transactionRow(t))
	}

	items := table{Name: nameItems, Header: itemHeader()}
	for _, it := range ds.Items() {
		items.Rows = append(items.Rows, itemRow(it))
	}

	returns := table{Name: nameReturns, Header: returnHeader()}
	for _, ret := range ds.Returns {
		returns.Rows = append(returns.Rows, returnRow(ret))
	}

	return []table{businesses, customers, transactions, items, returns}
}
