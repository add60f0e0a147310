package models

// Dataset is the finished, internally consistent output of a generation
// run: five ordered collections plus the catalog they price against. The
// orchestrator hands it to export writers as-is; writers must not mutate it.
type Dataset struct {
	Businesses   []Business
	Customers    []Customer
	Products     []Product
	Transactions []Transaction
	Returns      []Return
}

// Items returns the flattened, ordered line item collection across all
// transactions. Ordering follows transaction emission order, then line
// number, which keeps export output stable for a given seed.
func (d *Dataset) Items() []TransactionItem {
	var items []TransactionItem
	for _, t := range d.Transactions {
		items = append(items, t.Items...)
	}
	return items
}
