// =============================================================================
// Australian POS Data Generator - Closed Enumerations
// =============================================================================
//
// Every categorical field in the data model is a closed enumeration rather
// than a free string. Distribution weights, return reasons and postcode
// ranges are looked up through exhaustive switches over these types, so an
// unknown variant is a compile-time or construction-time failure instead of
// a runtime "unknown key".
//
// =============================================================================

package models

import "fmt"

// =============================================================================
// PAYMENT METHOD
// =============================================================================

// PaymentMethod is how a transaction was tendered.
type PaymentMethod string

const (
	PaymentEFTPOS      PaymentMethod = "EFTPOS"
	PaymentContactless PaymentMethod = "CONTACTLESS"
	PaymentCreditCard  PaymentMethod = "CREDIT_CARD"
	PaymentCash        PaymentMethod = "CASH"
	PaymentBNPL        PaymentMethod = "BUY_NOW_PAY_LATER"
)

// PaymentMethods lists every variant in declaration order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		PaymentEFTPOS, PaymentContactless, PaymentCreditCard, PaymentCash, PaymentBNPL,
	}
}

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentEFTPOS, PaymentContactless, PaymentCreditCard, PaymentCash, PaymentBNPL:
		return true
	}
	return false
}

// =============================================================================
// GST CODE
// =============================================================================

// GSTCode classifies a product's GST treatment.
type GSTCode string

const (
	GSTStandard   GSTCode = "GST"         // standard 10%, priced GST-inclusive
	GSTFree       GSTCode = "GST_FREE"    // basic food, medicine, exports
	GSTInputTaxed GSTCode = "INPUT_TAXED" // financial services, residential rent
)

// Valid reports whether c is a known GST code.
func (c GSTCode) Valid() bool {
	switch c {
	case GSTStandard, GSTFree, GSTInputTaxed:
		return true
	}
	return false
}

// Taxable reports whether the 1/11 GST calculation applies. GST-free and
// input-taxed lines carry zero GST.
func (c GSTCode) Taxable() bool {
	return c == GSTStandard
}

// =============================================================================
// CUSTOMER TYPE
// =============================================================================

// CustomerType classifies a customer record.
type CustomerType string

const (
	CustomerIndividual CustomerType = "INDIVIDUAL"
	CustomerBusiness   CustomerType = "BUSINESS"
	CustomerLoyalty    CustomerType = "LOYALTY"
	CustomerStaff      CustomerType = "STAFF"
)

// CustomerTypes lists every variant in declaration order.
func CustomerTypes() []CustomerType {
	return []CustomerType{CustomerIndividual, CustomerBusiness, CustomerLoyalty, CustomerStaff}
}

// Valid reports whether t is a known customer type.
func (t CustomerType) Valid() bool {
	switch t {
	case CustomerIndividual, CustomerBusiness, CustomerLoyalty, CustomerStaff:
		return true
	}
	return false
}

// EarnsLoyaltyPoints reports whether transactions attached to this customer
// type accrue loyalty points.
func (t CustomerType) EarnsLoyaltyPoints() bool {
	return t == CustomerLoyalty || t == CustomerStaff
}

// =============================================================================
// RETURN REASON
// =============================================================================

// ReturnReason is the coded reason attached to a return.
type ReturnReason string

const (
	ReasonDefective  ReturnReason = "DEFECTIVE"
	ReasonWrongSize  ReturnReason = "WRONG_SIZE"
	ReasonWrongItem  ReturnReason = "WRONG_ITEM"
	ReasonChangeMind ReturnReason = "CHANGE_MIND"
	ReasonWarranty   ReturnReason = "WARRANTY"
)

// Valid reports whether r is a known return reason.
func (r ReturnReason) Valid() bool {
	switch r {
	case ReasonDefective, ReasonWrongSize, ReasonWrongItem, ReasonChangeMind, ReasonWarranty:
		return true
	}
	return false
}

// =============================================================================
// PRODUCT CATEGORY
// =============================================================================

// Category is a product category. Return rates and return reasons are
// category-specific.
type Category string

const (
	CategoryBeverages   Category = "beverages"
	CategoryFood        Category = "food"
	CategoryClothing    Category = "clothing"
	CategoryElectronics Category = "electronics"
	CategoryPharmacy    Category = "pharmacy"
	CategoryHealth      Category = "health"
)

// Categories lists every variant in declaration order.
func Categories() []Category {
	return []Category{
		CategoryBeverages, CategoryFood, CategoryClothing,
		CategoryElectronics, CategoryPharmacy, CategoryHealth,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryBeverages, CategoryFood, CategoryClothing,
		CategoryElectronics, CategoryPharmacy, CategoryHealth:
		return true
	}
	return false
}

// ReturnReasons returns the closed set of reasons shoppers cite for this
// category.
func (c Category) ReturnReasons() []ReturnReason {
	switch c {
	case CategoryClothing:
		return []ReturnReason{ReasonWrongSize, ReasonWrongItem, ReasonChangeMind}
	case CategoryElectronics:
		return []ReturnReason{ReasonDefective, ReasonWrongItem, ReasonWarranty}
	case CategoryFood, CategoryBeverages:
		return []ReturnReason{ReasonChangeMind, ReasonDefective}
	case CategoryPharmacy, CategoryHealth:
		return []ReturnReason{ReasonDefective, ReasonChangeMind}
	}
	return []ReturnReason{ReasonChangeMind}
}

// =============================================================================
// AUSTRALIAN STATE
// =============================================================================

// State is an Australian state or territory.
type State string

const (
	NSW State = "NSW"
	VIC State = "VIC"
	QLD State = "QLD"
	WA  State = "WA"
	SA  State = "SA"
	TAS State = "TAS"
	NT  State = "NT"
	ACT State = "ACT"
)

// States lists every state and territory in declaration order.
func States() []State {
	return []State{NSW, VIC, QLD, WA, SA, TAS, NT, ACT}
}

// Valid reports whether s is a known state.
func (s State) Valid() bool {
	switch s {
	case NSW, VIC, QLD, WA, SA, TAS, NT, ACT:
		return true
	}
	return false
}

// PostcodeRange returns the inclusive postcode range for the state.
func (s State) PostcodeRange() (low, high int) {
	switch s {
	case NSW:
		return 1000, 2999
	case VIC:
		return 3000, 3999
	case QLD:
		return 4000, 4999
	case SA:
		return 5000, 5999
	case WA:
		return 6000, 6999
	case TAS:
		return 7000, 7999
	case NT:
		return 800, 999
	case ACT:
		return 200, 299
	}
	panic(fmt.Sprintf("models: unknown state %q", string(s)))
}

// ContainsPostcode reports whether the 4-digit postcode belongs to the state.
func (s State) ContainsPostcode(postcode string) bool {
	if len(postcode) != 4 {
		return false
	}
	n := 0
	for _, c := range postcode {
		if c < '0' || c > '9' {
			return false
		}
		n = n*10 + int(c-'0')
	}
	if !s.Valid() {
		return false
	}
	low, high := s.PostcodeRange()
	return n >= low && n <= high
}
