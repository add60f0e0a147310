// =============================================================================
// Australian POS Data Generator - Product Catalog
// =============================================================================
//
// The static Australian retail catalog transactions draw from. Products are
// priced GST-inclusive; the exclusive price is derived through the tax
// calculator at build time so the two stay mutually consistent. The catalog
// is read-only during generation.
//
// =============================================================================

package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/aus-pos-datagen/internal/models"
	"github.com/ginjaninja78/aus-pos-datagen/internal/tax"
)

// entry is a catalog row before pricing.
type entry struct {
	sku      string
	barcode  string
	name     string
	category models.Category
	brand    string
	priceInc string
	gstCode  models.GSTCode
}

// entries is the fixed retail catalog. Pain relief is GST-free medicine.
var entries = []entry{
	{"COFFEE-REG", "9312345678901", "Regular Coffee", models.CategoryBeverages, "Local Roasters", "4.50", models.GSTStandard},
	{"SANDWICH-HAM", "9312345678918", "Ham & Cheese Sandwich", models.CategoryFood, "Cafe Kitchen", "12.00", models.GSTStandard},
	{"MUFFIN-CHOC", "9312345678925", "Chocolate Muffin", models.CategoryFood, "Bakery Co", "5.50", models.GSTStandard},
	{"WATER-BOTTLE", "9312345678932", "Bottled Water 600ml", models.CategoryBeverages, "Pure Spring", "3.00", models.GSTStandard},
	{"TSHIRT-BASIC", "9323456789012", "Basic Cotton T-Shirt", models.CategoryClothing, "Fashion Basics", "29.95", models.GSTStandard},
	{"JEANS-BLUE", "9323456789029", "Blue Denim Jeans", models.CategoryClothing, "Denim Co", "89.95", models.GSTStandard},
	{"PHONE-CASE", "9334567890123", "Universal Phone Case", models.CategoryElectronics, "Tech Accessories", "24.95", models.GSTStandard},
	{"HEADPHONES-WL", "9334567890130", "Wireless Headphones", models.CategoryElectronics, "Audio Tech", "79.95", models.GSTStandard},
	{"PAIN-RELIEF-24", "9345678901234", "Pain Relief Tablets", models.CategoryPharmacy, "Pharma Plus", "12.95", models.GSTFree},
	{"SHAMPOO-HERBAL", "9345678901241", "Herbal Shampoo 500ml", models.CategoryHealth, "Natural Care", "15.95", models.GSTStandard},
}

// Products builds the priced catalog. Product IDs are stable, zero-padded
// ordinals so datasets remain reproducible.
func Products() []models.Product {
	products := make([]models.Product, 0, len(entries))
	for i, e := range entries {
		inc := decimal.RequireFromString(e.priceInc)
		components := tax.FromInclusive(inc, e.gstCode)
		products = append(products, models.Product{
			ProductID:       productID(i + 1),
			SKU:             e.sku,
			Barcode:         e.barcode,
			Name:            e.name,
			Category:        e.category,
			Brand:           e.brand,
			UnitPriceIncGST: components.Inclusive,
			UnitPriceExGST:  components.Exclusive,
			GSTCode:         e.gstCode,
		})
	}
	return products
}

func productID(n int) string {
	const digits = 6
	id := make([]byte, digits)
	for i := digits - 1; i >= 0; i-- {
		id[i] = byte('0' + n%10)
		n /= 10
	}
	return string(id)
}
