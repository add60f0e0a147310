package generator

// Word tables for deterministic business naming. Names are cosmetic; they
// only need to look plausibly Australian and reproduce exactly per seed.

var businessNameLead = []string{
	"Harbour", "Wattle", "Southern Cross", "Boomerang", "Coastal",
	"Eureka", "Kookaburra", "Banksia", "Outback", "Pacific",
	"Jacaranda", "Bluegum", "Coral Bay", "Stockman", "Federation",
}

var businessNameTail = []string{
	"Trading Co", "Retail Group", "Merchants", "Emporium", "Supplies",
	"General Store", "Market", "Provisions", "Stores", "Outfitters",
}

// posSystems are the point-of-sale platforms assigned to businesses.
var posSystems = []string{"Square", "Shopify", "Clover", "Hike"}
