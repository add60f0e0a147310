// =============================================================================
// Australian POS Data Generator - GST Calculator
// =============================================================================
//
// GST arithmetic under ATO rules. All monetary values are exact decimals
// (shopspring/decimal); binary floats never touch money.
//
// THE 1/11 RULE:
//   For a GST-inclusive price, gst = round(price / 11, 2, half-up) and the
//   exclusive amount is price - gst. GST-free and input-taxed codes bypass
//   the calculation entirely (gst = 0).
//
// THE INDIVIDUAL ITEM RULE:
//   Multi-line transactions compute GST per line and sum the line amounts.
//   The transaction-level GST is that sum, never a recomputation from the
//   transaction subtotal, so line and total rounding cannot drift apart.
//
// CASH ROUNDING:
//   Cash-tendered totals round to the nearest 5 cents under a configurable
//   midpoint policy. The rounding delta is absorbed into the change amount,
//   never into GST.
//
// =============================================================================

package tax

import (
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/aus-pos-datagen/internal/models"
)

var (
	eleven      = decimal.NewFromInt(11)
	fiveCents   = decimal.RequireFromString("0.05")
	halfOfFive  = decimal.RequireFromString("0.025")
	standardPct = decimal.RequireFromString("0.10")
)

// RoundingPolicy selects how a cash total sitting exactly on the 2.5c
// midpoint is rounded.
type RoundingPolicy string

const (
	// RoundHalfUp rounds the midpoint away from the customer (2.5c -> 5c).
	RoundHalfUp RoundingPolicy = "half_up"
	// RoundHalfDown rounds the midpoint in the customer's favour (2.5c -> 0c).
	RoundHalfDown RoundingPolicy = "half_down"
)

// Valid reports whether p is a known rounding policy.
func (p RoundingPolicy) Valid() bool {
	return p == RoundHalfUp || p == RoundHalfDown
}

// Components is the result of splitting a GST-inclusive amount.
type Components struct {
	GSTAmount decimal.Decimal
	Exclusive decimal.Decimal
	Inclusive decimal.Decimal
}

// FromInclusive splits a GST-inclusive amount into GST and exclusive parts
// for the given GST code. The identity exclusive + gst == inclusive holds
// exactly for every input with two decimal places.
func FromInclusive(amountIncGST decimal.Decimal, code models.GSTCode) Components {
	if !code.Taxable() {
		return Components{
			GSTAmount: decimal.Zero.Round(2),
			Exclusive: amountIncGST,
			Inclusive: amountIncGST,
		}
	}
	gst := amountIncGST.Div(eleven).Round(2)
	return Components{
		GSTAmount: gst,
		Exclusive: amountIncGST.Sub(gst),
		Inclusive: amountIncGST,
	}
}

// FromExclusive derives the GST-inclusive price from a GST-exclusive one.
// Used when building the catalog from exclusive list prices.
func FromExclusive(amountExGST decimal.Decimal, code models.GSTCode) Components {
	if !code.Taxable() {
		return Components{
			GSTAmount: decimal.Zero.Round(2),
			Exclusive: amountExGST,
			Inclusive: amountExGST,
		}
	}
	gst := amountExGST.Mul(standardPct).Round(2)
	return Components{
		GSTAmount: gst,
		Exclusive: amountExGST,
		Inclusive: amountExGST.Add(gst),
	}
}

// RoundCash rounds a total to the nearest 5 cents per the policy. Australian
// cash transactions settle on 5c boundaries since the 1c and 2c coins were
// withdrawn.
func RoundCash(amount decimal.Decimal, policy RoundingPolicy) decimal.Decimal {
	remainder := amount.Mod(fiveCents)
	if remainder.IsZero() {
		return amount
	}

	roundUp := false
	switch policy {
	case RoundHalfDown:
		roundUp = remainder.GreaterThan(halfOfFive)
	default: // RoundHalfUp
		roundUp = remainder.GreaterThanOrEqual(halfOfFive)
	}

	if roundUp {
		return amount.Add(fiveCents.Sub(remainder))
	}
	return amount.Sub(remainder)
}
