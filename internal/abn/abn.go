// =============================================================================
// Australian POS Data Generator - ABN Service
// =============================================================================
//
// Validation and generation of Australian Business Numbers following the
// ATO check digit algorithm:
//
//   1. Subtract 1 from the first digit.
//   2. Multiply each of the 11 digits by its weight
//      [10, 1, 3, 5, 7, 9, 11, 13, 15, 17, 19].
//   3. Sum the products; the ABN is valid when the sum mod 89 is 0.
//
// Display format is four groups: XX XXX XXX XXX.
//
// All functions are pure and stateless; generation draws its base digits
// from the caller's seeded source.
//
// =============================================================================

package abn

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/aus-pos-datagen/internal/rng"
)

// weights are the ATO check digit weights, one per ABN digit.
var weights = [11]int{10, 1, 3, 5, 7, 9, 11, 13, 15, 17, 19}

// Normalize strips display spacing from an ABN.
func Normalize(abn string) string {
	return strings.ReplaceAll(abn, " ", "")
}

// Validate reports whether the candidate is a checksum-valid ABN.
// Spacing is ignored; any other non-digit input or a length other than
// 11 digits fails.
func Validate(candidate string) bool {
	cleaned := Normalize(candidate)
	if len(cleaned) != 11 {
		return false
	}

	var digits [11]int
	for i, c := range cleaned {
		if c < '0' || c > '9' {
			return false
		}
		digits[i] = int(c - '0')
	}

	return checksum(digits) == 0
}

// checksum returns the weighted sum mod 89 after reducing the first digit
// by one. Zero means valid.
func checksum(digits [11]int) int {
	sum := (digits[0] - 1) * weights[0]
	for i := 1; i < 11; i++ {
		sum += digits[i] * weights[i]
	}
	return ((sum % 89) + 89) % 89
}

// Format renders an ABN as XX XXX XXX XXX. The input must be 11 digits
// (spacing allowed).
func Format(abn string) (string, error) {
	cleaned := Normalize(abn)
	if len(cleaned) != 11 {
		return "", fmt.Errorf("abn: %q is not 11 digits", abn)
	}
	return fmt.Sprintf("%s %s %s %s", cleaned[:2], cleaned[2:5], cleaned[5:8], cleaned[8:]), nil
}

// Generate produces a checksum-valid 11-digit ABN. The 9 base digits are
// drawn from src; the 2 leading check digits are then solved so that the
// weighted sum is divisible by 89. A first digit of zero is not issued.
//
// The returned ABN always passes Validate; failure to find check digits
// would indicate a defect in this package, never user input.
func Generate(src *rng.Source) (string, error) {
	var digits [11]int
	for i := 2; i < 11; i++ {
		digits[i] = src.IntRange(0, 9)
	}

	for d1 := 1; d1 <= 9; d1++ {
		for d2 := 0; d2 <= 9; d2++ {
			digits[0], digits[1] = d1, d2
			if checksum(digits) == 0 {
				var b strings.Builder
				for _, d := range digits {
					b.WriteByte(byte('0' + d))
				}
				return b.String(), nil
			}
		}
	}

	return "", fmt.Errorf("abn: no check digits satisfy the mod-89 checksum for base %v", digits[2:])
}
