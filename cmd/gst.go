// =============================================================================
// Australian POS Data Generator - GST Command
// =============================================================================
//
// This file defines the 'gst' command, a calculator over the same tax
// arithmetic the generator prices line items with.
//
// COMMAND USAGE:
//   posgen gst 16.50                 # GST component of an inclusive amount
//   posgen gst 15.00 --exclusive     # add GST to an exclusive amount
//   posgen gst 4.50 --code GST_FREE  # non-taxable supply
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/aus-pos-datagen/internal/models"
	"github.com/ginjaninja78/aus-pos-datagen/internal/tax"
)

var gstFlags struct {
	code      string
	exclusive bool
}

// gstCmd represents the 'gst' command.
var gstCmd = &cobra.Command{
	Use:   "gst <amount>",
	Short: "Compute the GST breakdown of an amount",
	Long: `Compute the GST component of an amount using the divide-by-eleven rule
for GST-inclusive prices, or the add-ten-percent rule with --exclusive.

Codes: GST (default), GST_FREE, INPUT_TAXED. Non-taxable codes always
yield a zero GST component.`,
	Args: cobra.ExactArgs(1),
	RunE: runGST,
}

func runGST(cmd *cobra.Command, args []string) error {
	amount, err := decimal.NewFromString(args[0])
	if err != nil {
		return fmt.Errorf("amount %q is not a decimal number: %w", args[0], err)
	}
	if amount.IsNegative() {
		return fmt.Errorf("amount must not be negative")
	}

	code := models.GSTCode(gstFlags.code)
	if !code.Valid() {
		return &models.ConfigurationError{Field: "code", Reason: "unknown GST code " + gstFlags.code}
	}

	var components tax.Components
	if gstFlags.exclusive {
		components = tax.FromExclusive(amount, code)
	} else {
		components = tax.FromInclusive(amount, code)
	}

	fmt.Printf("GST code:      %s\n", code)
	fmt.Printf("Exclusive:     %s\n", components.Exclusive.StringFixed(2))
	fmt.Printf("GST amount:    %s\n", components.GSTAmount.StringFixed(2))
	fmt.Printf("Inclusive:     %s\n", components.Inclusive.StringFixed(2))
	return nil
}

func init() {
	gstCmd.Flags().StringVar(&gstFlags.code, "code", string(models.GSTStandard), "GST code: GST, GST_FREE or INPUT_TAXED")
	gstCmd.Flags().BoolVar(&gstFlags.exclusive, "exclusive", false, "Treat the amount as GST-exclusive and add GST")

	rootCmd.AddCommand(gstCmd)
}
