package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/aus-pos-datagen/internal/models"
	"github.com/ginjaninja78/aus-pos-datagen/internal/tax"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 5, cfg.BusinessCount)
	assert.Equal(t, 1000, cfg.CustomerCount)
	assert.Equal(t, tax.RoundHalfUp, cfg.RoundingPolicy)
	assert.Equal(t, []string{"csv"}, cfg.Output.Formats)

	start, end, err := cfg.DateRange()
	require.NoError(t, err)
	assert.False(t, end.Before(start))
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
seed: 7
business_count: 3
start_date: "2025-01-01"
end_date: "2025-01-31"
rounding_policy: half_down
output:
  dir: ./data
  formats: [csv, json]
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 3, cfg.BusinessCount)
	assert.Equal(t, tax.RoundHalfDown, cfg.RoundingPolicy)
	assert.Equal(t, []string{"csv", "json"}, cfg.Output.Formats)
	// Unset options still default.
	assert.Equal(t, 1000, cfg.CustomerCount)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: [not an int"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"end before start", func(c *Config) {
			c.StartDate = "2025-06-01"
			c.EndDate = "2025-05-01"
		}, "end_date"},
		{"bad start date", func(c *Config) { c.StartDate = "01/06/2025" }, "start_date"},
		{"zero businesses", func(c *Config) { c.BusinessCount = -1 }, "business_count"},
		{"inverted volume range", func(c *Config) { c.DailyVolume = Range{Min: 100, Max: 10} }, "daily_volume"},
		{"zero items minimum", func(c *Config) { c.ItemsPerTransaction = Range{Min: 0, Max: 5} }, "items_per_transaction"},
		{"attach rate above 1", func(c *Config) { c.CustomerAttachRate = 1.5 }, "customer_attach_rate"},
		{"unknown rounding policy", func(c *Config) { c.RoundingPolicy = "bankers" }, "rounding_policy"},
		{"negative payment weight", func(c *Config) { c.PaymentMethods.Cash = -0.1 }, "payment_methods"},
		{"all-zero state weights", func(c *Config) { c.States = StateWeights{} }, "states"},
		{"return rate above 1", func(c *Config) { c.ReturnRates.Clothing = 1.2 }, "return_rates"},
		{"inverted trading window", func(c *Config) { c.TradingHours.Weekday = Window{Open: 17, Close: 9} }, "trading_hours.weekday"},
		{"unknown output format", func(c *Config) { c.Output.Formats = []string{"parquet"} }, "output.formats"},
		{"negative stream rate", func(c *Config) { c.Stream.Rate = -1 }, "stream.rate"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)

			var cfgErr *models.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tc.field, cfgErr.Field)
		})
	}
}

func TestWeightTables(t *testing.T) {
	cfg := Default()

	payments := cfg.PaymentMethods.Table()
	assert.Len(t, payments, 5)

	var total float64
	for _, w := range payments {
		total += w.Weight
	}
	assert.InDelta(t, 1.0, total, 1e-9)

	assert.Len(t, cfg.States.Table(), 8)
	assert.Len(t, cfg.CustomerTypes.Table(), 4)
}

func TestReturnRatePerCategory(t *testing.T) {
	cfg := Default()
	assert.InDelta(t, 0.25, cfg.ReturnRates.Rate(models.CategoryClothing), 1e-9)
	assert.InDelta(t, 0.03, cfg.ReturnRates.Rate(models.CategoryFood), 1e-9)
}
