// =============================================================================
// Australian POS Data Generator - Configuration Module
// =============================================================================
//
// This module loads and validates the single configuration object the
// generation engine consumes. Configuration comes from a YAML file (plus
// CLI flag overrides applied by the cmd package); the engine itself never
// reads files or environment variables.
//
// LOADING PIPELINE:
//   1. Read and parse the YAML file (missing file => pure defaults)
//   2. Apply defaults for any unset option
//   3. Validate; any violation is a ConfigurationError and generation
//      never starts
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/aus-pos-datagen/internal/models"
	"github.com/ginjaninja78/aus-pos-datagen/internal/rng"
	"github.com/ginjaninja78/aus-pos-datagen/internal/season"
	"github.com/ginjaninja78/aus-pos-datagen/internal/tax"
)

// DateLayout is the wire format for configured dates.
const DateLayout = "2006-01-02"

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Range is an inclusive integer range.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// PaymentWeights is the payment-method mix. One field per method; there is
// no way to configure an unknown method.
type PaymentWeights struct {
	EFTPOS      float64 `yaml:"eftpos"`
	Contactless float64 `yaml:"contactless"`
	CreditCard  float64 `yaml:"credit_card"`
	Cash        float64 `yaml:"cash"`
	BNPL        float64 `yaml:"buy_now_pay_later"`
}

// Table renders the weights as a sampling table in declaration order.
func (w PaymentWeights) Table() []rng.Weighted[models.PaymentMethod] {
	return []rng.Weighted[models.PaymentMethod]{
		{Value: models.PaymentEFTPOS, Weight: w.EFTPOS},
		{Value: models.PaymentContactless, Weight: w.Contactless},
		{Value: models.PaymentCreditCard, Weight: w.CreditCard},
		{Value: models.PaymentCash, Weight: w.Cash},
		{Value: models.PaymentBNPL, Weight: w.BNPL},
	}
}

func (w PaymentWeights) values() []float64 {
	return []float64{w.EFTPOS, w.Contactless, w.CreditCard, w.Cash, w.BNPL}
}

// StateWeights is the population share per state and territory.
type StateWeights struct {
	NSW float64 `yaml:"nsw"`
	VIC float64 `yaml:"vic"`
	QLD float64 `yaml:"qld"`
	WA  float64 `yaml:"wa"`
	SA  float64 `yaml:"sa"`
	TAS float64 `yaml:"tas"`
	NT  float64 `yaml:"nt"`
	ACT float64 `yaml:"act"`
}

// Table renders the weights as a sampling table in declaration order.
func (w StateWeights) Table() []rng.Weighted[models.State] {
	return []rng.Weighted[models.State]{
		{Value: models.NSW, Weight: w.NSW},
		{Value: models.VIC, Weight: w.VIC},
		{Value: models.QLD, Weight: w.QLD},
		{Value: models.WA, Weight: w.WA},
		{Value: models.SA, Weight: w.SA},
		{Value: models.TAS, Weight: w.TAS},
		{Value: models.NT, Weight: w.NT},
		{Value: models.ACT, Weight: w.ACT},
	}
}

func (w StateWeights) values() []float64 {
	return []float64{w.NSW, w.VIC, w.QLD, w.WA, w.SA, w.TAS, w.NT, w.ACT}
}

// CustomerTypeWeights is the customer-type mix.
type CustomerTypeWeights struct {
	Individual float64 `yaml:"individual"`
	Business   float64 `yaml:"business"`
	Loyalty    float64 `yaml:"loyalty"`
	Staff      float64 `yaml:"staff"`
}

// Table renders the weights as a sampling table in declaration order.
func (w CustomerTypeWeights) Table() []rng.Weighted[models.CustomerType] {
	return []rng.Weighted[models.CustomerType]{
		{Value: models.CustomerIndividual, Weight: w.Individual},
		{Value: models.CustomerBusiness, Weight: w.Business},
		{Value: models.CustomerLoyalty, Weight: w.Loyalty},
		{Value: models.CustomerStaff, Weight: w.Staff},
	}
}

func (w CustomerTypeWeights) values() []float64 {
	return []float64{w.Individual, w.Business, w.Loyalty, w.Staff}
}

// ReturnRates is the per-category probability that a sold line item is
// later returned.
type ReturnRates struct {
	Beverages   float64 `yaml:"beverages"`
	Food        float64 `yaml:"food"`
	Clothing    float64 `yaml:"clothing"`
	Electronics float64 `yaml:"electronics"`
	Pharmacy    float64 `yaml:"pharmacy"`
	Health      float64 `yaml:"health"`
}

// Rate returns the return rate for a category via exhaustive match.
func (r ReturnRates) Rate(c models.Category) float64 {
	switch c {
	case models.CategoryBeverages:
		return r.Beverages
	case models.CategoryFood:
		return r.Food
	case models.CategoryClothing:
		return r.Clothing
	case models.CategoryElectronics:
		return r.Electronics
	case models.CategoryPharmacy:
		return r.Pharmacy
	case models.CategoryHealth:
		return r.Health
	}
	panic(fmt.Sprintf("config: unknown category %q", string(c)))
}

func (r ReturnRates) values() []float64 {
	return []float64{r.Beverages, r.Food, r.Clothing, r.Electronics, r.Pharmacy, r.Health}
}

// Seasonal holds the quarter multipliers. Q2 and Q3 are flat at 1.0.
type Seasonal struct {
	Q1 float64 `yaml:"q1"`
	Q4 float64 `yaml:"q4"`
}

// Window is a trading window in whole hours, open inclusive and close
// exclusive.
type Window struct {
	Open  int `yaml:"open"`
	Close int `yaml:"close"`
}

// Hours converts the window into the seasonality model's form.
func (w Window) Hours() season.Hours {
	return season.Hours{Open: w.Open, Close: w.Close}
}

// TradingHours is the weekday and weekend trading windows.
type TradingHours struct {
	Weekday Window `yaml:"weekday"`
	Weekend Window `yaml:"weekend"`
}

// Output controls where and in which formats the dataset is written.
type Output struct {
	Dir     string   `yaml:"dir"`
	Formats []string `yaml:"formats"`
}

// Postgres is the optional PostgreSQL export target.
type Postgres struct {
	DSN string `yaml:"dsn"`
}

// Kafka is the optional streaming sink.
type Kafka struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// Stream controls live emission.
type Stream struct {
	// Rate is transactions per second.
	Rate float64 `yaml:"rate"`
}

// Config is the complete, validated configuration object consumed by the
// generation engine.
type Config struct {
	Seed int64 `yaml:"seed"`

	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date"`

	BusinessCount int `yaml:"business_count"`
	CustomerCount int `yaml:"customer_count"`

	DailyVolume         Range `yaml:"daily_volume"`
	ItemsPerTransaction Range `yaml:"items_per_transaction"`
	MaxItemQuantity     int   `yaml:"max_item_quantity"`

	// CustomerAttachRate is the proportion of transactions carrying a
	// customer reference; the remainder are anonymous walk-ins.
	CustomerAttachRate float64 `yaml:"customer_attach_rate"`

	// SkipWeekends restores the original weekday-only behaviour.
	SkipWeekends bool `yaml:"skip_weekends"`

	RoundingPolicy tax.RoundingPolicy `yaml:"rounding_policy"`

	PaymentMethods PaymentWeights      `yaml:"payment_methods"`
	States         StateWeights        `yaml:"states"`
	CustomerTypes  CustomerTypeWeights `yaml:"customer_types"`
	ReturnRates    ReturnRates         `yaml:"return_rates"`
	Seasonal       Seasonal            `yaml:"seasonal"`
	TradingHours   TradingHours        `yaml:"trading_hours"`

	Output   Output   `yaml:"output"`
	Postgres Postgres `yaml:"postgres"`
	Kafka    Kafka    `yaml:"kafka"`
	Stream   Stream   `yaml:"stream"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads, defaults and validates a configuration file. A missing file
// is not an error: the defaults describe a small, useful dataset.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the fully defaulted, valid configuration.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults sets default values for any unset option. Distribution
// weights default as a block: a partially specified table is kept as given
// so validation can reject it rather than silently topping it up.
func ApplyDefaults(cfg *Config) {
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	if cfg.StartDate == "" && cfg.EndDate == "" {
		end := time.Now().UTC().Truncate(24 * time.Hour)
		cfg.StartDate = end.AddDate(0, 0, -30).Format(DateLayout)
		cfg.EndDate = end.Format(DateLayout)
	}
	if cfg.BusinessCount == 0 {
		cfg.BusinessCount = 5
	}
	if cfg.CustomerCount == 0 {
		cfg.CustomerCount = 1000
	}
	if cfg.DailyVolume == (Range{}) {
		cfg.DailyVolume = Range{Min: 50, Max: 150}
	}
	if cfg.ItemsPerTransaction == (Range{}) {
		cfg.ItemsPerTransaction = Range{Min: 1, Max: 8}
	}
	if cfg.MaxItemQuantity == 0 {
		cfg.MaxItemQuantity = 5
	}
	if cfg.CustomerAttachRate == 0 {
		cfg.CustomerAttachRate = 0.7
	}
	if cfg.RoundingPolicy == "" {
		cfg.RoundingPolicy = tax.RoundHalfUp
	}
	if cfg.PaymentMethods == (PaymentWeights{}) {
		cfg.PaymentMethods = PaymentWeights{
			EFTPOS: 0.45, Contactless: 0.30, CreditCard: 0.15, Cash: 0.08, BNPL: 0.02,
		}
	}
	if cfg.States == (StateWeights{}) {
		cfg.States = StateWeights{
			NSW: 0.32, VIC: 0.26, QLD: 0.20, WA: 0.11, SA: 0.07, TAS: 0.02, NT: 0.01, ACT: 0.01,
		}
	}
	if cfg.CustomerTypes == (CustomerTypeWeights{}) {
		cfg.CustomerTypes = CustomerTypeWeights{
			Individual: 0.70, Business: 0.15, Loyalty: 0.10, Staff: 0.05,
		}
	}
	if cfg.ReturnRates == (ReturnRates{}) {
		cfg.ReturnRates = ReturnRates{
			Beverages: 0.05, Food: 0.03, Clothing: 0.25,
			Electronics: 0.12, Pharmacy: 0.08, Health: 0.15,
		}
	}
	if cfg.Seasonal == (Seasonal{}) {
		cfg.Seasonal = Seasonal{Q1: 0.8, Q4: 1.4}
	}
	if cfg.TradingHours.Weekday == (Window{}) {
		cfg.TradingHours.Weekday = Window{Open: 9, Close: 17}
	}
	if cfg.TradingHours.Weekend == (Window{}) {
		cfg.TradingHours.Weekend = Window{Open: 10, Close: 16}
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "./output"
	}
	if len(cfg.Output.Formats) == 0 {
		cfg.Output.Formats = []string{"csv"}
	}
	if cfg.Stream.Rate == 0 {
		cfg.Stream.Rate = 1.0
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

func configErr(field, reason string) error {
	return &models.ConfigurationError{Field: field, Reason: reason}
}

// Validate checks every invariant the engine depends on. It returns a
// ConfigurationError on the first violation; the engine never starts on an
// invalid configuration.
func (c *Config) Validate() error {
	if _, _, err := c.DateRange(); err != nil {
		return err
	}
	if c.BusinessCount <= 0 {
		return configErr("business_count", "must be positive")
	}
	if c.CustomerCount <= 0 {
		return configErr("customer_count", "must be positive")
	}
	if err := validateRange("daily_volume", c.DailyVolume, 0); err != nil {
		return err
	}
	if err := validateRange("items_per_transaction", c.ItemsPerTransaction, 1); err != nil {
		return err
	}
	if c.MaxItemQuantity < 1 {
		return configErr("max_item_quantity", "must be at least 1")
	}
	if c.CustomerAttachRate < 0 || c.CustomerAttachRate > 1 {
		return configErr("customer_attach_rate", "must be between 0 and 1")
	}
	if !c.RoundingPolicy.Valid() {
		return configErr("rounding_policy", fmt.Sprintf("unknown policy %q (half_up or half_down)", string(c.RoundingPolicy)))
	}
	if err := validateWeights("payment_methods", c.PaymentMethods.values()); err != nil {
		return err
	}
	if err := validateWeights("states", c.States.values()); err != nil {
		return err
	}
	if err := validateWeights("customer_types", c.CustomerTypes.values()); err != nil {
		return err
	}
	for _, rate := range c.ReturnRates.values() {
		if rate < 0 || rate > 1 {
			return configErr("return_rates", "rates must be between 0 and 1")
		}
	}
	if c.Seasonal.Q1 <= 0 || c.Seasonal.Q4 <= 0 {
		return configErr("seasonal", "quarter multipliers must be positive")
	}
	if err := validateWindow("trading_hours.weekday", c.TradingHours.Weekday); err != nil {
		return err
	}
	if err := validateWindow("trading_hours.weekend", c.TradingHours.Weekend); err != nil {
		return err
	}
	for _, format := range c.Output.Formats {
		switch format {
		case "csv", "json", "excel", "sqlite", "postgres":
		default:
			return configErr("output.formats", fmt.Sprintf("unknown format %q", format))
		}
	}
	if c.Stream.Rate <= 0 {
		return configErr("stream.rate", "must be positive")
	}
	return nil
}

// DateRange parses and orders the configured inclusive date range.
func (c *Config) DateRange() (start, end time.Time, err error) {
	start, err = time.Parse(DateLayout, c.StartDate)
	if err != nil {
		return start, end, configErr("start_date", fmt.Sprintf("%q is not a valid %s date", c.StartDate, DateLayout))
	}
	end, err = time.Parse(DateLayout, c.EndDate)
	if err != nil {
		return start, end, configErr("end_date", fmt.Sprintf("%q is not a valid %s date", c.EndDate, DateLayout))
	}
	if end.Before(start) {
		return start, end, configErr("end_date", "end date is before start date")
	}
	return start, end, nil
}

// SeasonModel builds the seasonality model from the configured factors and
// trading windows.
func (c *Config) SeasonModel() *season.Model {
	return season.New(c.Seasonal.Q1, c.Seasonal.Q4, c.TradingHours.Weekday.Hours(), c.TradingHours.Weekend.Hours())
}

func validateRange(field string, r Range, min int) error {
	if r.Min < min {
		return configErr(field, fmt.Sprintf("minimum must be at least %d", min))
	}
	if r.Max < r.Min {
		return configErr(field, "maximum is less than minimum")
	}
	return nil
}

func validateWeights(field string, weights []float64) error {
	var total float64
	for _, w := range weights {
		if w < 0 {
			return configErr(field, "weights must not be negative")
		}
		total += w
	}
	if total <= 0 {
		return configErr(field, "weights must sum to a positive total")
	}
	return nil
}

func validateWindow(field string, w Window) error {
	if w.Open < 0 || w.Close > 24 || w.Open >= w.Close {
		return configErr(field, fmt.Sprintf("window %d-%d is not a valid trading window", w.Open, w.Close))
	}
	return nil
}
