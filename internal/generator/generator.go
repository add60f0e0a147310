// =============================================================================
// Australian POS Data Generator - Generation Orchestrator
// =============================================================================
//
// This module drives the end-to-end generation sequence. It owns the seeded
// random source and the growing entity registries; no other component
// mutates them.
//
// GENERATION PIPELINE (strictly sequential, no interleaving):
//   1. Businesses    - ABN, population-weighted state, in-range postcode
//   2. Customers     - weighted type mix; business customers carry an ABN
//   3. Transactions  - per calendar day, volume scaled by seasonality;
//                      line items priced through the tax calculator
//   4. Returns       - second pass over emitted transactions, driven by
//                      category return rates
//   5. Assembly      - invariants re-verified, dataset handed over
//
// Later phases reference earlier ones by identifier, so each phase is fully
// closed before the next begins and no entity ever holds a forward
// reference. Any constraint violation aborts the run before a single record
// reaches an export writer.
//
// =============================================================================

package generator

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ginjaninja78/aus-pos-datagen/internal/abn"
	"github.com/ginjaninja78/aus-pos-datagen/internal/catalog"
	"github.com/ginjaninja78/aus-pos-datagen/internal/config"
	"github.com/ginjaninja78/aus-pos-datagen/internal/models"
	"github.com/ginjaninja78/aus-pos-datagen/internal/rng"
	"github.com/ginjaninja78/aus-pos-datagen/internal/season"
	"github.com/ginjaninja78/aus-pos-datagen/internal/tax"
	"github.com/ginjaninja78/aus-pos-datagen/internal/validation"
)

// Stats summarizes a completed generation run.
type Stats struct {
	Businesses   int
	Customers    int
	Transactions int
	LineItems    int
	Returns      int
	Elapsed      time.Duration
}

// Generator produces one dataset per instance. It is single-threaded by
// design: phases execute strictly in sequence and share only the seeded
// source and the registries below.
type Generator struct {
	cfg      *config.Config
	src      *rng.Source
	model    *season.Model
	log      *zap.Logger
	products []models.Product

	businesses   []models.Business
	customers    []models.Customer
	transactions []models.Transaction
	returns      []models.Return
}

// New validates the configuration and prepares a generator. The seeded
// source is created here, once per run.
func New(cfg *config.Config, log *zap.Logger) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		cfg:      cfg,
		src:      rng.New(cfg.Seed),
		model:    cfg.SeasonModel(),
		log:      log,
		products: catalog.Products(),
	}, nil
}

// Run executes all five phases and returns the finished dataset. On any
// error the dataset is nil; partial datasets are never returned.
func (g *Generator) Run() (*models.Dataset, Stats, error) {
	start := time.Now()
	g.log.Info("starting generation", zap.Int64("seed", g.cfg.Seed))

	if err := g.generateBusinesses(); err != nil {
		return nil, Stats{}, err
	}
	if err := g.generateCustomers(); err != nil {
		return nil, Stats{}, err
	}
	if err := g.generateTransactions(); err != nil {
		return nil, Stats{}, err
	}
	if err := g.generateReturns(); err != nil {
		return nil, Stats{}, err
	}

	dataset := &models.Dataset{
		Businesses:   g.businesses,
		Customers:    g.customers,
		Products:     g.products,
		Transactions: g.transactions,
		Returns:      g.returns,
	}

	rangeStart, rangeEnd, err := g.cfg.DateRange()
	if err != nil {
		return nil, Stats{}, err
	}
	if err := validation.Verify(dataset, validation.Options{
		Season:     g.model,
		RangeStart: rangeStart,
		RangeEnd:   rangeEnd,
	}); err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{
		Businesses:   len(dataset.Businesses),
		Customers:    len(dataset.Customers),
		Transactions: len(dataset.Transactions),
		LineItems:    len(dataset.Items()),
		Returns:      len(dataset.Returns),
		Elapsed:      time.Since(start),
	}
	g.log.Info("generation complete",
		zap.Int("businesses", stats.Businesses),
		zap.Int("customers", stats.Customers),
		zap.Int("transactions", stats.Transactions),
		zap.Int("line_items", stats.LineItems),
		zap.Int("returns", stats.Returns),
		zap.Duration("elapsed", stats.Elapsed),
	)
	return dataset, stats, nil
}

// =============================================================================
// PHASE 1: BUSINESSES
// =============================================================================

func (g *Generator) generateBusinesses() error {
	g.log.Info("generating businesses", zap.Int("count", g.cfg.BusinessCount))

	for i := 0; i < g.cfg.BusinessCount; i++ {
		storeID := fmt.Sprintf("%02d", i+1)

		rawABN, err := abn.Generate(g.src)
		if err != nil {
			return err
		}
		formatted, err := abn.Format(rawABN)
		if err != nil {
			return err
		}

		state := rng.Choice(g.src, g.cfg.States.Table())
		business, err := models.NewBusiness(
			storeID,
			g.businessName(),
			formatted,
			state,
			g.postcodeFor(state),
			true,
			rng.Pick(g.src, posSystems),
			g.src.IntRange(1, 5),
		)
		if err != nil {
			return err
		}
		g.businesses = append(g.businesses, business)
	}
	return nil
}

func (g *Generator) businessName() string {
	return rng.Pick(g.src, businessNameLead) + " " + rng.Pick(g.src, businessNameTail) + " Pty Ltd"
}

func (g *Generator) postcodeFor(state models.State) string {
	low, high := state.PostcodeRange()
	return fmt.Sprintf("%04d", g.src.IntRange(low, high))
}

// =============================================================================
// PHASE 2: CUSTOMERS
// =============================================================================

func (g *Generator) generateCustomers() error {
	g.log.Info("generating customers", zap.Int("count", g.cfg.CustomerCount))

	for i := 0; i < g.cfg.CustomerCount; i++ {
		customerID := fmt.Sprintf("%06d", i+1)
		ctype := rng.Choice(g.src, g.cfg.CustomerTypes.Table())

		customerABN := ""
		if ctype == models.CustomerBusiness {
			raw, err := abn.Generate(g.src)
			if err != nil {
				return err
			}
			customerABN, err = abn.Format(raw)
			if err != nil {
				return err
			}
		}

		state := rng.Choice(g.src, g.cfg.States.Table())
		customer, err := models.NewCustomer(customerID, ctype, state, g.postcodeFor(state), customerABN)
		if err != nil {
			return err
		}
		g.customers = append(g.customers, customer)
	}
	return nil
}

// =============================================================================
// PHASE 3: TRANSACTIONS
// =============================================================================

func (g *Generator) generateTransactions() error {
	start, end, err := g.cfg.DateRange()
	if err != nil {
		return err
	}
	g.log.Info("generating transactions",
		zap.String("start", start.Format(config.DateLayout)),
		zap.String("end", end.Format(config.DateLayout)),
	)

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		if g.cfg.SkipWeekends && (date.Weekday() == time.Saturday || date.Weekday() == time.Sunday) {
			continue
		}
		multiplier := g.model.Multiplier(date)
		if multiplier == 0 {
			continue // closed (e.g. Christmas Day)
		}
		for bi := range g.businesses {
			base := g.src.IntRange(g.cfg.DailyVolume.Min, g.cfg.DailyVolume.Max)
			count := int(float64(base) * multiplier)
			for i := 0; i < count; i++ {
				transaction, err := g.buildTransaction(g.businesses[bi], date)
				if err != nil {
					return err
				}
				g.transactions = append(g.transactions, transaction)
			}
		}
	}
	return nil
}

// buildTransaction constructs one fully reconciled transaction on the given
// business day. Also used verbatim by streaming mode: the transaction is
// complete in memory before anything observes it.
func (g *Generator) buildTransaction(business models.Business, date time.Time) (models.Transaction, error) {
	hour := rng.Choice(g.src, g.model.HourWeights(date))
	at := time.Date(date.Year(), date.Month(), date.Day(),
		hour, g.src.IntRange(0, 59), g.src.IntRange(0, 59), 0, time.UTC)
	return g.buildTransactionAt(business, at)
}

// buildTransactionAt constructs a transaction with an explicit timestamp.
// Streaming mode supplies the wall clock here.
func (g *Generator) buildTransactionAt(business models.Business, at time.Time) (models.Transaction, error) {
	transactionID := g.src.HexID(16)

	items, total, err := g.buildLineItems(transactionID)
	if err != nil {
		return models.Transaction{}, err
	}

	customerID := ""
	if g.src.Float64() < g.cfg.CustomerAttachRate && len(g.customers) > 0 {
		idx := g.src.IntRange(0, len(g.customers)-1)
		customerID = g.customers[idx].CustomerID
		if g.customers[idx].CustomerType.EarnsLoyaltyPoints() {
			// One point per whole dollar spent.
			g.customers[idx].LoyaltyPoints += int(total.IntPart())
		}
	}

	method := rng.Choice(g.src, g.cfg.PaymentMethods.Table())
	tender := total
	change := decimal.Zero
	if method == models.PaymentCash {
		tender = tax.RoundCash(total, g.cfg.RoundingPolicy)
		change = tender.Sub(total)
	}

	return models.NewTransaction(transactionID, business.StoreID, customerID, at, method, tender, change, items)
}

// buildLineItems samples the item set for a transaction and prices each
// line through the tax calculator. GST is computed per line; the caller's
// transaction totals are the exact sums of these lines.
func (g *Generator) buildLineItems(transactionID string) ([]models.TransactionItem, decimal.Decimal, error) {
	count := g.src.IntRange(g.cfg.ItemsPerTransaction.Min, g.cfg.ItemsPerTransaction.Max)
	items := make([]models.TransactionItem, 0, count)
	total := decimal.Zero

	for line := 1; line <= count; line++ {
		product := rng.Pick(g.src, g.products)
		quantity := g.src.IntRange(1, g.cfg.MaxItemQuantity)

		lineTotal := product.UnitPriceIncGST.Mul(decimal.NewFromInt(int64(quantity)))
		components := tax.FromInclusive(lineTotal, product.GSTCode)

		item, err := models.NewTransactionItem(
			transactionID, line, product, quantity,
			components.Exclusive, components.GSTAmount, components.Inclusive,
		)
		if err != nil {
			return nil, decimal.Zero, err
		}
		items = append(items, item)
		total = total.Add(item.LineTotalIncGST)
	}
	return items, total, nil
}

// =============================================================================
// PHASE 4: RETURNS
// =============================================================================

func (g *Generator) generateReturns() error {
	g.log.Info("generating returns", zap.Int("transactions", len(g.transactions)))

	productsByID := make(map[string]models.Product, len(g.products))
	for _, p := range g.products {
		productsByID[p.ProductID] = p
	}

	for ti := range g.transactions {
		transaction := g.transactions[ti]
		for _, item := range transaction.Items {
			product, ok := productsByID[item.ProductID]
			if !ok {
				return &models.IntegrityError{
					Entity:    "transaction_item",
					ID:        fmt.Sprintf("%s/%d", item.TransactionID, item.LineNumber),
					Reference: "product " + item.ProductID,
					Detail:    "product is not in the catalog",
				}
			}
			if g.src.Float64() >= g.cfg.ReturnRates.Rate(product.Category) {
				continue
			}

			returnDate := transaction.TransactionDatetime.AddDate(0, 0, g.src.IntRange(1, 30))
			ret, err := models.NewReturn(
				g.src.HexID(16),
				transaction,
				item.LineNumber,
				returnDate,
				rng.Pick(g.src, product.Category.ReturnReasons()),
				item.LineTotalIncGST,
			)
			if err != nil {
				return err
			}
			g.returns = append(g.returns, ret)
		}
	}
	return nil
}
