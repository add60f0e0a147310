// =============================================================================
// Australian POS Data Generator - Live Streaming Mode
// =============================================================================
//
// Streaming mode emits transactions at a wall-clock rate instead of all at
// once. The emission loop is a simple timed producer: it waits between
// emissions but performs no concurrent generation; the underlying
// entity-generation logic is the same single-threaded code the batch path
// uses.
//
// ATOMICITY:
//   Each transaction is fully constructed in memory before the sink sees
//   it. Cancellation is only observed between emissions, so a transaction
//   is either emitted whole or not at all.
//
// =============================================================================

package generator

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ginjaninja78/aus-pos-datagen/internal/models"
)

// Sink consumes streamed transactions. Implementations live in the export
// package (console, file, Kafka).
type Sink interface {
	Emit(ctx context.Context, t models.Transaction) error
	Close() error
}

// StreamOptions controls the timed producer.
type StreamOptions struct {
	// Rate is transactions per second. Must be positive.
	Rate float64

	// Duration bounds the stream; zero means run until cancelled.
	Duration time.Duration

	// Count bounds the number of emitted transactions; zero means unbounded.
	Count int
}

// Stream generates the business and customer registries, then emits
// transactions to the sink at the configured rate until the context is
// cancelled or a bound is reached. It returns the number of transactions
// emitted.
//
// Generation errors are fatal and propagate immediately; there is no retry
// inside the engine. Sink failures likewise end the stream, since the sink
// owns its own retry policy if it wants one.
func (g *Generator) Stream(ctx context.Context, sink Sink, opts StreamOptions) (int, error) {
	if opts.Rate <= 0 {
		return 0, &models.ConfigurationError{Field: "stream.rate", Reason: "must be positive"}
	}

	if len(g.businesses) == 0 {
		if err := g.generateBusinesses(); err != nil {
			return 0, err
		}
	}
	if len(g.customers) == 0 {
		if err := g.generateCustomers(); err != nil {
			return 0, err
		}
	}

	interval := time.Duration(float64(time.Second) / opts.Rate)
	g.log.Info("streaming transactions",
		zap.Float64("rate_tps", opts.Rate),
		zap.Duration("interval", interval),
	)

	var deadline <-chan time.Time
	if opts.Duration > 0 {
		timer := time.NewTimer(opts.Duration)
		defer timer.Stop()
		deadline = timer.C
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	emitted := 0
	for {
		select {
		case <-ctx.Done():
			g.log.Info("stream cancelled", zap.Int("emitted", emitted))
			return emitted, ctx.Err()
		case <-deadline:
			g.log.Info("stream duration reached", zap.Int("emitted", emitted))
			return emitted, nil
		case <-ticker.C:
			business := g.businesses[g.src.IntRange(0, len(g.businesses)-1)]
			transaction, err := g.buildTransactionAt(business, time.Now().UTC())
			if err != nil {
				return emitted, err
			}
			if err := sink.Emit(ctx, transaction); err != nil {
				return emitted, err
			}
			emitted++
			if opts.Count > 0 && emitted >= opts.Count {
				g.log.Info("stream count reached", zap.Int("emitted", emitted))
				return emitted, nil
			}
		}
	}
}
