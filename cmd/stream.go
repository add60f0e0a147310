// =============================================================================
// Australian POS Data Generator - Stream Command
// =============================================================================
//
// This file defines the 'stream' command: live emission of transactions at
// a configurable rate to a console, file or Kafka sink. Useful for feeding
// downstream pipelines that expect a trickle rather than a batch.
//
// COMMAND USAGE:
//   posgen stream --rate 5 --format console
//   posgen stream --rate 10 --duration 2m --format json --output ./stream.ndjson
//   posgen stream --format kafka --brokers localhost:9092 --topic pos.transactions
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/aus-pos-datagen/internal/export"
	"github.com/ginjaninja78/aus-pos-datagen/internal/generator"
	"github.com/ginjaninja78/aus-pos-datagen/internal/models"
)

var streamFlags struct {
	rate     float64
	duration time.Duration
	count    int
	format   string
	output   string
	brokers  []string
	topic    string
}

// streamCmd represents the 'stream' command.
var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Emit transactions continuously at a fixed rate",
	Long: `Stream generates the business and customer registries once, then emits
transactions one at a time at the configured rate until interrupted or a
bound (--duration, --count) is reached.

Sinks:
  console  newline-delimited JSON on stdout (default)
  json     newline-delimited JSON appended to --output
  kafka    one message per transaction, keyed by transaction ID`,
	RunE: runStream,
}

func runStream(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("rate") {
		cfg.Stream.Rate = streamFlags.rate
	}
	if cmd.Flags().Changed("brokers") {
		cfg.Kafka.Brokers = streamFlags.brokers
	}
	if cmd.Flags().Changed("topic") {
		cfg.Kafka.Topic = streamFlags.topic
	}

	sink, err := buildSink(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if err != nil {
		return err
	}
	defer sink.Close()

	gen, err := generator.New(cfg, log)
	if err != nil {
		return err
	}

	// Ctrl-C ends the stream cleanly rather than reporting an error.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	emitted, err := gen.Stream(ctx, sink, generator.StreamOptions{
		Rate:     cfg.Stream.Rate,
		Duration: streamFlags.duration,
		Count:    streamFlags.count,
	})
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	log.Info("stream finished", zap.Int("emitted", emitted))
	return err
}

func buildSink(brokers []string, topic string) (generator.Sink, error) {
	switch streamFlags.format {
	case "console":
		return export.NewConsoleSink(nil), nil
	case "json":
		if streamFlags.output == "" {
			return nil, &models.ConfigurationError{Field: "output", Reason: "required for the json sink"}
		}
		return export.NewFileSink(streamFlags.output)
	case "kafka":
		return export.NewKafkaSink(brokers, topic)
	default:
		return nil, &models.ConfigurationError{Field: "format", Reason: "unknown sink " + streamFlags.format}
	}
}

func init() {
	streamCmd.Flags().Float64Var(&streamFlags.rate, "rate", 1.0, "Transactions per second")
	streamCmd.Flags().DurationVar(&streamFlags.duration, "duration", 0, "Stop after this long (0 = run until interrupted)")
	streamCmd.Flags().IntVar(&streamFlags.count, "count", 0, "Stop after this many transactions (0 = unbounded)")
	streamCmd.Flags().StringVar(&streamFlags.format, "format", "console", "Sink type: console, json or kafka")
	streamCmd.Flags().StringVar(&streamFlags.output, "output", "", "Output file for the json sink")
	streamCmd.Flags().StringSliceVar(&streamFlags.brokers, "brokers", nil, "Kafka broker addresses (overrides config)")
	streamCmd.Flags().StringVar(&streamFlags.topic, "topic", "", "Kafka topic (overrides config)")

	rootCmd.AddCommand(streamCmd)
}
