// =============================================================================
// Australian POS Data Generator - Streaming Sinks
// =============================================================================
//
// Sinks receive one fully built transaction at a time from streaming mode.
// Console and file sinks emit newline-delimited JSON; each line is a
// complete transaction with its items nested.
//
// =============================================================================

package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/aus-pos-datagen/internal/models"
)

// ConsoleSink writes NDJSON to a writer, stdout by default.
type ConsoleSink struct {
	enc *json.Encoder
}

// NewConsoleSink returns a sink writing to w, or to stdout when w is nil.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleSink{enc: json.NewEncoder(w)}
}

func (s *ConsoleSink) Emit(_ context.Context, t models.Transaction) error {
	return s.enc.Encode(t)
}

func (s *ConsoleSink) Close() error { return nil }

// FileSink appends NDJSON transactions to a file.
type FileSink struct {
	f   *os.File
	enc *json.Encoder
}

// NewFileSink opens (or creates) path for appending.
func NewFileSink(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening stream output %s: %w", path, err)
	}
	return &FileSink{f: f, enc: json.NewEncoder(f)}, nil
}

func (s *FileSink) Emit(_ context.Context, t models.Transaction) error {
	return s.enc.Encode(t)
}

func (s *FileSink) Close() error {
	return s.f.Close()
}
