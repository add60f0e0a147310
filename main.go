// =============================================================================
// Australian POS Data Generator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the posgen CLI application. It
// initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   posgen generate      - Generate a full synthetic POS dataset
//   posgen stream        - Stream live transactions at a wall-clock rate
//   posgen abn           - Validate or generate Australian Business Numbers
//   posgen gst           - Calculate GST components for an amount
//   posgen version       - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains the generation engine (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/aus-pos-datagen/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
