// =============================================================================
// Australian POS Data Generator - Error Taxonomy
// =============================================================================
//
// The generation engine has four fatal error classes. All of them abort the
// run before any record reaches an export writer; there is no partial
// dataset mode.
//
//   ConfigurationError  - invalid configuration; generation never starts
//   ChecksumError       - a generated ABN fails its own checksum (logic defect)
//   IntegrityError      - a cross-reference does not resolve (ordering defect)
//   ReconciliationError - a monetary invariant fails (tax arithmetic defect)
//
// =============================================================================

package models

import "fmt"

// ConfigurationError is an invalid configuration value or combination.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// ChecksumError is raised when an ABN attached to an entity fails
// validation after generation. It indicates a defect in the ABN service,
// not bad user input, and is never silently retried.
type ChecksumError struct {
	Entity string
	ID     string
	ABN    string
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum error: %s %s carries ABN %q that fails the mod-89 check", e.Entity, e.ID, e.ABN)
}

// IntegrityError is a dangling or forward cross-reference between entities.
type IntegrityError struct {
	Entity    string
	ID        string
	Reference string
	Detail    string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity error: %s %s references %s: %s", e.Entity, e.ID, e.Reference, e.Detail)
}

// ReconciliationError is a failed monetary invariant, e.g. line totals that
// do not sum to the transaction total or tender that does not reconcile
// with change.
type ReconciliationError struct {
	Entity string
	ID     string
	Detail string
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("reconciliation error: %s %s: %s", e.Entity, e.ID, e.Detail)
}
