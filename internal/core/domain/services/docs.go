// Package services provides domain services that orchestrate business
// operations across multiple aggregates of the production system.
//
// The package includes:
//   - BOMResolver: expands a product's bill of materials into the
//     requirement lines of an order
//
// Domain services hold logic that spans aggregates and does not naturally
// belong to a single aggregate root.
package services
