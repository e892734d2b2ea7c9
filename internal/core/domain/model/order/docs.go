// Package order provides the production order aggregate: lifecycle status,
// material requirement lines, and the machine claim record. The order is
// created atomically with its lines and claim; completion deducts the
// remaining amount of every line exactly once.
package order
