// Package material provides the material stock aggregate. Stock is deducted
// when orders complete; the balance is deliberately unguarded and may go
// negative.
package material
