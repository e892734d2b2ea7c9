// Package product provides the product aggregate and its bill of materials.
// A product is a read-only input to the order lifecycle: its BOM lines
// define which materials an order consumes and in what quantity per unit.
package product
