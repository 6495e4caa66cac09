// Package kernel provides the value objects shared across the storefront domain model.
//
// The package includes:
//   - UUID: identifiers for products, brands, orders and order lines
//   - Money: non-negative decimal amounts (prices, subtotals, delivery charges)
//   - Destination: shipping city and address, with the city normalization used by
//     the delivery tier decision
//
// Values are immutable and safe for concurrent use.
package kernel
