// Package services provides domain services that work across the storefront aggregates.
//
// The package includes:
//   - ResolveLines: joins cart lines with catalog products and brands
//   - DeliveryChargeCalculator: groups order lines by owning brand and charges each
//     group a flat rate chosen by the destination city
package services
