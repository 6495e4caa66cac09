// Package catalog contains the inventory side of the storefront domain model.
//
// Product is the aggregate root. Its SizeBucket entities each hold one authoritative
// remaining quantity and a separate cumulative-sold counter; Product keeps the
// denormalized totalStock equal to the sum of bucket stock after every ledger mutation
// and counts lifetime sales.
//
// Brand is read-only here: brands are administered elsewhere and are loaded to check
// approval and to address notifications.
package catalog
