// Package order provides the Order aggregate of the storefront: a multi-brand order
// whose lines are fulfilled independently by the brands that own them.
//
// The package includes:
//   - Order: the aggregate root holding lines, customer, destination, payment and the
//     delivery breakdown snapshot, plus the order-level status views
//   - Line: one product/size/quantity entry owned by one brand
//   - Status and TransitionPolicy: the per-line state machine
//     (pending -> confirmed -> shipped -> delivered, cancelled from any non-terminal state)
//   - DeliveryBreakdown and BrandGroup: per-brand delivery charges computed at checkout
//   - Event and Snapshot: facts written to the notification outbox
//
// Key business rules:
//   - Lines start pending and keep their brand snapshot forever
//   - A brand transition moves all of that brand's lines together and leaves other
//     brands' lines untouched
//   - Stock is decremented once per line on entering confirmed and sales are recorded
//     once per line on entering delivered, gated by the status before the transition
package order
