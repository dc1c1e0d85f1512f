// Package order provides the Order aggregate for the freight fulfillment core.
//
// An Order is created at checkout submission and only ever transitions status;
// it is never deleted. The aggregate owns two invariants:
//   - the carrier cart reference is attached exactly when a reservation
//     succeeds, before any payment can be confirmed;
//   - payment confirmation without a prior reservation is surfaced as an
//     error, never silently healed.
//
// Status follows pending -> payment_confirmed, with cancellation possible
// only while pending.
package order
