// Package shipment provides the Shipment aggregate: the per-carrier-order
// state of the fulfillment saga.
//
// A Shipment is keyed by its carrier order id, which is globally unique and
// serves as the idempotency key for every persistence write. Status moves
// monotonically through
//
//	created -> paid -> label_generated -> tracking_available
//
// and never regresses, except into the terminal cancelled/error states.
// Alongside status, the aggregate records the saga step last completed
// (Reserved, Purchased, LabelGenerated, TrackingSynced) so that a replayed
// payment event can tell which carrier-side operations already ran.
package shipment
