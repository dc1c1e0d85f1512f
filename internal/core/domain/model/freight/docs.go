// Package freight provides value objects describing what is physically shipped
// and where: the destination address snapshot embedded in a carrier
// reservation, the consolidated package volume, and the cart line items a
// quote or reservation is computed from.
//
// All types are immutable value objects created through validating
// constructors. An Address is a snapshot, not a live reference: once embedded
// in a reservation request it never changes, even if the customer later edits
// their stored address.
package freight
