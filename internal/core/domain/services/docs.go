// Package services provides domain services for the freight fulfillment core:
// business logic that spans value objects and collaborator data without
// belonging to a single aggregate.
//
// The package includes:
//   - AddressResolver: turns stored or explicit destinations into validated
//     address snapshots, normalizing full state names to UF codes
//   - VolumeCalculator: consolidates cart line items into one physical volume
//     with the weight/dimension/insured-value floors the carrier expects
//   - QuoteSigner: signs and verifies tamper-proof, expiring shipping quotes
//     bound to an exact item set
package services
