// Package services provides domain services that coordinate more than one
// aggregate in the delivery-tracking domain.
//
// The package includes:
//   - DeliveryRegistrar: applies a parcel's delivery transition and produces
//     the matching delivery record
//
// Domain services hold no state and perform no I/O; persistence and
// transactions are handled by the application layer.
package services
