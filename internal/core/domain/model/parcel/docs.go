// Package parcel provides the Parcel aggregate (a package in delivery terms;
// "package" is reserved in Go) and its delivery-state machine.
//
// The package includes:
//   - Parcel: identity, external code, destination and assigned agent
//   - Status: the delivery state with its storage representation
//
// Key business rules:
//   - A parcel moves from Assigned to Delivered exactly once
//   - Only the agent the parcel is assigned to may deliver it
//   - InTransit and Returned are produced upstream and are read-only here
//
// Transition failures unwrap to errs.ErrConflict so the transport layer can
// report them the same way as storage integrity violations.
package parcel
