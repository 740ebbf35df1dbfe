// Package kernel provides the value objects shared by the delivery-tracking
// domain model:
//   - UUID: identifier for append-only records
//   - GeoPoint: a validated latitude/longitude pair captured at delivery time
//
// Both are immutable and reject their zero value in Validate, so an aggregate
// holding one can check it was built through a constructor.
package kernel
