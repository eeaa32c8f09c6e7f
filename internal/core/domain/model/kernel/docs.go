// Package kernel provides the core domain primitives shared across the parcel
// delivery domain model.
//
// The package includes:
//   - UUID: a value object for aggregate identifiers with validation and comparison
//   - GeoPoint: a validated WGS84 coordinate pair with haversine distance
//   - Money: an exact decimal monetary amount in the fixed platform currency
//
// These primitives enforce domain invariants at construction time, are
// immutable and are safe for concurrent use.
package kernel
