// Package order contains the Order aggregate and its value objects.
//
// Order owns the delivery lifecycle state machine (Pending, Assigned,
// PickedUp, InTransit, Delivered, Cancelled) and the invariant that a courier
// is attached exactly while the order is in a courier-carrying status. Route
// and Parcel are immutable value objects validated at construction.
package order
