// Package services contains stateless domain services: the pricing engine
// that turns distance, parcel characteristics and pickup time into an
// itemized quote, and the courier dispatcher that deterministically selects
// the nearest eligible courier for an order.
package services
