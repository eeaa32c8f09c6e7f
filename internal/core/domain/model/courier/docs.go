// Package courier contains the Courier aggregate and its value objects.
//
// A courier is eligible for order assignment only while verified, available
// and with a known position. Availability toggles with the assignment
// lifecycle; the position updates as the courier reports locations from the
// field.
package courier
