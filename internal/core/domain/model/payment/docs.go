// Package payment contains the Payment aggregate and its reconciliation
// state machine.
//
// A payment moves Pending -> Processing when the provider accepts the STK
// push, then to exactly one terminal status (Paid, Failed, Cancelled,
// Timeout) based on the provider result code. Terminal payments ignore
// further provider results, and the sideEffectsDone flag guarantees
// confirmation side effects run exactly once across callback replays.
package payment
