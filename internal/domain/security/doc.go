// Package security models the premises security controller as a finite
// state machine.
//
// A Controller holds the current operating state (disarmed, armed, alarm or
// silent alarm) and the secret code. Commands are dispatched to the current
// state, which either ignores them or asks the controller to transition.
// Every transition runs the exit hook of the outgoing state, swaps the state
// and runs the enter hook of the incoming one.
//
// The silent alarm has no way out: no command leaves it, so only a new
// controller (a process restart) brings the system back to disarmed.
package security
