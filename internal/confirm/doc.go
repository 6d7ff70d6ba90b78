// Package confirm implements the double-press guard used in front of
// destructive panel actions.
//
// A Pending tracker starts idle. The first Trigger arms it with a deadline
// one window in the future; a second Trigger at or before that deadline
// confirms the action and returns the tracker to idle. Evaluate is called on
// every loop iteration and expires an armed tracker once the deadline has
// strictly passed, so the "press again" hint disappears promptly.
//
// # Boundary
//
// Confirmation is inclusive of the deadline, expiry is exclusive:
//
//	p := confirm.New("shutdown", 5*time.Second)
//	p.Trigger(t0)                  // ResultArmed, deadline t0+5s
//	p.Trigger(t0.Add(5*time.Second)) // ResultConfirmed
//
// # Isolation
//
// Trackers share no state. The panel owns one per guarded action and each is
// only ever mutated through its own methods.
package confirm
