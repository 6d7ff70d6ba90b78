// Package route rebinds the system default route to a different uplink.
//
// The Switcher reads the current default route from a Store, resolves the
// requested interface name to a link index and commits the new egress
// interface in a single replace operation. The gateway, when the route has
// one, is carried over unchanged; acquiring a gateway for the new uplink is
// left to whatever manages leases on that interface.
//
// # Outcomes
//
// A switch request ends in one of four outcomes:
//   - Switched: the route now egresses through the requested link
//   - AlreadySelected: nothing to do, the route already uses that link
//   - NoDefaultRoute: the table has no default route; nothing was changed
//   - UnknownInterface: no link by that name exists; nothing was changed
//
// None of these is an error. Errors are reserved for failed queries
// (QueryError) and rejected commits (CommitError); in both cases the routing
// table is left as it was.
//
// # Stores
//
// NetlinkStore talks to the kernel over rtnetlink and is only functional on
// Linux. MemoryStore keeps links and the default route in memory and backs
// the simulator and tests.
package route
