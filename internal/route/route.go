package route

import (
	"errors"
	"fmt"
	"net"
)

// ErrLinkNotFound is returned by a Store when no link has the requested name.
var ErrLinkNotFound = errors.New("link not found")

// Route is the part of the default route the panel cares about.
type Route struct {
	// LinkIndex is the egress interface index
	LinkIndex int
	// LinkName is the egress interface name (e.g. "usb0")
	LinkName string
	// Gateway is the next hop, nil when the route has none
	Gateway net.IP
}

// HasGateway reports whether the route carries a gateway address.
func (r *Route) HasGateway() bool {
	return r != nil && len(r.Gateway) > 0
}

// String returns "<ifname>/<gateway>", or just the interface name when
// the route has no gateway.
func (r *Route) String() string {
	if r == nil {
		return ""
	}
	name := r.LinkName
	if name == "" {
		name = fmt.Sprintf("if%d", r.LinkIndex)
	}
	if !r.HasGateway() {
		return name
	}
	return name + "/" + r.Gateway.String()
}

// Link is a network interface as seen by the routing table.
type Link struct {
	Name  string
	Index int
}

// Store is the routing table the switcher operates on.
type Store interface {
	// DefaultRoute returns the current default route, or nil if there is none.
	DefaultRoute() (*Route, error)

	// LinkByName resolves an interface name. It returns an error wrapping
	// ErrLinkNotFound when no such link exists.
	LinkByName(name string) (*Link, error)

	// SetDefaultEgress points the default route described by current at
	// linkIndex, keeping its gateway. The change is applied atomically or
	// not at all.
	SetDefaultEgress(current Route, linkIndex int) error
}

// Outcome is the non-error result of a switch request.
type Outcome int

const (
	// Switched means the default route now uses the requested link.
	Switched Outcome = iota
	// AlreadySelected means the default route already used the requested link.
	AlreadySelected
	// NoDefaultRoute means there was no default route to rebind.
	NoDefaultRoute
	// UnknownInterface means the requested link does not exist.
	UnknownInterface
)

// String returns a human-readable name for the outcome
func (o Outcome) String() string {
	switch o {
	case Switched:
		return "switched"
	case AlreadySelected:
		return "already_selected"
	case NoDefaultRoute:
		return "no_default_route"
	case UnknownInterface:
		return "unknown_interface"
	default:
		return fmt.Sprintf("Outcome(%d)", o)
	}
}

// Mutated reports whether the outcome changed the routing table.
func (o Outcome) Mutated() bool {
	return o == Switched
}
