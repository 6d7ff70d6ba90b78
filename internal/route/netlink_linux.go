//go:build linux

package route

import (
	"errors"
	"fmt"
	"net"

	"github.com/vishvananda/netlink"
)

// NetlinkStore reads and edits the kernel's main IPv4 routing table.
type NetlinkStore struct {
	family int
}

// NewNetlinkStore creates a store for the IPv4 main table.
func NewNetlinkStore() *NetlinkStore {
	return &NetlinkStore{family: netlink.FAMILY_V4}
}

// DefaultRoute implements Store.
func (s *NetlinkStore) DefaultRoute() (*Route, error) {
	nr, err := s.defaultRoute()
	if err != nil || nr == nil {
		return nil, err
	}

	r := &Route{LinkIndex: nr.LinkIndex, Gateway: nr.Gw}
	link, err := netlink.LinkByIndex(nr.LinkIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve link %d: %w", nr.LinkIndex, err)
	}
	r.LinkName = link.Attrs().Name
	return r, nil
}

// LinkByName implements Store.
func (s *NetlinkStore) LinkByName(name string) (*Link, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		var notFound netlink.LinkNotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%s: %w", name, ErrLinkNotFound)
		}
		return nil, err
	}
	attrs := link.Attrs()
	return &Link{Name: attrs.Name, Index: attrs.Index}, nil
}

// SetDefaultEgress implements Store. The kernel applies a route replace as a
// single operation, so the table never shows a half-moved route.
func (s *NetlinkStore) SetDefaultEgress(current Route, linkIndex int) error {
	nr, err := s.defaultRoute()
	if err != nil {
		return err
	}
	if nr == nil || nr.LinkIndex != current.LinkIndex {
		return fmt.Errorf("default route changed since it was read")
	}

	next := *nr
	next.LinkIndex = linkIndex
	next.ILinkIndex = 0
	next.MultiPath = nil
	if err := netlink.RouteReplace(&next); err != nil {
		return fmt.Errorf("route replace: %w", err)
	}
	return nil
}

// defaultRoute returns the lowest-metric default route in the main table.
func (s *NetlinkStore) defaultRoute() (*netlink.Route, error) {
	routes, err := netlink.RouteList(nil, s.family)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}

	var best *netlink.Route
	for i := range routes {
		r := &routes[i]
		if !isDefault(r.Dst) {
			continue
		}
		if best == nil || r.Priority < best.Priority {
			best = r
		}
	}
	return best, nil
}

func isDefault(dst *net.IPNet) bool {
	if dst == nil {
		return true
	}
	ones, _ := dst.Mask.Size()
	return ones == 0 && dst.IP.IsUnspecified()
}
