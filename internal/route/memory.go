package route

import (
	"fmt"
	"net"
)

// MemoryStore is an in-process routing table. It backs the simulator and
// tests; commits are applied to a copy and swapped in only on success.
type MemoryStore struct {
	links map[string]int
	route *Route

	// QueryErr, when set, is returned by every read.
	QueryErr error
	// CommitErr, when set, rejects every commit.
	CommitErr error
}

// NewMemoryStore creates a store with the given links and no default route.
func NewMemoryStore(links ...Link) *MemoryStore {
	m := &MemoryStore{links: make(map[string]int)}
	for _, l := range links {
		m.AddLink(l)
	}
	return m
}

// AddLink registers a link.
func (m *MemoryStore) AddLink(l Link) {
	m.links[l.Name] = l.Index
}

// SetDefault installs a default route through the named link. An empty
// gateway string leaves the route without a gateway.
func (m *MemoryStore) SetDefault(linkName, gateway string) error {
	index, ok := m.links[linkName]
	if !ok {
		return fmt.Errorf("%s: %w", linkName, ErrLinkNotFound)
	}
	r := &Route{LinkIndex: index, LinkName: linkName}
	if gateway != "" {
		gw := net.ParseIP(gateway)
		if gw == nil {
			return fmt.Errorf("invalid gateway address %q", gateway)
		}
		r.Gateway = gw
	}
	m.route = r
	return nil
}

// ClearDefault removes the default route.
func (m *MemoryStore) ClearDefault() {
	m.route = nil
}

// DefaultRoute implements Store.
func (m *MemoryStore) DefaultRoute() (*Route, error) {
	if m.QueryErr != nil {
		return nil, m.QueryErr
	}
	if m.route == nil {
		return nil, nil
	}
	return m.route.clone(), nil
}

// LinkByName implements Store.
func (m *MemoryStore) LinkByName(name string) (*Link, error) {
	if m.QueryErr != nil {
		return nil, m.QueryErr
	}
	index, ok := m.links[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrLinkNotFound)
	}
	return &Link{Name: name, Index: index}, nil
}

// SetDefaultEgress implements Store.
func (m *MemoryStore) SetDefaultEgress(current Route, linkIndex int) error {
	if m.CommitErr != nil {
		return m.CommitErr
	}
	if m.route == nil || m.route.LinkIndex != current.LinkIndex {
		return fmt.Errorf("default route changed since it was read")
	}

	name := m.nameOf(linkIndex)
	if name == "" {
		return fmt.Errorf("no link with index %d", linkIndex)
	}

	next := m.route.clone()
	next.LinkIndex = linkIndex
	next.LinkName = name
	m.route = next
	return nil
}

func (m *MemoryStore) nameOf(index int) string {
	for name, i := range m.links {
		if i == index {
			return name
		}
	}
	return ""
}

func (r *Route) clone() *Route {
	c := *r
	if r.Gateway != nil {
		c.Gateway = append(net.IP(nil), r.Gateway...)
	}
	return &c
}
