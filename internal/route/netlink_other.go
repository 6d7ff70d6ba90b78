//go:build !linux

package route

import (
	"errors"
	"runtime"
)

var errUnsupported = errors.New("netlink routing is only available on linux (running on " + runtime.GOOS + ")")

// NetlinkStore is unavailable outside Linux; every call fails.
type NetlinkStore struct{}

// NewNetlinkStore returns a store that reports the platform as unsupported.
func NewNetlinkStore() *NetlinkStore {
	return &NetlinkStore{}
}

// DefaultRoute implements Store.
func (s *NetlinkStore) DefaultRoute() (*Route, error) {
	return nil, errUnsupported
}

// LinkByName implements Store.
func (s *NetlinkStore) LinkByName(name string) (*Link, error) {
	return nil, errUnsupported
}

// SetDefaultEgress implements Store.
func (s *NetlinkStore) SetDefaultEgress(current Route, linkIndex int) error {
	return errUnsupported
}
