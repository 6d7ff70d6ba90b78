package route

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	store := NewMemoryStore(
		Link{Name: "lo", Index: 1},
		Link{Name: "usb0", Index: 3},
		Link{Name: "usb1", Index: 4},
		Link{Name: "wlan0", Index: 5},
	)
	require.NoError(t, store.SetDefault("usb0", "192.168.42.129"))
	return store
}

func TestSwitcher_SwitchToKnownInterface(t *testing.T) {
	store := newTestStore(t)
	s := NewSwitcher(store)

	outcome, err := s.SwitchTo("usb1")

	require.NoError(t, err)
	assert.Equal(t, Switched, outcome)
	assert.True(t, outcome.Mutated())

	r, err := store.DefaultRoute()
	require.NoError(t, err)
	assert.Equal(t, 4, r.LinkIndex)
	assert.Equal(t, "usb1", r.LinkName)
	assert.True(t, net.ParseIP("192.168.42.129").Equal(r.Gateway), "gateway must be left untouched")
}

func TestSwitcher_SwitchWithoutGateway(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SetDefault("usb0", ""))
	s := NewSwitcher(store)

	outcome, err := s.SwitchTo("wlan0")

	require.NoError(t, err)
	assert.Equal(t, Switched, outcome)
	r, _ := store.DefaultRoute()
	assert.False(t, r.HasGateway())
	assert.Equal(t, "wlan0", r.LinkName)
}

func TestSwitcher_UnknownInterfaceLeavesTable(t *testing.T) {
	store := newTestStore(t)
	before, _ := store.DefaultRoute()
	s := NewSwitcher(store)

	outcome, err := s.SwitchTo("usb7")

	require.NoError(t, err)
	assert.Equal(t, UnknownInterface, outcome)
	assert.False(t, outcome.Mutated())
	after, _ := store.DefaultRoute()
	assert.Equal(t, before, after)
}

func TestSwitcher_NoDefaultRoute(t *testing.T) {
	store := newTestStore(t)
	store.ClearDefault()
	s := NewSwitcher(store)

	outcome, err := s.SwitchTo("usb1")

	require.NoError(t, err)
	assert.Equal(t, NoDefaultRoute, outcome)
	r, _ := store.DefaultRoute()
	assert.Nil(t, r)
}

func TestSwitcher_AlreadySelected(t *testing.T) {
	store := newTestStore(t)
	store.CommitErr = errors.New("must not commit")
	s := NewSwitcher(store)

	outcome, err := s.SwitchTo("usb0")

	require.NoError(t, err)
	assert.Equal(t, AlreadySelected, outcome)
}

func TestSwitcher_CommitFailureIsAtomic(t *testing.T) {
	store := newTestStore(t)
	before, _ := store.DefaultRoute()
	store.CommitErr = errors.New("network is unreachable")
	s := NewSwitcher(store)

	_, err := s.SwitchTo("usb1")

	require.Error(t, err)
	var commitErr *CommitError
	require.True(t, errors.As(err, &commitErr))
	assert.Equal(t, "usb1", commitErr.Interface)
	assert.Equal(t, 4, commitErr.LinkIndex)
	assert.Contains(t, err.Error(), "network is unreachable")

	store.CommitErr = nil
	after, _ := store.DefaultRoute()
	assert.Equal(t, before, after)
}

func TestSwitcher_QueryFailure(t *testing.T) {
	store := newTestStore(t)
	store.QueryErr = errors.New("netlink socket closed")
	s := NewSwitcher(store)

	_, err := s.SwitchTo("usb1")

	var queryErr *QueryError
	require.True(t, errors.As(err, &queryErr))
	assert.Equal(t, "get default route", queryErr.Op)

	_, err = s.Current()
	assert.Error(t, err)
}

func TestSwitcher_LooksUpOnEveryRequest(t *testing.T) {
	store := newTestStore(t)
	s := NewSwitcher(store)

	outcome, err := s.SwitchTo("eth1")
	require.NoError(t, err)
	require.Equal(t, UnknownInterface, outcome)

	store.AddLink(Link{Name: "eth1", Index: 9})

	outcome, err = s.SwitchTo("eth1")
	require.NoError(t, err)
	assert.Equal(t, Switched, outcome)
}

func TestRoute_String(t *testing.T) {
	tests := []struct {
		name     string
		route    *Route
		expected string
	}{
		{
			name:     "with gateway",
			route:    &Route{LinkIndex: 3, LinkName: "usb0", Gateway: net.ParseIP("192.168.42.129")},
			expected: "usb0/192.168.42.129",
		},
		{
			name:     "without gateway",
			route:    &Route{LinkIndex: 4, LinkName: "usb1"},
			expected: "usb1",
		},
		{
			name:     "unnamed link",
			route:    &Route{LinkIndex: 7},
			expected: "if7",
		},
		{
			name:     "nil route",
			route:    nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.route.String())
		})
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "switched", Switched.String())
	assert.Equal(t, "already_selected", AlreadySelected.String())
	assert.Equal(t, "no_default_route", NoDefaultRoute.String())
	assert.Equal(t, "unknown_interface", UnknownInterface.String())
	assert.Equal(t, "Outcome(42)", Outcome(42).String())
}

func TestMemoryStore_SetDefaultValidation(t *testing.T) {
	store := NewMemoryStore(Link{Name: "usb0", Index: 3})

	err := store.SetDefault("usb9", "")
	assert.True(t, errors.Is(err, ErrLinkNotFound))

	err = store.SetDefault("usb0", "not-an-ip")
	assert.Error(t, err)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore(Link{Name: "usb0", Index: 3})
	require.NoError(t, store.SetDefault("usb0", "10.0.0.1"))

	r, _ := store.DefaultRoute()
	r.LinkIndex = 99
	r.Gateway[0] = 192

	again, _ := store.DefaultRoute()
	assert.Equal(t, 3, again.LinkIndex)
	assert.Equal(t, "10.0.0.1", again.Gateway.String())
}
