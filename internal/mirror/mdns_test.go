package mirror

import (
	"net"
	"testing"

	"github.com/grandcat/zeroconf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServiceEntry(t *testing.T) {
	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantIP   string
		wantPort int
		wantMeta map[string]string
	}{
		{
			name: "IPv4 mirror",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "pi-zero"},
				HostName:      "pi-zero.local.",
				Port:          8420,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.42.1")},
				Text:          []string{"version=dev", "rotation=180"},
			},
			wantIP:   "192.168.42.1",
			wantPort: 8420,
			wantMeta: map[string]string{"version": "dev", "rotation": "180"},
		},
		{
			name: "IPv6 only",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "panel"},
				HostName:      "panel.local.",
				Port:          8420,
				AddrIPv6:      []net.IP{net.ParseIP("fe80::1")},
			},
			wantIP:   "fe80::1",
			wantPort: 8420,
			wantMeta: map[string]string{},
		},
		{
			name: "text without value",
			entry: &zeroconf.ServiceEntry{
				HostName: "panel.local.",
				Port:     80,
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.5")},
				Text:     []string{"flag"},
			},
			wantIP:   "10.0.0.5",
			wantPort: 80,
			wantMeta: map[string]string{"flag": ""},
		},
		{
			name: "no address",
			entry: &zeroconf.ServiceEntry{
				HostName: "panel.local.",
				Port:     8420,
			},
			wantNil: true,
		},
		{
			name: "no port",
			entry: &zeroconf.ServiceEntry{
				HostName: "panel.local.",
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.5")},
			},
			wantNil: true,
		},
		{
			name:    "nil entry",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			peer := parseServiceEntry(tt.entry)
			if tt.wantNil {
				assert.Nil(t, peer)
				return
			}
			require.NotNil(t, peer)
			assert.Equal(t, tt.wantIP, peer.IP)
			assert.Equal(t, tt.wantPort, peer.Port)
			assert.Equal(t, tt.wantMeta, peer.Metadata)
		})
	}
}

func TestPeerFormatting(t *testing.T) {
	p := &Peer{Instance: "pi-zero", Hostname: "pi-zero.local.", IP: "192.168.42.1", Port: 8420}

	assert.Equal(t, "pi-zero (pi-zero.local.) at 192.168.42.1:8420", p.String())
	assert.Equal(t, "ws://192.168.42.1:8420/ws", p.URL())
}

func TestNewScanner(t *testing.T) {
	assert.Equal(t, DefaultScanTimeout, NewScanner().Timeout)
}
