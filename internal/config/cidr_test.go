package config

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPToUint(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		ip       net.IP
		expected uint64
	}{
		{name: "4-byte IPv4", ip: net.IP{192, 168, 1, 1}, expected: 3232235777},
		{name: "16-byte IPv4-mapped", ip: net.ParseIP("192.168.1.1"), expected: 3232235777},
		{name: "pure IPv6 returns 0", ip: net.ParseIP("2001:db8::1"), expected: 0},
		{name: "all ones", ip: net.IP{255, 255, 255, 255}, expected: 4294967295},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ipToUint(tt.ip))
		})
	}
}

func TestUintToIPRoundTrip(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "10.0.0.10", uintToIP(ipToUint(net.ParseIP("10.0.0.10"))).String())
}

func TestCIDRHost(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		prefix  string
		hostnum int
		want    string
		wantErr string
	}{
		{name: "first host", prefix: "10.0.0.0/24", hostnum: 10, want: "10.0.0.10"},
		{name: "negative counts from end", prefix: "10.0.0.0/24", hostnum: -2, want: "10.0.0.254"},
		{name: "crosses octet", prefix: "10.0.0.0/16", hostnum: 300, want: "10.0.1.44"},
		{name: "out of range", prefix: "10.0.0.0/24", hostnum: 256, wantErr: "exceeds max hosts"},
		{name: "ipv6 rejected", prefix: "2001:db8::/64", hostnum: 1, wantErr: "only IPv4"},
		{name: "invalid", prefix: "nope", hostnum: 1, wantErr: "invalid CIDR prefix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := CIDRHost(tt.prefix, tt.hostnum)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCIDRContains(t *testing.T) {
	t.Parallel()

	ok, err := CIDRContains("10.0.0.0/24", "10.0.0.200")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CIDRContains("10.0.0.0/24", "10.0.1.1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = CIDRContains("10.0.0.0/24", "bogus")
	assert.ErrorContains(t, err, "invalid IPv4 address")
}
