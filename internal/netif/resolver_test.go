package netif

import (
	"errors"
	"io"
	"net"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLister struct {
	interfacesFunc func() ([]Interface, error)
}

func (m *mockLister) Interfaces() ([]Interface, error) {
	if m.interfacesFunc != nil {
		return m.interfacesFunc()
	}
	return nil, nil
}

func staticLister(ifaces ...Interface) *mockLister {
	return &mockLister{
		interfacesFunc: func() ([]Interface, error) { return ifaces, nil },
	}
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func mustMAC(t *testing.T, s string) net.HardwareAddr {
	t.Helper()
	mac, err := net.ParseMAC(s)
	require.NoError(t, err)
	return mac
}

func loopback() Interface {
	return Interface{
		Index:    1,
		Name:     "lo",
		IPs:      []net.IP{net.ParseIP("127.0.0.1")},
		Up:       true,
		Loopback: true,
		LinkType: LinkLoopback,
	}
}

func etherIface(t *testing.T, index int, name, mac string, up bool, ips ...string) Interface {
	t.Helper()
	i := Interface{
		Index:        index,
		Name:         name,
		HardwareAddr: mustMAC(t, mac),
		Up:           up,
		LinkType:     LinkEthernet,
	}
	for _, ip := range ips {
		i.IPs = append(i.IPs, net.ParseIP(ip))
	}
	return i
}

func TestResolve_ByName(t *testing.T) {
	lister := staticLister(
		loopback(),
		etherIface(t, 2, "eth0", "11:22:33:44:55:66", true, "192.168.1.10"),
		etherIface(t, 3, "eth1", "11:22:33:44:55:77", true, "10.0.0.10"),
	)

	ifi, err := NewResolver(testLogger(), lister).Resolve("eth1")

	require.NoError(t, err)
	assert.Equal(t, "eth1", ifi.Name)
	assert.Equal(t, mustMAC(t, "11:22:33:44:55:77"), ifi.HardwareAddr)
}

func TestResolve_ByNameIgnoresState(t *testing.T) {
	lister := staticLister(etherIface(t, 2, "eth0", "11:22:33:44:55:66", false))

	ifi, err := NewResolver(testLogger(), lister).Resolve("eth0")

	require.NoError(t, err)
	assert.Equal(t, "eth0", ifi.Name)
}

func TestResolve_ByNameIsCaseSensitive(t *testing.T) {
	lister := staticLister(etherIface(t, 2, "eth0", "11:22:33:44:55:66", true, "192.168.1.10"))

	_, err := NewResolver(testLogger(), lister).Resolve("ETH0")

	assert.ErrorIs(t, err, ErrInterfaceNotFound)
}

func TestResolve_UnknownNameDoesNotFallBack(t *testing.T) {
	lister := staticLister(
		loopback(),
		etherIface(t, 2, "eth0", "11:22:33:44:55:66", true, "192.168.1.10"),
	)

	ifi, err := NewResolver(testLogger(), lister).Resolve("wlan0")

	assert.ErrorIs(t, err, ErrInterfaceNotFound)
	assert.Contains(t, err.Error(), "wlan0")
	assert.Empty(t, ifi.Name)
}

func TestResolve_DefaultPicksFirstQualifying(t *testing.T) {
	lister := staticLister(
		loopback(),
		etherIface(t, 2, "eth0", "11:22:33:44:55:00", false, "192.168.1.10"),
		etherIface(t, 3, "eth1", "11:22:33:44:55:01", true),
		etherIface(t, 4, "eth2", "11:22:33:44:55:66", true, "192.168.1.11"),
		etherIface(t, 5, "eth3", "11:22:33:44:55:77", true, "192.168.1.12"),
	)

	ifi, err := NewResolver(testLogger(), lister).Resolve("")

	require.NoError(t, err)
	assert.Equal(t, "eth2", ifi.Name)
}

func TestResolve_NoDefaultInterface(t *testing.T) {
	tests := []struct {
		name   string
		ifaces []Interface
	}{
		{name: "no interfaces"},
		{name: "only loopback", ifaces: []Interface{loopback()}},
		{name: "down", ifaces: []Interface{etherIface(t, 2, "eth0", "11:22:33:44:55:66", false, "192.168.1.10")}},
		{name: "no ip", ifaces: []Interface{etherIface(t, 2, "eth0", "11:22:33:44:55:66", true)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResolver(testLogger(), staticLister(tt.ifaces...)).Resolve("")
			assert.ErrorIs(t, err, ErrNoDefaultInterface)
		})
	}
}

func TestResolve_MissingHardwareAddress(t *testing.T) {
	tun := Interface{
		Index:    7,
		Name:     "tun0",
		IPs:      []net.IP{net.ParseIP("10.8.0.2")},
		Up:       true,
		LinkType: LinkNone,
	}

	_, err := NewResolver(testLogger(), staticLister(tun)).Resolve("")
	assert.ErrorIs(t, err, ErrMissingInterfaceMAC)

	_, err = NewResolver(testLogger(), staticLister(tun)).Resolve("tun0")
	assert.ErrorIs(t, err, ErrMissingInterfaceMAC)
}

func TestResolve_EnumerationError(t *testing.T) {
	lister := &mockLister{
		interfacesFunc: func() ([]Interface, error) {
			return nil, errors.New("netlink socket closed")
		},
	}

	_, err := NewResolver(testLogger(), lister).Resolve("eth0")

	assert.ErrorIs(t, err, ErrEnumerate)
	assert.Contains(t, err.Error(), "netlink socket closed")
}

func TestCandidates_MarksFirstDefaultOnly(t *testing.T) {
	lister := staticLister(
		loopback(),
		etherIface(t, 2, "eth0", "11:22:33:44:55:66", true, "192.168.1.10"),
		etherIface(t, 3, "eth1", "11:22:33:44:55:77", true, "10.0.0.10"),
	)

	candidates, err := NewResolver(testLogger(), lister).Candidates()

	require.NoError(t, err)
	require.Len(t, candidates, 3)
	assert.False(t, candidates[0].Default)
	assert.True(t, candidates[1].Default)
	assert.False(t, candidates[2].Default)
}

func TestInterface_NetInterface(t *testing.T) {
	ifi := etherIface(t, 4, "eth0", "11:22:33:44:55:66", true, "192.168.1.10")
	ifi.MTU = 1500

	n := ifi.NetInterface()

	assert.Equal(t, 4, n.Index)
	assert.Equal(t, "eth0", n.Name)
	assert.Equal(t, 1500, n.MTU)
	assert.Equal(t, ifi.HardwareAddr, n.HardwareAddr)
	assert.NotZero(t, n.Flags&net.FlagUp)
	assert.Zero(t, n.Flags&net.FlagLoopback)
}

func TestInterface_Flags(t *testing.T) {
	assert.Equal(t, "up,loopback", loopback().Flags())
	assert.Equal(t, "down", etherIface(t, 2, "eth0", "11:22:33:44:55:66", false).Flags())
}
