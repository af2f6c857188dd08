package netif

import (
	"fmt"
	"net"
)

// NetLister enumerates interfaces through the net package.
type NetLister struct{}

// Interfaces implements Lister.
func (NetLister) Interfaces() ([]Interface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to list interfaces: %w", err)
	}

	out := make([]Interface, 0, len(ifaces))
	for _, ifi := range ifaces {
		addrs, err := ifi.Addrs()
		if err != nil {
			return nil, fmt.Errorf("failed to fetch addresses for interface '%s': %w", ifi.Name, err)
		}
		out = append(out, fromNet(ifi, addrs))
	}
	return out, nil
}

func fromNet(ifi net.Interface, addrs []net.Addr) Interface {
	i := Interface{
		Index:    ifi.Index,
		Name:     ifi.Name,
		MTU:      ifi.MTU,
		Up:       ifi.Flags&net.FlagUp != 0,
		Loopback: ifi.Flags&net.FlagLoopback != 0,
	}
	if len(ifi.HardwareAddr) > 0 {
		i.HardwareAddr = ifi.HardwareAddr
	}

	for _, addr := range addrs {
		switch v := addr.(type) {
		case *net.IPNet:
			i.IPs = append(i.IPs, v.IP)
		case *net.IPAddr:
			i.IPs = append(i.IPs, v.IP)
		}
	}

	// net.Interface carries no encapsulation, so infer it from the address.
	switch {
	case i.Loopback:
		i.LinkType = LinkLoopback
	case len(i.HardwareAddr) == 6:
		i.LinkType = LinkEthernet
	case len(i.HardwareAddr) == 0:
		i.LinkType = LinkNone
	default:
		i.LinkType = LinkUnknown
	}
	return i
}
