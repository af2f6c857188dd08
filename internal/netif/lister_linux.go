//go:build linux

package netif

import (
	"fmt"
	"net"

	"github.com/vishvananda/netlink"
)

// NetlinkLister enumerates interfaces over rtnetlink, which also reports the
// link encapsulation.
type NetlinkLister struct{}

// DefaultLister returns the lister for the running platform.
func DefaultLister() Lister {
	return NetlinkLister{}
}

// Interfaces implements Lister.
func (NetlinkLister) Interfaces() ([]Interface, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}

	out := make([]Interface, 0, len(links))
	for _, link := range links {
		attrs := link.Attrs()
		addrs, err := netlink.AddrList(link, netlink.FAMILY_ALL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch addresses for interface '%s': %w", attrs.Name, err)
		}
		out = append(out, fromNetlink(attrs, addrs))
	}
	return out, nil
}

func fromNetlink(attrs *netlink.LinkAttrs, addrs []netlink.Addr) Interface {
	i := Interface{
		Index:    attrs.Index,
		Name:     attrs.Name,
		MTU:      attrs.MTU,
		Up:       attrs.Flags&net.FlagUp != 0,
		Loopback: attrs.Flags&net.FlagLoopback != 0,
		LinkType: LinkType(attrs.EncapType),
	}
	if len(attrs.HardwareAddr) > 0 {
		i.HardwareAddr = attrs.HardwareAddr
	}
	for _, addr := range addrs {
		if addr.IPNet != nil {
			i.IPs = append(i.IPs, addr.IP)
		}
	}
	return i
}
