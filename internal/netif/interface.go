// Package netif enumerates network interfaces and selects the one a magic
// packet is sent from.
package netif

import (
	"net"
	"strings"
)

// LinkType is the link-layer encapsulation of an interface.
type LinkType string

// Link types as reported by the platform.
const (
	LinkEthernet LinkType = "ether"
	LinkLoopback LinkType = "loopback"
	LinkNone     LinkType = "none"
	LinkUnknown  LinkType = ""
)

// Interface is a platform network interface.
type Interface struct {
	Index        int
	Name         string
	HardwareAddr net.HardwareAddr // nil when the link has none
	IPs          []net.IP
	MTU          int
	Up           bool
	Loopback     bool
	LinkType     LinkType
}

// HasIP reports whether at least one IP address is bound to the interface.
func (i Interface) HasIP() bool {
	return len(i.IPs) > 0
}

// IsDefaultCandidate reports whether the interface may be picked when no
// interface name was given.
func (i Interface) IsDefaultCandidate() bool {
	return i.Up && !i.Loopback && i.HasIP()
}

// NetInterface converts i for use with packages built on net.Interface.
func (i Interface) NetInterface() *net.Interface {
	var flags net.Flags
	if i.Up {
		flags |= net.FlagUp
	}
	if i.Loopback {
		flags |= net.FlagLoopback
	}
	return &net.Interface{
		Index:        i.Index,
		MTU:          i.MTU,
		Name:         i.Name,
		HardwareAddr: i.HardwareAddr,
		Flags:        flags,
	}
}

// Flags renders the up/loopback state like "up,loopback".
func (i Interface) Flags() string {
	var flags []string
	if i.Up {
		flags = append(flags, "up")
	} else {
		flags = append(flags, "down")
	}
	if i.Loopback {
		flags = append(flags, "loopback")
	}
	return strings.Join(flags, ",")
}

// Lister enumerates the platform's network interfaces in kernel order.
type Lister interface {
	Interfaces() ([]Interface, error)
}
