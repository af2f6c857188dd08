// Package transport puts built Wake-on-LAN frames on the wire.
package transport

import (
	"errors"

	"github.com/fgeck/gowol/internal/netif"
)

// Errors returned when opening a channel or sending on it.
var (
	ErrChannelOpen            = errors.New("failed to open datalink channel")
	ErrUnsupportedChannelType = errors.New("unsupported channel type")
	ErrSend                   = errors.New("failed to send packet")
)

// Channel is a send-capable link-layer channel bound to one interface.
type Channel interface {
	// LinkType reports the framing of the underlying link.
	LinkType() netif.LinkType
	// Send transmits one complete Ethernet frame.
	Send(frame []byte) error
	Close() error
}

// Opener opens channels on interfaces.
type Opener interface {
	Open(ifi netif.Interface) (Channel, error)
}
