package transport

import (
	"fmt"
	"net"

	"github.com/fgeck/gowol/internal/magic"
	"github.com/fgeck/gowol/internal/netif"
	"github.com/mdlayher/packet"
)

// packetConn is the subset of *packet.Conn used for sending.
type packetConn interface {
	WriteTo(b []byte, addr net.Addr) (int, error)
	Close() error
}

// RawOpener opens AF_PACKET sockets through mdlayher/packet.
type RawOpener struct{}

// Open binds a raw socket for the Wake-on-LAN EtherType to ifi.
func (RawOpener) Open(ifi netif.Interface) (Channel, error) {
	conn, err := packet.Listen(ifi.NetInterface(), packet.Raw, int(magic.EtherType), nil)
	if err != nil {
		return nil, fmt.Errorf("%w on %s%s: %w", ErrChannelOpen, ifi.Name, permissionHint(err), err)
	}
	return newRawChannel(conn, ifi.LinkType), nil
}

type rawChannel struct {
	conn     packetConn
	linkType netif.LinkType
}

func newRawChannel(conn packetConn, linkType netif.LinkType) *rawChannel {
	return &rawChannel{conn: conn, linkType: linkType}
}

func (c *rawChannel) LinkType() netif.LinkType {
	return c.linkType
}

// Send writes frame as-is; the destination is taken from its header.
func (c *rawChannel) Send(frame []byte) error {
	if len(frame) < magic.HeaderLen {
		return fmt.Errorf("%w: frame of %d bytes has no Ethernet header", ErrSend, len(frame))
	}

	dst := net.HardwareAddr(frame[:magic.MACLen])
	n, err := c.conn.WriteTo(frame, &packet.Addr{HardwareAddr: dst})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSend, err)
	}
	if n != len(frame) {
		return fmt.Errorf("%w: invalid number of bytes written %d of %d", ErrSend, n, len(frame))
	}
	return nil
}

func (c *rawChannel) Close() error {
	return c.conn.Close()
}
