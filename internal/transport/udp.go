package transport

import (
	"fmt"
	"net"

	"github.com/mdlayher/wol"
)

const (
	// DefaultBroadcastAddr is where UDP magic packets go when no address is given.
	DefaultBroadcastAddr = "255.255.255.255"
	// DefaultUDPPort is the discard port conventionally used for Wake-on-LAN.
	DefaultUDPPort = "9"
)

// WakeClient wraps the wol library for mocking.
type WakeClient interface {
	WakePassword(addr string, target net.HardwareAddr, password []byte) error
	Close() error
}

// UDPSender sends magic packets as UDP broadcast datagrams.
type UDPSender struct {
	newClient func() (WakeClient, error)
}

// NewUDPSender creates a sender backed by mdlayher/wol.
func NewUDPSender() *UDPSender {
	return &UDPSender{
		newClient: func() (WakeClient, error) {
			c, err := wol.NewClient()
			if err != nil {
				return nil, err
			}
			return c, nil
		},
	}
}

// NewUDPSenderWithClient creates a sender with a custom client factory (for testing).
func NewUDPSenderWithClient(newClient func() (WakeClient, error)) *UDPSender {
	return &UDPSender{newClient: newClient}
}

// Send transmits one magic packet for target to addr. addr may omit the port.
func (s *UDPSender) Send(addr string, target net.HardwareAddr, password []byte) error {
	dst, err := UDPAddress(addr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrChannelOpen, err)
	}

	client, err := s.newClient()
	if err != nil {
		return fmt.Errorf("%w: failed to create WOL client: %w", ErrChannelOpen, err)
	}
	defer func() { _ = client.Close() }()

	if err := client.WakePassword(dst, target, password); err != nil {
		return fmt.Errorf("%w: %w", ErrSend, err)
	}
	return nil
}

// UDPAddress normalizes addr to host:port, defaulting the host to the limited
// broadcast address and the port to 9.
func UDPAddress(addr string) (string, error) {
	if addr == "" {
		return net.JoinHostPort(DefaultBroadcastAddr, DefaultUDPPort), nil
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		host, port = addr, DefaultUDPPort
	}
	if ip := net.ParseIP(host); ip == nil {
		return "", fmt.Errorf("invalid broadcast IP: %s", host)
	}
	return net.JoinHostPort(host, port), nil
}
