// Package magic builds Wake-on-LAN magic packets and the Ethernet frames that
// carry them.
package magic

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"net"

	"github.com/mdlayher/ethernet"
)

// EtherType is the registered EtherType for Wake-on-LAN frames.
const EtherType ethernet.EtherType = 0x0842

const (
	// MACLen is the length of an EUI-48 hardware address.
	MACLen = 6
	// HeaderLen is the length of an untagged Ethernet II header.
	HeaderLen = 2*MACLen + 2
	// SyncStreamLen is the number of 0xFF bytes leading the payload.
	SyncStreamLen = 6
	// TargetRepeat is how often the target address is repeated.
	TargetRepeat = 16
	// BasePayloadLen is the payload length without a password (102 bytes).
	BasePayloadLen = SyncStreamLen + TargetRepeat*MACLen
	// PasswordLen is the length of a long SecureOn password.
	PasswordLen = 6
)

// Errors returned while validating, building or parsing packets.
var (
	ErrInvalidMAC       = errors.New("invalid MAC address")
	ErrPasswordTooLong  = errors.New("password too long")
	ErrPasswordTooShort = errors.New("password too short")
	ErrPasswordNotASCII = errors.New("password is not ASCII")
	ErrFrameTooSmall    = errors.New("frame buffer too small")
	ErrInvalidPacket    = errors.New("invalid magic packet")
)

var syncStream = bytes.Repeat([]byte{0xff}, SyncStreamLen)

// MagicPacket is a magic packet addressed to Target and sent from Source.
// The Ethernet destination is the target itself.
type MagicPacket struct {
	Target   net.HardwareAddr
	Source   net.HardwareAddr
	Password []byte // empty, 4 or 6 bytes
}

// New validates its inputs and returns a packet ready to be marshaled.
// pw may be nil.
func New(target, source net.HardwareAddr, pw *Password) (*MagicPacket, error) {
	if len(target) != MACLen {
		return nil, fmt.Errorf("%w: target %q has %d bytes", ErrInvalidMAC, target, len(target))
	}
	if len(source) != MACLen {
		return nil, fmt.Errorf("%w: source %q has %d bytes", ErrInvalidMAC, source, len(source))
	}

	p := &MagicPacket{
		Target: append(net.HardwareAddr(nil), target...),
		Source: append(net.HardwareAddr(nil), source...),
	}
	if pw != nil {
		b, err := pw.Bytes()
		if err != nil {
			return nil, err
		}
		p.Password = b
	}
	return p, nil
}

// PayloadLen returns 102, 106 or 108 depending on the password.
func (p *MagicPacket) PayloadLen() int {
	return BasePayloadLen + len(p.Password)
}

// Len returns the full frame length including the Ethernet header.
func (p *MagicPacket) Len() int {
	return HeaderLen + p.PayloadLen()
}

// Payload returns the sync stream, the repeated target and the password.
func (p *MagicPacket) Payload() []byte {
	b := make([]byte, p.PayloadLen())
	p.putPayload(b)
	return b
}

// Frame returns the Ethernet frame view of the packet.
func (p *MagicPacket) Frame() *ethernet.Frame {
	return &ethernet.Frame{
		Destination: p.Target,
		Source:      p.Source,
		EtherType:   EtherType,
		Payload:     p.Payload(),
	}
}

// MarshalBinary allocates and returns the frame bytes.
func (p *MagicPacket) MarshalBinary() ([]byte, error) {
	return p.Frame().MarshalBinary()
}

// MarshalTo writes the frame into b and returns the number of bytes written.
func (p *MagicPacket) MarshalTo(b []byte) (int, error) {
	n := p.Len()
	if len(b) < n {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrFrameTooSmall, n, len(b))
	}

	copy(b[0:MACLen], p.Target)
	copy(b[MACLen:2*MACLen], p.Source)
	binary.BigEndian.PutUint16(b[2*MACLen:HeaderLen], uint16(EtherType))
	p.putPayload(b[HeaderLen:n])

	return n, nil
}

func (p *MagicPacket) putPayload(b []byte) {
	copy(b, syncStream)
	for i := 0; i < TargetRepeat; i++ {
		copy(b[SyncStreamLen+i*MACLen:], p.Target)
	}
	copy(b[BasePayloadLen:], p.Password)
}

// ParseFrame decodes a Wake-on-LAN Ethernet frame.
func ParseFrame(b []byte) (*MagicPacket, error) {
	var f ethernet.Frame
	if err := f.UnmarshalBinary(b); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPacket, err)
	}
	if f.EtherType != EtherType {
		return nil, fmt.Errorf("%w: EtherType %#04x", ErrInvalidPacket, uint16(f.EtherType))
	}

	target, password, err := parsePayload(f.Payload)
	if err != nil {
		return nil, err
	}

	return &MagicPacket{
		Target:   target,
		Source:   append(net.HardwareAddr(nil), f.Source...),
		Password: password,
	}, nil
}

func parsePayload(b []byte) (net.HardwareAddr, []byte, error) {
	switch len(b) {
	case BasePayloadLen, BasePayloadLen + 4, BasePayloadLen + PasswordLen:
	default:
		return nil, nil, fmt.Errorf("%w: payload has %d bytes", ErrInvalidPacket, len(b))
	}

	if !bytes.Equal(b[:SyncStreamLen], syncStream) {
		return nil, nil, fmt.Errorf("%w: missing sync stream", ErrInvalidPacket)
	}

	target := b[SyncStreamLen : SyncStreamLen+MACLen]
	for i := 1; i < TargetRepeat; i++ {
		off := SyncStreamLen + i*MACLen
		if !bytes.Equal(b[off:off+MACLen], target) {
			return nil, nil, fmt.Errorf("%w: target copy %d differs", ErrInvalidPacket, i)
		}
	}

	var password []byte
	if len(b) > BasePayloadLen {
		password = append([]byte(nil), b[BasePayloadLen:]...)
	}
	return append(net.HardwareAddr(nil), target...), password, nil
}
