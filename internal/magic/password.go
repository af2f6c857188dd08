package magic

import (
	"fmt"
	"net"
)

// PasswordKind identifies how a SecureOn password was supplied.
type PasswordKind int

const (
	// PasswordFourByte is an IPv4 address reinterpreted as 4 raw bytes.
	PasswordFourByte PasswordKind = iota + 1
	// PasswordSixByte is a MAC-shaped address reinterpreted as 6 raw bytes.
	PasswordSixByte
	// PasswordASCII is an ASCII string placed verbatim in the 6-byte field.
	PasswordASCII
)

// String returns the kind name.
func (k PasswordKind) String() string {
	switch k {
	case PasswordFourByte:
		return "four-byte"
	case PasswordSixByte:
		return "six-byte"
	case PasswordASCII:
		return "ascii"
	default:
		return fmt.Sprintf("PasswordKind(%d)", int(k))
	}
}

// Password is an optional SecureOn password appended to a magic packet.
type Password struct {
	kind PasswordKind
	raw  []byte
}

// NewFourBytePassword returns a short SecureOn password from an IPv4 address.
func NewFourBytePassword(ip net.IP) (Password, error) {
	ip4 := ip.To4()
	if ip4 == nil {
		return Password{}, fmt.Errorf("password %q is not an IPv4 address", ip)
	}
	return Password{kind: PasswordFourByte, raw: append([]byte(nil), ip4...)}, nil
}

// NewSixBytePassword returns a long SecureOn password from a 6-byte address.
func NewSixBytePassword(mac net.HardwareAddr) (Password, error) {
	if len(mac) != MACLen {
		return Password{}, fmt.Errorf("password %q is not a 6-byte address", mac)
	}
	return Password{kind: PasswordSixByte, raw: append([]byte(nil), mac...)}, nil
}

// NewASCIIPassword returns a password taken verbatim from s. It is validated
// when the packet is built.
func NewASCIIPassword(s string) Password {
	return Password{kind: PasswordASCII, raw: []byte(s)}
}

// ParsePassword classifies s as IPv4 notation, MAC notation or an ASCII
// string, in that order.
func ParsePassword(s string) Password {
	if ip := net.ParseIP(s); ip != nil {
		if p, err := NewFourBytePassword(ip); err == nil {
			return p
		}
	}
	if mac, err := net.ParseMAC(s); err == nil {
		if p, err := NewSixBytePassword(mac); err == nil {
			return p
		}
	}
	return NewASCIIPassword(s)
}

// Kind reports how the password was supplied.
func (p Password) Kind() PasswordKind {
	return p.kind
}

// Bytes validates the password and returns the raw bytes to append to the
// magic packet. The result is always 4 or 6 bytes long.
func (p Password) Bytes() ([]byte, error) {
	switch p.kind {
	case PasswordFourByte:
		if len(p.raw) != 4 {
			return nil, fmt.Errorf("four-byte password has %d bytes", len(p.raw))
		}
	case PasswordSixByte:
		if len(p.raw) != PasswordLen {
			return nil, fmt.Errorf("six-byte password has %d bytes", len(p.raw))
		}
	case PasswordASCII:
		if err := validateASCII(p.raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown password kind %d", int(p.kind))
	}
	return append([]byte(nil), p.raw...), nil
}

// String masks the password value.
func (p Password) String() string {
	return fmt.Sprintf("%s password (%d bytes)", p.kind, len(p.raw))
}

func validateASCII(b []byte) error {
	for i, c := range b {
		if c >= 0x80 {
			return fmt.Errorf("%w: byte 0x%02x at offset %d", ErrPasswordNotASCII, c, i)
		}
	}
	if len(b) > PasswordLen {
		return fmt.Errorf("%w: %d bytes, at most %d allowed", ErrPasswordTooLong, len(b), PasswordLen)
	}
	if len(b) < PasswordLen {
		return fmt.Errorf("%w: %d bytes, exactly %d required", ErrPasswordTooShort, len(b), PasswordLen)
	}
	return nil
}
