package models

import (
	"net"
	"time"
)

// TransportMode selects how the magic packet leaves the host.
type TransportMode string

const (
	// ModeRaw sends an Ethernet frame with EtherType 0x0842.
	ModeRaw TransportMode = "raw"
	// ModeUDP sends the magic packet as a UDP broadcast datagram.
	ModeUDP TransportMode = "udp"
)

// Steps of a wake run, reported in WakeResult.FailedStep.
const (
	StepParse    = "parse"
	StepResolve  = "resolve"
	StepPassword = "password"
	StepBuild    = "build"
	StepOpen     = "open"
	StepSend     = "send"
)

// WakeRequest holds the inputs of a single wake run.
type WakeRequest struct {
	Target        string // MAC address of the host to wake
	Interface     string // empty selects the default interface
	Password      string // optional SecureOn password
	Mode          TransportMode
	BroadcastAddr string // UDP mode only, host[:port]
	DryRun        bool   // build the frame but do not send it
}

// WakeResult holds the outcome of a wake run.
type WakeResult struct {
	Target     net.HardwareAddr
	Interface  string
	Source     net.HardwareAddr
	Broadcast  string // UDP destination with --udp
	FrameLen   int    // bytes handed to the link: the Ethernet frame, or the UDP payload with --udp
	Frame      []byte // set on dry runs
	PacketSent bool
	FailedStep string
	Duration   time.Duration
	Error      error
}
