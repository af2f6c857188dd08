package netif

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Errors returned by the Resolver.
var (
	ErrEnumerate           = errors.New("cannot enumerate interfaces")
	ErrInterfaceNotFound   = errors.New("interface does not exist")
	ErrNoDefaultInterface  = errors.New("no default interface that is up, has an IP address and is not a loopback interface")
	ErrMissingInterfaceMAC = errors.New("interface has no hardware address")
)

// Candidate is an interface annotated with whether it is the one picked when
// no name is given.
type Candidate struct {
	Interface
	Default bool
}

// Resolver picks the interface to transmit on.
type Resolver struct {
	lister Lister
	logger zerolog.Logger
}

// NewResolver creates a resolver backed by lister.
func NewResolver(logger zerolog.Logger, lister Lister) *Resolver {
	return &Resolver{
		lister: lister,
		logger: logger,
	}
}

// Resolve returns the interface named name, or the first interface that is
// up, not a loopback and has an IP address when name is empty. An explicit
// name never falls back to auto-selection.
func (r *Resolver) Resolve(name string) (Interface, error) {
	ifaces, err := r.lister.Interfaces()
	if err != nil {
		return Interface{}, fmt.Errorf("%w: %w", ErrEnumerate, err)
	}

	var (
		selected Interface
		found    bool
	)
	if name != "" {
		selected, found = byName(ifaces, name)
		if !found {
			return Interface{}, fmt.Errorf("%w: '%s'", ErrInterfaceNotFound, name)
		}
	} else {
		selected, found = r.firstDefault(ifaces)
		if !found {
			return Interface{}, ErrNoDefaultInterface
		}
	}

	if len(selected.HardwareAddr) == 0 {
		return Interface{}, fmt.Errorf("%w: '%s'", ErrMissingInterfaceMAC, selected.Name)
	}

	r.logger.Debug().
		Str("interface", selected.Name).
		Str("mac", selected.HardwareAddr.String()).
		Str("link", string(selected.LinkType)).
		Msg("resolved interface")

	return selected, nil
}

// Candidates lists every interface and marks the auto-selected default.
func (r *Resolver) Candidates() ([]Candidate, error) {
	ifaces, err := r.lister.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnumerate, err)
	}

	out := make([]Candidate, len(ifaces))
	marked := false
	for i, ifi := range ifaces {
		out[i] = Candidate{Interface: ifi}
		if !marked && ifi.IsDefaultCandidate() {
			out[i].Default = true
			marked = true
		}
	}
	return out, nil
}

func byName(ifaces []Interface, name string) (Interface, bool) {
	for _, ifi := range ifaces {
		if ifi.Name == name {
			return ifi, true
		}
	}
	return Interface{}, false
}

func (r *Resolver) firstDefault(ifaces []Interface) (Interface, bool) {
	for _, ifi := range ifaces {
		if ifi.IsDefaultCandidate() {
			return ifi, true
		}
		r.logger.Debug().
			Str("interface", ifi.Name).
			Bool("up", ifi.Up).
			Bool("loopback", ifi.Loopback).
			Int("ips", len(ifi.IPs)).
			Msg("skipping interface")
	}
	return Interface{}, false
}
