// Package wol provides Wake-on-LAN operations.
package wol

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/fgeck/gowol/internal/magic"
	"github.com/fgeck/gowol/internal/models"
	"github.com/fgeck/gowol/internal/netif"
	"github.com/fgeck/gowol/internal/transport"
	"github.com/rs/zerolog"
)

// Service defines the interface for Wake-on-LAN operations.
type Service interface {
	Wake(ctx context.Context, req models.WakeRequest) (*models.WakeResult, error)
}

// Resolver picks the interface to send on.
type Resolver interface {
	Resolve(name string) (netif.Interface, error)
}

// UDPSender sends magic packets over UDP.
type UDPSender interface {
	Send(addr string, target net.HardwareAddr, password []byte) error
}

// Impl implements the WOL Service interface.
type Impl struct {
	resolver Resolver
	opener   transport.Opener
	udp      UDPSender
	logger   zerolog.Logger
}

// New creates a new WOL service using the platform's interfaces and raw sockets.
func New(logger zerolog.Logger) *Impl {
	return &Impl{
		resolver: netif.NewResolver(logger, netif.DefaultLister()),
		opener:   transport.RawOpener{},
		udp:      transport.NewUDPSender(),
		logger:   logger,
	}
}

// NewWithClients creates a new WOL service with custom clients (for testing).
func NewWithClients(logger zerolog.Logger, resolver Resolver, opener transport.Opener, udp UDPSender) *Impl {
	return &Impl{
		resolver: resolver,
		opener:   opener,
		udp:      udp,
		logger:   logger,
	}
}

// Wake builds and sends a single magic packet. The outcome, including the
// failed step, is stored in the result; nothing is sent unless every step
// before the send succeeded.
//
//nolint:nilerr // errors are stored in the result struct by design
func (s *Impl) Wake(ctx context.Context, req models.WakeRequest) (*models.WakeResult, error) {
	result := &models.WakeResult{}
	start := time.Now()
	defer func() { result.Duration = time.Since(start) }()

	fail := func(step string, err error) (*models.WakeResult, error) {
		result.FailedStep = step
		result.Error = err
		return result, nil
	}

	// Parse target MAC address
	target, err := net.ParseMAC(req.Target)
	if err != nil {
		return fail(models.StepParse, fmt.Errorf("%w %q: %w", magic.ErrInvalidMAC, req.Target, err))
	}
	if len(target) != magic.MACLen {
		return fail(models.StepParse, fmt.Errorf("%w %q: not a 6-byte address", magic.ErrInvalidMAC, req.Target))
	}
	result.Target = target

	// Validate password
	var pw *magic.Password
	var pwBytes []byte
	if req.Password != "" {
		p := magic.ParsePassword(req.Password)
		pwBytes, err = p.Bytes()
		if err != nil {
			return fail(models.StepPassword, err)
		}
		pw = &p
		s.logger.Debug().Str("kind", p.Kind().String()).Int("length", len(pwBytes)).Msg("using SecureOn password")
	}

	if req.Mode == models.ModeUDP {
		return s.wakeUDP(ctx, req, result, pwBytes, fail)
	}

	// Resolve interface
	ifi, err := s.resolver.Resolve(req.Interface)
	if err != nil {
		return fail(models.StepResolve, err)
	}
	result.Interface = ifi.Name
	result.Source = ifi.HardwareAddr

	s.logger.Debug().
		Str("target", target.String()).
		Str("interface", ifi.Name).
		Msg("building frame")

	// Build frame
	pkt, err := magic.New(target, ifi.HardwareAddr, pw)
	if err != nil {
		return fail(models.StepBuild, err)
	}
	frame := make([]byte, pkt.Len())
	n, err := pkt.MarshalTo(frame)
	if err != nil {
		return fail(models.StepBuild, err)
	}
	frame = frame[:n]
	result.FrameLen = n

	if req.DryRun {
		result.Frame = frame
		s.logger.Info().Int("bytes", n).Msg("dry run, frame not sent")
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return fail(models.StepOpen, err)
	}

	// Open channel
	ch, err := s.opener.Open(ifi)
	if err != nil {
		return fail(models.StepOpen, err)
	}
	defer func() {
		if err := ch.Close(); err != nil {
			s.logger.Debug().Err(err).Msg("failed to close channel")
		}
	}()

	if lt := ch.LinkType(); lt != netif.LinkEthernet {
		return fail(models.StepOpen, fmt.Errorf("%w: interface %s has link type %q", transport.ErrUnsupportedChannelType, ifi.Name, lt))
	}

	// Send frame
	if err := ch.Send(frame); err != nil {
		return fail(models.StepSend, err)
	}

	result.PacketSent = true
	s.logger.Info().Int("bytes", n).Msg("WOL packet sent successfully")

	return result, nil
}

func (s *Impl) wakeUDP(
	ctx context.Context,
	req models.WakeRequest,
	result *models.WakeResult,
	password []byte,
	fail func(string, error) (*models.WakeResult, error),
) (*models.WakeResult, error) {
	addr, err := transport.UDPAddress(req.BroadcastAddr)
	if err != nil {
		return fail(models.StepOpen, err)
	}

	result.Broadcast = addr

	s.logger.Debug().
		Str("target", result.Target.String()).
		Str("broadcast", addr).
		Msg("sending UDP datagram")

	if err := ctx.Err(); err != nil {
		return fail(models.StepOpen, err)
	}

	if err := s.udp.Send(addr, result.Target, password); err != nil {
		return fail(models.StepSend, err)
	}

	result.FrameLen = magic.BasePayloadLen + len(password)
	result.PacketSent = true
	s.logger.Info().Msg("WOL packet sent successfully")

	return result, nil
}
