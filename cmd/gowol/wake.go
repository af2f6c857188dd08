package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fgeck/gowol/internal/config"
	"github.com/fgeck/gowol/internal/magic"
	"github.com/fgeck/gowol/internal/models"
	"github.com/fgeck/gowol/internal/services/wol"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	wakeTarget    string
	wakeInterface string
	wakePassword  string
	wakeBroadcast string
	wakeUDP       bool
	wakeDryRun    bool
)

var wakeCmd = &cobra.Command{
	Use:   "wake",
	Short: "Send a magic packet to wake a host",
	Long: `Send a single Wake-on-LAN magic packet:
1. Resolve the target (MAC address or configured alias)
2. Validate the SecureOn password (if given)
3. Select the interface (--interface, the alias, the config default,
   or the first interface that is up, not loopback and has an IP)
4. Build the Ethernet frame (EtherType 0x0842)
5. Send it once on the interface's raw link layer

No response is awaited. With --udp the packet is sent as a UDP broadcast
datagram instead of a raw frame.`,
	Args: cobra.NoArgs,
	RunE: runWake,
}

func init() {
	wakeCmd.Flags().StringVarP(&wakeTarget, "target", "t", "", "MAC address or configured host alias to wake (required)")
	wakeCmd.Flags().StringVarP(&wakeInterface, "interface", "i", "", "interface to send on (default: auto-detect)")
	wakeCmd.Flags().StringVarP(&wakePassword, "password", "p", "", "SecureOn password: IPv4 notation, MAC notation or 6 ASCII characters")
	wakeCmd.Flags().BoolVar(&wakeUDP, "udp", false, "send a UDP broadcast datagram instead of a raw Ethernet frame")
	wakeCmd.Flags().StringVar(&wakeBroadcast, "broadcast", "", "UDP broadcast address host[:port] (default 255.255.255.255:9)")
	wakeCmd.Flags().BoolVar(&wakeDryRun, "dry-run", false, "build the frame and print it without sending")

	_ = wakeCmd.MarkFlagRequired("target")
	wakeCmd.MarkFlagsMutuallyExclusive("udp", "dry-run")
}

func runWake(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	req := models.WakeRequest{
		Target:        wakeTarget,
		Interface:     wakeInterface,
		Password:      wakePassword,
		Mode:          models.ModeRaw,
		BroadcastAddr: wakeBroadcast,
		DryRun:        wakeDryRun,
	}
	if wakeUDP {
		req.Mode = models.ModeUDP
	}

	req, err = config.ResolveRequest(cfg, req)
	if err != nil {
		log.Error().Err(err).Str("step", models.StepParse).Msg("wake failed")
		return loggedError{err}
	}

	// Set up context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			log.Warn().Str("signal", sig.String()).Msg("received signal, aborting")
			cancel()
		case <-ctx.Done():
		}
	}()

	svc := wol.New(log.Logger)
	result, err := svc.Wake(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("wake failed")
		return loggedError{err}
	}
	if result.Error != nil {
		log.Error().
			Err(result.Error).
			Str("step", result.FailedStep).
			Str("target", req.Target).
			Msg("wake failed")
		return loggedError{result.Error}
	}

	if req.DryRun {
		return printFrame(cmd, result.Frame)
	}

	printSent(cmd.OutOrStdout(), result)
	log.Debug().Dur("duration", result.Duration).Msg("wake completed")
	return nil
}

// printSent writes the success line to out, independent of the log level.
func printSent(out io.Writer, result *models.WakeResult) {
	if result.Broadcast != "" {
		fmt.Fprintf(out, "Sending to %s via %s\n", result.Target, result.Broadcast)
		return
	}
	fmt.Fprintf(out, "Sending to %s on iface %s\n", result.Target, result.Interface)
}

func printFrame(cmd *cobra.Command, frame []byte) error {
	pkt, err := magic.ParseFrame(frame)
	if err != nil {
		return fmt.Errorf("decoding built frame: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Destination: %s\n", pkt.Target)
	fmt.Fprintf(out, "Source:      %s\n", pkt.Source)
	fmt.Fprintf(out, "EtherType:   %#04x\n", uint16(magic.EtherType))
	fmt.Fprintf(out, "Password:    %d bytes\n", len(pkt.Password))
	fmt.Fprintf(out, "Length:      %d bytes\n\n", len(frame))
	fmt.Fprint(out, hex.Dump(frame))
	return nil
}
