package main

import (
	"fmt"

	"github.com/fgeck/gowol/internal/netif"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var interfacesCmd = &cobra.Command{
	Use:   "interfaces",
	Short: "List network interfaces",
	Long: `List the network interfaces reported by the platform. The interface
picked when wake runs without --interface is marked with "(default)".`,
	Args: cobra.NoArgs,
	RunE: listInterfaces,
}

func listInterfaces(cmd *cobra.Command, args []string) error {
	resolver := netif.NewResolver(log.Logger, netif.DefaultLister())
	candidates, err := resolver.Candidates()
	if err != nil {
		log.Error().Err(err).Msg("failed to list interfaces")
		return loggedError{err}
	}

	longestName := 0
	for _, c := range candidates {
		if len(c.Name) > longestName {
			longestName = len(c.Name)
		}
	}

	out := cmd.OutOrStdout()
	for _, c := range candidates {
		fmt.Fprintf(out, "%-*s", longestName, c.Name)
		if c.HardwareAddr != nil {
			fmt.Fprintf(out, " [%s]", c.HardwareAddr)
		}
		fmt.Fprintf(out, " <%s>", c.Flags())
		if c.LinkType != netif.LinkUnknown {
			fmt.Fprintf(out, " %s", c.LinkType)
		}
		if c.Default {
			fmt.Fprint(out, " (default)")
		}
		fmt.Fprintln(out)
		for _, ip := range c.IPs {
			fmt.Fprintf(out, "  %s\n", ip)
		}
	}
	return nil
}
