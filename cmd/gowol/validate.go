package main

import (
	"fmt"
	"os"

	"github.com/fgeck/gowol/internal/config"
	"github.com/fgeck/gowol/internal/magic"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long:  `Validate the configuration file without sending any packets.`,
	RunE:  validateConfig,
}

func validateConfig(cmd *cobra.Command, args []string) error {
	if configFile == "" {
		log.Error().Msg("config file is required")
		return cmd.Help()
	}

	// Check if file exists
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		log.Error().Str("file", configFile).Msg("config file not found")
		return loggedError{fmt.Errorf("config file not found: %s", configFile)}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Print configuration summary
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration is valid!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Summary:")
	if cfg.Interface != "" {
		fmt.Fprintf(out, "  Default interface: %s\n", cfg.Interface)
	} else {
		fmt.Fprintf(out, "  Default interface: (auto-detect)\n")
	}
	fmt.Fprintf(out, "  Hosts: %d\n", len(cfg.Hosts))

	for _, name := range config.HostNames(cfg) {
		host := cfg.Hosts[name]
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Host %s:\n", name)
		fmt.Fprintf(out, "  MAC Address: %s\n", host.MACAddress)
		if host.Interface != "" {
			fmt.Fprintf(out, "  Interface: %s\n", host.Interface)
		}
		if host.Password != "" {
			fmt.Fprintf(out, "  Password: %s\n", magic.ParsePassword(host.Password))
		}
	}

	return nil
}
