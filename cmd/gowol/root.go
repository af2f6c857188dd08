package main

import (
	"errors"
	"os"
	"strings"

	"github.com/fgeck/gowol/internal/config"
	"github.com/fgeck/gowol/internal/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "dev"

	// Configuration flags.
	configFile string
	verbose    bool
	quiet      bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "gowol",
	Short: "Send Wake-on-LAN magic packets",
	Long: `gowol wakes hosts on the local Ethernet segment by sending a
Wake-on-LAN magic packet (EtherType 0x0842) from a chosen interface:
  - target by MAC address or by an alias from the config file
  - optional SecureOn password (IPv4, MAC or 6-character ASCII notation)
  - automatic interface selection when none is given

Sending raw frames requires root or CAP_NET_RAW.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       Version,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file with host aliases (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose (debug) output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "enable quiet mode (errors only)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output logs in JSON format")

	rootCmd.AddCommand(wakeCmd)
	rootCmd.AddCommand(interfacesCmd)
	rootCmd.AddCommand(validateCmd)
}

func setupLogging() {
	// Set output format
	if jsonOutput {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
		output.FormatLevel = func(i interface{}) string {
			if s, ok := i.(string); ok {
				return strings.ToUpper(s)
			}
			return ""
		}
		log.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	// Set log level
	switch {
	case quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// loadConfig reads the config file if one was given, otherwise only the
// environment overrides apply.
func loadConfig() (*models.Config, error) {
	parser := config.NewParser()
	if configFile == "" {
		return parser.LoadDefaults()
	}

	cfg, err := parser.LoadFile(configFile)
	if err != nil {
		log.Error().Err(err).Str("file", configFile).Msg("failed to load config")
		return nil, loggedError{err}
	}
	if err := config.Validate(cfg); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return nil, loggedError{err}
	}
	return cfg, nil
}

// loggedError marks an error that was already logged with its context.
type loggedError struct {
	error
}

func (e loggedError) Unwrap() error {
	return e.error
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		var logged loggedError
		if !errors.As(err, &logged) {
			log.Error().Err(err).Msg("command failed")
		}
	}
	return err
}
