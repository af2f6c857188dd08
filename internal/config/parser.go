// Package config provides configuration file parsing.
package config

import (
	"fmt"
	"net"
	"os"
	"sort"
	"strings"

	"github.com/fgeck/gowol/internal/magic"
	"github.com/fgeck/gowol/internal/models"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override top-level keys.
const EnvPrefix = "GOWOL"

// Parser handles configuration file parsing.
type Parser struct {
	v *viper.Viper
}

// NewParser creates a new configuration parser.
func NewParser() *Parser {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return &Parser{v: v}
}

// LoadFile loads configuration from a file path.
func (p *Parser) LoadFile(path string) (*models.Config, error) {
	p.v.SetConfigFile(path)

	if err := p.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return p.parse()
}

// LoadReader loads configuration from a reader (useful for testing).
func (p *Parser) LoadReader(content string) (*models.Config, error) {
	if err := p.v.ReadConfig(strings.NewReader(content)); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	return p.parse()
}

// LoadDefaults returns the configuration when no file is given, honoring
// environment overrides.
func (p *Parser) LoadDefaults() (*models.Config, error) {
	return p.parse()
}

func (p *Parser) parse() (*models.Config, error) {
	cfg := &models.Config{
		Interface: p.v.GetString("interface"),
		Hosts:     map[string]models.HostConfig{},
	}

	for name := range p.v.GetStringMap("hosts") {
		key := "hosts." + name
		host := models.HostConfig{
			Name:       name,
			MACAddress: p.v.GetString(key + ".mac"),
			Interface:  p.v.GetString(key + ".interface"),
			Password:   p.expandEnv(p.v.GetString(key + ".password")),
		}

		if host.MACAddress == "" {
			return nil, fmt.Errorf("%s.mac is required", key)
		}
		if err := validateMAC(host.MACAddress); err != nil {
			return nil, fmt.Errorf("%s.mac: %w", key, err)
		}

		cfg.Hosts[strings.ToLower(name)] = host
	}

	return cfg, nil
}

// expandEnv expands environment variables in the format ${VAR} or $VAR.
func (p *Parser) expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Validate performs validation on the loaded configuration.
func Validate(cfg *models.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	for _, name := range HostNames(cfg) {
		host := cfg.Hosts[name]
		if err := validateMAC(host.MACAddress); err != nil {
			return fmt.Errorf("hosts.%s.mac: %w", name, err)
		}
		if host.Password != "" {
			if _, err := magic.ParsePassword(host.Password).Bytes(); err != nil {
				return fmt.Errorf("hosts.%s.password: %w", name, err)
			}
		}
	}

	return nil
}

// HostNames returns the configured aliases in sorted order.
func HostNames(cfg *models.Config) []string {
	names := make([]string, 0, len(cfg.Hosts))
	for name := range cfg.Hosts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveRequest fills req from the configuration. A target that parses as
// a MAC address is used as-is; otherwise it must name a configured host.
// Values already set on req take precedence over configured ones.
func ResolveRequest(cfg *models.Config, req models.WakeRequest) (models.WakeRequest, error) {
	if cfg == nil {
		cfg = &models.Config{}
	}

	if _, err := net.ParseMAC(req.Target); err != nil {
		host, ok := cfg.Hosts[strings.ToLower(req.Target)]
		if !ok {
			return req, fmt.Errorf("target %q is neither a MAC address nor a configured host", req.Target)
		}
		req.Target = host.MACAddress
		if req.Interface == "" {
			req.Interface = host.Interface
		}
		if req.Password == "" {
			req.Password = host.Password
		}
	}

	if req.Interface == "" {
		req.Interface = cfg.Interface
	}

	return req, nil
}

func validateMAC(s string) error {
	mac, err := net.ParseMAC(s)
	if err != nil {
		return err
	}
	if len(mac) != magic.MACLen {
		return fmt.Errorf("%w %q: not a 6-byte address", magic.ErrInvalidMAC, s)
	}
	return nil
}
