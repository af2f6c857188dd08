// Package models contains the data structures used throughout gowol.
package models

// Config holds the optional configuration file contents.
type Config struct {
	Interface string                // default interface when none is given on the command line
	Hosts     map[string]HostConfig // keyed by lower-case alias
}

// HostConfig describes a host that can be woken by alias.
type HostConfig struct {
	Name       string
	MACAddress string
	Interface  string // optional
	Password   string // optional, SecureOn password in IPv4, MAC or ASCII notation
}
