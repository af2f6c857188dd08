//go:build !linux

package netif

// DefaultLister returns the lister for the running platform.
func DefaultLister() Lister {
	return NetLister{}
}
