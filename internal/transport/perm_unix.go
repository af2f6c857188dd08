//go:build unix

package transport

import (
	"errors"

	"golang.org/x/sys/unix"
)

func permissionHint(err error) string {
	if errors.Is(err, unix.EPERM) || errors.Is(err, unix.EACCES) {
		return " (requires root or CAP_NET_RAW)"
	}
	return ""
}
