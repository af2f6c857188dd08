//go:build !unix

package transport

func permissionHint(error) string {
	return ""
}
