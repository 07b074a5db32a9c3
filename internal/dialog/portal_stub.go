//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package dialog

import "fmt"

// OpenFile is not supported on this platform.
func (p *Portal) OpenFile(string) (string, error) {
	return "", fmt.Errorf("file dialogs are not supported on this platform")
}

// SaveFile is not supported on this platform.
func (p *Portal) SaveFile(string, string) (string, error) {
	return "", fmt.Errorf("file dialogs are not supported on this platform")
}
