//go:build !darwin

package keychain

// NewSystemStore reports ErrUnavailable outside macOS.
func NewSystemStore() (Store, error) {
	return nil, ErrUnavailable
}
