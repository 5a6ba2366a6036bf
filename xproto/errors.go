package xproto

import "github.com/pkg/errors"

// errShortReply reports a reply buffer too short to hold the fixed
// portion of the named reply type.
func errShortReply(name string, want, got int) error {
	return errors.Errorf("xproto: %s reply too short: want at least %d bytes, got %d", name, want, got)
}
