package glx

import "github.com/pkg/errors"

func errShort(name string, want, got int) error {
	return errors.Errorf("glx: %s reply too short: want at least %d bytes, got %d", name, want, got)
}
