//go:build !unix

package arena

import "errors"

var errNoMmap = errors.New("arena: anonymous mappings not supported on this platform")

func mapAnon(int) ([]byte, func([]byte) error, error) {
	return nil, nil, errNoMmap
}
