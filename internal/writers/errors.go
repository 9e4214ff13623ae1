// internal/writers/errors.go
package writers

import (
	"errors"
	"io"
	"syscall"
)

// ErrUnknownFormat is returned for formats with no registered writer.
var ErrUnknownFormat = errors.New("unknown output format")

// IsBrokenPipe reports whether err means the reader went away (EPIPE or a
// closed pipe), as when output is piped into `head`. Callers treat it as success.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
