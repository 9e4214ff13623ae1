// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"

	"degen/internal/output"
)

// Options carries presentation switches shared by every format.
type Options struct {
	Header bool
	Style  output.Style
}

// Writer renders one complete payload ([]api.DesignV1, []api.ExpansionV1 or api.TableV1).
type Writer func(w io.Writer, payload any, o Options) error

// Writers maps format -> handler. Register in init() blocks.
var Writers = map[string]Writer{}

// Register is idempotent, last wins.
func Register(format string, fn Writer) { Writers[format] = fn }

// Write dispatches payload to the handler registered for format.
func Write(format string, w io.Writer, payload any, o Options) error {
	fn, ok := Writers[format]
	if !ok {
		return fmt.Errorf("%w %q (no writer registered)", ErrUnknownFormat, format)
	}
	return fn(w, payload, o)
}
