// internal/writers/design.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"degen/internal/jsonlutil"
	"degen/internal/output"
	"degen/pkg/api"
)

func init() {
	Register(output.FormatText, func(w io.Writer, payload any, o Options) error {
		switch v := payload.(type) {
		case []api.DesignV1:
			return output.WriteDesignsText(w, v, o.Header, o.Style)
		case []api.ExpansionV1:
			return output.WriteExpansionsText(w, v, o.Header, o.Style)
		case api.TableV1:
			return output.WriteTableText(w, v)
		}
		return fmt.Errorf("text writer: unsupported payload %T", payload)
	})
	Register(output.FormatJSON, func(w io.Writer, payload any, _ Options) error {
		return output.WriteJSON(w, payload)
	})
	Register(output.FormatJSONL, func(w io.Writer, payload any, _ Options) error {
		switch v := payload.(type) {
		case []api.DesignV1:
			return writeLines(w, v)
		case []api.ExpansionV1:
			return writeLines(w, v)
		}
		return output.WriteJSON(w, payload)
	})
}

func writeLines[T any](w io.Writer, list []T) error {
	in, done := jsonlutil.Start(w, len(list), func(v T) T { return v }, IsBrokenPipe)
	for _, v := range list {
		in <- v
	}
	close(in)
	return <-done
}

// StartDesignWriter spins up a writer goroutine for designs. Without sort,
// text and jsonl rows stream as they arrive; json and sorted output are
// buffered until the channel closes. Sorting is by ID.
func StartDesignWriter(out io.Writer, format string, sortByID bool, o Options, bufSize int) (chan<- api.DesignV1, <-chan error) {
	if !sortByID {
		switch format {
		case output.FormatJSONL:
			return jsonlutil.Start(out, bufSize, func(d api.DesignV1) api.DesignV1 { return d }, IsBrokenPipe)
		case output.FormatText:
			return startStream(bufSize, func(in <-chan api.DesignV1) error {
				return output.StreamDesignsText(out, in, o.Header, o.Style)
			})
		}
	}
	return startStream(bufSize, func(in <-chan api.DesignV1) error {
		var buf []api.DesignV1
		for d := range in {
			buf = append(buf, d)
		}
		if sortByID {
			sort.SliceStable(buf, func(i, j int) bool { return buf[i].ID < buf[j].ID })
		}
		if buf == nil {
			buf = []api.DesignV1{}
		}
		return Write(format, out, buf, o)
	})
}

func startStream(bufSize int, run func(<-chan api.DesignV1) error) (chan<- api.DesignV1, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan api.DesignV1, bufSize)
	errCh := make(chan error, 1)
	go func() {
		err := run(in)
		for range in {
			// drain after an early error so senders never block
		}
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()
	return in, errCh
}
