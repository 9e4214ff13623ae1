// internal/jobs/loader.go
package jobs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/pgzip"

	"degen-core/gcode"
)

// ErrFormat wraps every malformed-row error.
var ErrFormat = errors.New("bad job file")

// Job is one row of a batch file.
type Job struct {
	Index   int // 0-based position across all loaded files
	ID      string
	Include []string
	Avoid   []string
}

// LoadTSV reads whitespace-separated rows "id include [avoid]". Letter
// lists are written "ACD" or "A,C,D"; "-" stands for an empty list and an
// id of "-" is replaced by a random UUID. Blank lines and "#" comments are
// skipped. Paths ending in .gz are decompressed; "-" reads stdin.
func LoadTSV(path string, stdin io.Reader) ([]Job, error) {
	var r io.Reader
	switch {
	case path == "-":
		r = stdin
	default:
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = fh.Close() }()
		r = fh
	}
	if strings.HasSuffix(path, ".gz") {
		zr, err := pgzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		defer func() { _ = zr.Close() }()
		r = zr
	}
	return Parse(r, path)
}

// Parse reads job rows from r; name prefixes error messages.
func Parse(r io.Reader, name string) ([]Job, error) {
	var list []Job
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 2 || len(f) > 3 {
			return nil, fmt.Errorf("%w: %s:%d bad field count %d (want id include [avoid])", ErrFormat, name, ln, len(f))
		}
		j := Job{ID: f[0], Include: Letters(f[1])}
		if j.ID == "-" {
			j.ID = uuid.NewString()
		}
		if len(j.Include) == 0 {
			return nil, fmt.Errorf("%w: %s:%d empty include list", ErrFormat, name, ln)
		}
		if len(f) == 3 {
			j.Avoid = Letters(f[2])
		}
		list = append(list, j)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// LoadAll loads every path and numbers the jobs in order.
func LoadAll(paths []string, stdin io.Reader) ([]Job, error) {
	var all []Job
	for _, p := range paths {
		js, err := LoadTSV(p, stdin)
		if err != nil {
			return nil, err
		}
		all = append(all, js...)
	}
	for i := range all {
		all[i].Index = i
	}
	return all, nil
}

// Letters splits "ACD", "a,c,d" or "A C D" into distinct uppercase letters; "-" is empty.
func Letters(field string) []string {
	if field == "-" {
		return nil
	}
	bs := gcode.ParseLetters(field)
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = string(b)
	}
	return out
}
