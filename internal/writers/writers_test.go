// internal/writers/writers_test.go
package writers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"syscall"
	"testing"

	"degen/internal/output"
	"degen/pkg/api"
)

func sampleDesigns() []api.DesignV1 {
	return []api.DesignV1{
		{ID: "b", Include: []string{"D"}, Avoid: []string{}, Pattern: "GAY", Codons: []string{"GAC", "GAT"}, Encodes: "D", Outcome: "early-exit"},
		{ID: "a", Include: []string{"W"}, Avoid: []string{}, Pattern: "TGG", Codons: []string{"TGG"}, Encodes: "W", Outcome: "early-exit"},
	}
}

func run(t *testing.T, format string, sortByID bool) (string, error) {
	t.Helper()
	var b bytes.Buffer
	in, done := StartDesignWriter(&b, format, sortByID, Options{Header: true}, 1)
	for _, d := range sampleDesigns() {
		in <- d
	}
	close(in)
	err := <-done
	return b.String(), err
}

func TestUnknownFormatError(t *testing.T) {
	_, err := run(t, "nope-format", false)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("want ErrUnknownFormat, got: %v", err)
	}
}

func TestJSONLStreamsInArrivalOrder(t *testing.T) {
	out, err := run(t, output.FormatJSONL, false)
	if err != nil {
		t.Fatalf("jsonl: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d: %q", len(lines), out)
	}
	var first api.DesignV1
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line 1 not JSON: %v", err)
	}
	if first.ID != "b" || first.Pattern != "GAY" {
		t.Fatalf("unexpected first row: %+v", first)
	}
}

func TestJSONSortedArray(t *testing.T) {
	out, err := run(t, output.FormatJSON, true)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var got []api.DesignV1
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("not a JSON array: %v\n%s", err, out)
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("want sorted a,b; got %+v", got)
	}
}

func TestJSONEmptyIsArray(t *testing.T) {
	var b bytes.Buffer
	in, done := StartDesignWriter(&b, output.FormatJSON, false, Options{}, 1)
	close(in)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(b.String()) != "[]" {
		t.Fatalf("want [], got %q", b.String())
	}
}

func TestTextHasHeader(t *testing.T) {
	out, err := run(t, output.FormatText, false)
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	if !strings.HasPrefix(out, output.DesignHeader+"\n") {
		t.Fatalf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "b\tD\t-\tGAY\t2\tD\tearly-exit") {
		t.Fatalf("missing row:\n%s", out)
	}
}

func TestWriteTablePayload(t *testing.T) {
	var b bytes.Buffer
	tab := api.TableV1{Name: "t", Stop: []string{"TAA"}, Aminos: map[string][]string{"W": {"TGG"}}}
	if err := Write(output.FormatText, &b, tab, Options{}); err != nil {
		t.Fatal(err)
	}
	if b.String() != "W\tTGG\n*\tTAA\n" {
		t.Fatalf("got %q", b.String())
	}
	if err := Write(output.FormatText, &b, 42, Options{}); err == nil {
		t.Fatal("want error for unsupported payload")
	}
}

type pipeWriter struct{}

func (pipeWriter) Write([]byte) (int, error) { return 0, syscall.EPIPE }

func TestBrokenPipeIsSilent(t *testing.T) {
	in, done := StartDesignWriter(pipeWriter{}, output.FormatText, false, Options{Header: true}, 1)
	for _, d := range sampleDesigns() {
		in <- d
	}
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("broken pipe should be swallowed, got %v", err)
	}
	if !IsBrokenPipe(io.ErrClosedPipe) || IsBrokenPipe(nil) || IsBrokenPipe(errors.New("x")) {
		t.Fatal("IsBrokenPipe classification wrong")
	}
}
