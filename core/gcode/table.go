// core/gcode/table.go
package gcode

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"degen-core/codon"
)

// StopSymbol is the letter Translate reports for stop codons.
const StopSymbol = '*'

var (
	// ErrUnknownAminoAcid is returned for letters that have no entry in the table.
	ErrUnknownAminoAcid = errors.New("unknown amino acid")
	// ErrInvalidTable is returned when a table file fails validation.
	ErrInvalidTable = errors.New("invalid genetic code table")
)

//go:embed standard.yaml
var standardYAML []byte

// Table is an immutable amino-acid -> synonymous-codon lookup.
type Table struct {
	name    string
	aminos  map[byte][]codon.Codon
	letters []byte
	stop    []codon.Codon
	reverse [64]byte // codon index -> amino letter (or StopSymbol)
}

type tableFile struct {
	Name       string              `yaml:"name"`
	Stop       []string            `yaml:"stop"`
	AminoAcids map[string][]string `yaml:"amino_acids"`
}

var (
	stdOnce  sync.Once
	stdTable *Table
)

// Standard returns the embedded standard genetic code. It is parsed once.
func Standard() *Table {
	stdOnce.Do(func() {
		t, err := Load(bytes.NewReader(standardYAML))
		if err != nil {
			panic(fmt.Sprintf("gcode: embedded standard table: %v", err))
		}
		stdTable = t
	})
	return stdTable
}

// LoadFile reads a YAML (or JSON) table from path.
func LoadFile(path string) (*Table, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	t, err := Load(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Load decodes and validates a table.
func Load(r io.Reader) (*Table, error) {
	var f tableFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	return build(f)
}

func build(f tableFile) (*Table, error) {
	if len(f.AminoAcids) == 0 {
		return nil, fmt.Errorf("%w: no amino acids", ErrInvalidTable)
	}
	if len(f.Stop) == 0 {
		return nil, fmt.Errorf("%w: no stop codons", ErrInvalidTable)
	}
	t := &Table{name: f.Name, aminos: make(map[byte][]codon.Codon, len(f.AminoAcids))}
	if t.name == "" {
		t.name = "custom"
	}

	assign := func(raw string, letter byte) (codon.Codon, error) {
		c, err := codon.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("%w: %c: %v", ErrInvalidTable, letter, err)
		}
		i, _ := c.Index()
		if prev := t.reverse[i]; prev != 0 {
			return "", fmt.Errorf("%w: codon %s assigned to both %c and %c", ErrInvalidTable, c, prev, letter)
		}
		t.reverse[i] = letter
		return c, nil
	}

	for _, raw := range f.Stop {
		c, err := assign(raw, StopSymbol)
		if err != nil {
			return nil, err
		}
		t.stop = append(t.stop, c)
	}
	for key, list := range f.AminoAcids {
		if len(key) != 1 || key[0] < 'A' || key[0] > 'Z' {
			return nil, fmt.Errorf("%w: amino acid key %q must be one uppercase letter", ErrInvalidTable, key)
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("%w: %s has no codons", ErrInvalidTable, key)
		}
		letter := key[0]
		cs := make([]codon.Codon, 0, len(list))
		for _, raw := range list {
			c, err := assign(raw, letter)
			if err != nil {
				return nil, err
			}
			cs = append(cs, c)
		}
		t.aminos[letter] = cs
		t.letters = append(t.letters, letter)
	}
	sort.Slice(t.letters, func(i, j int) bool { return t.letters[i] < t.letters[j] })
	return t, nil
}

func (t *Table) Name() string { return t.name }

// Letters lists the amino-acid letters in alphabetical order (stop excluded).
func (t *Table) Letters() []byte { return append([]byte(nil), t.letters...) }

// Codons returns the synonymous codons of an amino acid in table order.
func (t *Table) Codons(letter byte) ([]codon.Codon, error) {
	cs, ok := t.aminos[letter]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAminoAcid, letter)
	}
	return append([]codon.Codon(nil), cs...), nil
}

// Stop returns the stop codons.
func (t *Table) Stop() []codon.Codon { return append([]codon.Codon(nil), t.stop...) }

// StopSet returns the stop codons as a set.
func (t *Table) StopSet() codon.Set {
	s, _ := codon.SetOf(t.stop...)
	return s
}

// Translate returns the amino acid a codon encodes, StopSymbol for stops.
func (t *Table) Translate(c codon.Codon) (byte, bool) {
	i, err := c.Index()
	if err != nil || t.reverse[i] == 0 {
		return 0, false
	}
	return t.reverse[i], true
}

// ParseLetters normalizes amino-acid input such as "ACD", "a,c,d" or "A C D"
// into distinct uppercase letters in first-seen order. Membership in a table
// is not checked here.
func ParseLetters(s string) []byte {
	var out []byte
	seen := [256]bool{}
	for _, r := range strings.ToUpper(s) {
		if r == ',' || r == ' ' || r == '\t' || r == '-' {
			continue
		}
		if r > 0xff {
			out = append(out, '?')
			continue
		}
		b := byte(r)
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	return out
}
