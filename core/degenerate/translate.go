// core/degenerate/translate.go
package degenerate

import (
	"sort"

	"degen-core/codon"
	"degen-core/gcode"
)

// Translation groups the codons of an expansion by the amino acid they encode.
type Translation struct {
	Amino  byte // gcode.StopSymbol for stop codons
	Codons []codon.Codon
}

// Translate lists, per amino acid, which codons of p's expansion encode it.
// Stop codons sort first. Codons absent from the table are skipped.
func Translate(t *gcode.Table, p codon.Pattern) []Translation {
	by := make(map[byte][]codon.Codon)
	for _, c := range p.Codons().Codons() {
		aa, ok := t.Translate(c)
		if !ok {
			continue
		}
		by[aa] = append(by[aa], c)
	}
	out := make([]Translation, 0, len(by))
	for aa, cs := range by {
		out = append(out, Translation{Amino: aa, Codons: cs})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Amino < out[j].Amino })
	return out
}

// Encodes returns the amino-acid letters p can produce, stop included as '*'.
func Encodes(t *gcode.Table, p codon.Pattern) string {
	tr := Translate(t, p)
	b := make([]byte, len(tr))
	for i, x := range tr {
		b[i] = x.Amino
	}
	return string(b)
}
