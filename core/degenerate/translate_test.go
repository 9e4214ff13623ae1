// core/degenerate/translate_test.go
package degenerate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"degen-core/codon"
	"degen-core/gcode"
)

func TestTranslateGroupsByAmino(t *testing.T) {
	p, err := codon.ParsePattern("YTN")
	require.NoError(t, err)
	tr := Translate(gcode.Standard(), p)
	require.Len(t, tr, 2)
	assert.Equal(t, byte('F'), tr[0].Amino)
	assert.Equal(t, []codon.Codon{"TTC", "TTT"}, tr[0].Codons)
	assert.Equal(t, byte('L'), tr[1].Amino)
	assert.Len(t, tr[1].Codons, 6)
}

func TestEncodes(t *testing.T) {
	for _, tc := range []struct{ pattern, want string }{
		{"GAY", "D"},
		{"YTN", "FL"},
		{"GCN,TGG", "AW"},
		{"NNK", "*ACDEFGHIKLMNPQRSTVWY"},
		{"", ""},
	} {
		p, err := codon.ParsePattern(tc.pattern)
		require.NoError(t, err)
		assert.Equal(t, tc.want, Encodes(gcode.Standard(), p), tc.pattern)
	}
}
