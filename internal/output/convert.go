// internal/output/convert.go
package output

import (
	"degen-core/codon"
	"degen-core/degenerate"
	"degen-core/gcode"
	"degen/internal/service"
	"degen/pkg/api"
)

// ToAPIDesign converts a finished design to the stable wire schema (v1).
func ToAPIDesign(id string, d service.Design, t *gcode.Table) api.DesignV1 {
	r := d.Result
	return api.DesignV1{
		ID:        id,
		Include:   nonNil(d.Include),
		Avoid:     nonNil(d.Avoid),
		Coverage:  string(d.Coverage),
		Pattern:   r.Pattern.String(),
		Codons:    codonStrings(r.Codons.Codons()),
		Encodes:   degenerate.Encodes(t, r.Pattern),
		Fallback:  r.Fallback,
		Outcome:   string(r.Outcome),
		Seeds:     r.Seeds,
		Tried:     r.Tried,
		Truncated: r.Truncated,
		ElapsedMS: float64(r.Elapsed.Microseconds()) / 1000,
		Source:    string(d.Source),
	}
}

// ToAPIFailure reports a design that could not run, keeping the raw inputs.
func ToAPIFailure(id string, include, avoid []string, err error) api.DesignV1 {
	return api.DesignV1{
		ID:      id,
		Include: nonNil(include),
		Avoid:   nonNil(avoid),
		Codons:  []string{},
		Error:   err.Error(),
	}
}

// ToAPIExpansion lists every codon p denotes and what each translates to.
func ToAPIExpansion(p codon.Pattern, t *gcode.Table) api.ExpansionV1 {
	tr := degenerate.Translate(t, p)
	out := api.ExpansionV1{
		Pattern:      p.String(),
		Codons:       codonStrings(p.Codons().Codons()),
		Translations: make([]api.TranslationV1, 0, len(tr)),
	}
	for _, x := range tr {
		out.Translations = append(out.Translations, api.TranslationV1{
			Amino:  string(x.Amino),
			Codons: codonStrings(x.Codons),
		})
	}
	return out
}

func ToAPITable(t *gcode.Table) api.TableV1 {
	out := api.TableV1{
		Name:   t.Name(),
		Stop:   codonStrings(t.Stop()),
		Aminos: make(map[string][]string),
	}
	for _, l := range t.Letters() {
		cs, _ := t.Codons(l)
		out.Aminos[string(l)] = codonStrings(cs)
	}
	return out
}

func codonStrings(cs []codon.Codon) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
