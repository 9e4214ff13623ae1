// pkg/api/expansion_v1.go
package api

// TranslationV1 lists the codons of an expansion that encode one amino acid ("*" for stop).
type TranslationV1 struct {
	Amino  string   `json:"amino"`
	Codons []string `json:"codons"`
}

// ExpansionV1 is the membership expansion of a pattern.
type ExpansionV1 struct {
	Pattern      string          `json:"pattern"`
	Codons       []string        `json:"codons"`
	Translations []TranslationV1 `json:"translations"`
}

// ExpandRequestV1 is the body of POST /v1/expand.
type ExpandRequestV1 struct {
	Pattern string `json:"pattern" binding:"required"`
}

// TableV1 is the genetic code in use.
type TableV1 struct {
	Name   string              `json:"name"`
	Stop   []string            `json:"stop"`
	Aminos map[string][]string `json:"aminos"`
}
