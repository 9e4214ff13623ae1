// pkg/api/designs_v1.go
package api

// DesignV1 is the stable JSON/JSONL schema for one degenerate-codon design.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type DesignV1 struct {
	ID        string   `json:"id,omitempty"`
	Include   []string `json:"include"`
	Avoid     []string `json:"avoid"`
	Coverage  string   `json:"coverage"`
	Pattern   string   `json:"pattern"`
	Codons    []string `json:"codons"`
	Encodes   string   `json:"encodes"` // amino acids the pattern can produce
	Fallback  bool     `json:"fallback,omitempty"`
	Outcome   string   `json:"outcome"` // "early-exit" | "seeds-exhausted" | "budget-exhausted" | "canceled"
	Seeds     int      `json:"seeds"`
	Tried     int      `json:"tried"`
	Truncated bool     `json:"truncated,omitempty"`
	ElapsedMS float64  `json:"elapsed_ms"`
	Source    string   `json:"source,omitempty"` // "engine" | "memory" | "disk"
	Error     string   `json:"error,omitempty"`  // batch rows that could not be designed
}

// DesignRequestV1 is the body of POST /v1/designs.
type DesignRequestV1 struct {
	ID      string   `json:"id,omitempty"`
	Include []string `json:"include" binding:"required,min=1,dive,len=1"`
	Avoid   []string `json:"avoid" binding:"omitempty,dive,len=1"`
}

// ErrorV1 is returned with every non-2xx response.
type ErrorV1 struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}
