// internal/output/common.go
package output

// Output formats accepted by -o/--output.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// DesignHeader is the canonical header row for design text output.
// Keep this as the single source of truth; all writers should use it.
const DesignHeader = "id\tinclude\tavoid\tpattern\tcodons\tencodes\toutcome\tseeds\ttried\telapsed_ms"

// ExpansionHeader heads expand's text output: one row per codon.
const ExpansionHeader = "pattern\tcodon\tamino"
