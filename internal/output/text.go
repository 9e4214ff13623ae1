// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"degen/pkg/api"
)

func letterList(ls []string) string {
	if len(ls) == 0 {
		return "-"
	}
	return strings.Join(ls, "")
}

// FormatDesignRow returns one TSV row (no trailing newline).
func FormatDesignRow(d api.DesignV1, st Style) string {
	if d.Error != "" {
		return fmt.Sprintf("%s\t%s\t%s\t-\t0\t-\t%s\t0\t0\t0",
			d.ID, letterList(d.Include), letterList(d.Avoid), st.paint(color.FgRed, "error: "+d.Error))
	}
	pat := st.paint(color.FgGreen, d.Pattern)
	if d.Fallback {
		pat = st.paint(color.FgYellow, d.Pattern)
	}
	return fmt.Sprintf("%s\t%s\t%s\t%s\t%d\t%s\t%s\t%d\t%d\t%.3f",
		d.ID, letterList(d.Include), letterList(d.Avoid), pat,
		len(d.Codons), d.Encodes, d.Outcome, d.Seeds, d.Tried, d.ElapsedMS)
}

// WriteDesignsText prints one row per design.
func WriteDesignsText(w io.Writer, list []api.DesignV1, header bool, st Style) error {
	if header {
		if _, err := fmt.Fprintln(w, DesignHeader); err != nil {
			return err
		}
	}
	for _, d := range list {
		if _, err := fmt.Fprintln(w, FormatDesignRow(d, st)); err != nil {
			return err
		}
	}
	return nil
}

// StreamDesignsText prints rows as they arrive on in.
func StreamDesignsText(w io.Writer, in <-chan api.DesignV1, header bool, st Style) error {
	if header {
		if _, err := fmt.Fprintln(w, DesignHeader); err != nil {
			return err
		}
	}
	for d := range in {
		if _, err := fmt.Fprintln(w, FormatDesignRow(d, st)); err != nil {
			return err
		}
	}
	return nil
}

// WriteExpansionsText prints one row per codon of each expansion.
func WriteExpansionsText(w io.Writer, list []api.ExpansionV1, header bool, st Style) error {
	if header {
		if _, err := fmt.Fprintln(w, ExpansionHeader); err != nil {
			return err
		}
	}
	for _, e := range list {
		for _, tr := range e.Translations {
			amino := tr.Amino
			if amino == "*" {
				amino = st.paint(color.FgRed, amino)
			}
			for _, c := range tr.Codons {
				if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", e.Pattern, c, amino); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// WriteTableText prints "letter<TAB>codon,codon" per amino acid, stops last as "*".
func WriteTableText(w io.Writer, t api.TableV1) error {
	letters := make([]string, 0, len(t.Aminos))
	for l := range t.Aminos {
		letters = append(letters, l)
	}
	sort.Strings(letters)
	for _, l := range letters {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", l, strings.Join(t.Aminos[l], ",")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "*\t%s\n", strings.Join(t.Stop, ","))
	return err
}
