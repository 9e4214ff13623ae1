// internal/output/style.go
package output

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Style controls terminal decoration of text output.
type Style struct {
	Color bool
}

// StyleFor colors output only for terminals, and never when NO_COLOR is set.
func StyleFor(w io.Writer) Style {
	if _, off := os.LookupEnv("NO_COLOR"); off {
		return Style{}
	}
	f, ok := w.(*os.File)
	if !ok {
		return Style{}
	}
	return Style{Color: isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())}
}

func (s Style) paint(attr color.Attribute, str string) string {
	c := color.New(attr)
	if s.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(str)
}
