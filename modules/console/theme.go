package console

import (
	"io"
	"os"

	"github.com/example/finance-calculator/config"
	"github.com/mattn/go-isatty"
)

// Theme holds the ANSI SGR parameters used for each kind of output.
type Theme struct {
	Name   string
	Prompt string
	Result string
	Error  string
	Muted  string
}

var themes = map[string]Theme{
	config.ThemeLight: {Name: config.ThemeLight, Prompt: "34", Result: "1;32", Error: "31", Muted: "90"},
	config.ThemeDark:  {Name: config.ThemeDark, Prompt: "1;96", Result: "1;92", Error: "1;91", Muted: "37"},
}

// ThemeByName returns the named theme, falling back to light.
func ThemeByName(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[config.ThemeLight]
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t.Name == config.ThemeDark {
		return themes[config.ThemeLight]
	}
	return themes[config.ThemeDark]
}

// colorEnabled reports whether w is an interactive terminal.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
