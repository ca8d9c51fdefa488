package gridprompt

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// StyleFunc turns a rendered field value into its styled form.
type StyleFunc func(string) string

// StyleSpec selects how a template placeholder is styled. Exactly one of the
// three fields should be set: a single named style, an ordered list of named
// styles composed left to right, or a custom function. A zero StyleSpec keeps
// the built-in default for that slot.
type StyleSpec struct {
	Name  string
	Names []string
	Func  StyleFunc
}

// namedStyle resolves one style name onto a lipgloss style.
func namedStyle(name string) (StyleFunc, bool) {
	var style lipgloss.Style
	switch name {
	case "bold":
		style = lipgloss.NewStyle().Bold(true)
	case "italic":
		style = lipgloss.NewStyle().Italic(true)
	case "underline":
		style = lipgloss.NewStyle().Underline(true)
	case "strikethrough":
		style = lipgloss.NewStyle().Strikethrough(true)
	case "faint":
		style = lipgloss.NewStyle().Faint(true)
	case "red":
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "green":
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "yellow":
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case "blue":
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	case "magenta":
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	case "cyan":
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	case "white":
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	case "gray", "grey":
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	default:
		return nil, false
	}
	return func(s string) string { return style.Render(s) }, true
}

// composeStyles chains named styles so each one wraps the previous output.
func composeStyles(names []string) (StyleFunc, error) {
	fns := make([]StyleFunc, 0, len(names))
	for _, name := range names {
		fn, ok := namedStyle(name)
		if !ok {
			return nil, fmt.Errorf("unknown style %q", name)
		}
		fns = append(fns, fn)
	}
	return func(s string) string {
		for _, fn := range fns {
			s = fn(s)
		}
		return s
	}, nil
}

// resolveStyle turns a StyleSpec into a StyleFunc once, at configuration
// time. A zero spec resolves to fallback.
func resolveStyle(spec StyleSpec, fallback StyleFunc) (StyleFunc, error) {
	switch {
	case spec.Func != nil:
		return spec.Func, nil
	case len(spec.Names) > 0:
		return composeStyles(spec.Names)
	case spec.Name != "":
		fn, ok := namedStyle(spec.Name)
		if !ok {
			return nil, fmt.Errorf("unknown style %q", spec.Name)
		}
		return fn, nil
	}
	return fallback, nil
}

// Built-in style defaults for the three render states.
func defaultErrorStyle() StyleFunc {
	fn, _ := composeStyles([]string{"italic", "red"})
	return fn
}

func defaultEditingStyle() StyleFunc {
	fn, _ := composeStyles([]string{"italic", "gray"})
	return fn
}

func defaultSelectedStyle() StyleFunc {
	fn, _ := namedStyle("cyan")
	return fn
}
