package gridprompt

import (
	"regexp"
	"sort"
	"strings"
)

// RenderFunc produces the displayed body for the current session state.
// It receives the committed values, whether the session is in edit mode, the
// ids of currently failing fields, and the id of the focused field.
//
// A custom RenderFunc has full control: no styling or placeholder
// substitution is applied around it.
type RenderFunc func(values map[string]string, editing bool, errorIDs []string, focusedID string) string

// RenderConfig is the template form of the renderer: a template string with
// {fieldID} placeholders plus optional style selectors for the three field
// states. Unset selectors keep the defaults (error: italic red, editing:
// italic gray, selected: cyan).
type RenderConfig struct {
	Template      string
	ErrorStyle    StyleSpec
	EditingStyle  StyleSpec
	SelectedStyle StyleSpec
}

var placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// resolveRenderer turns the configured renderer into a single RenderFunc,
// once, at session start. The function form wins when both are supplied.
func resolveRenderer(cfg *RenderConfig, fn RenderFunc, grid Grid) (RenderFunc, error) {
	if fn != nil {
		return fn, nil
	}
	if cfg == nil {
		return nil, nil
	}

	errorStyle, err := resolveStyle(cfg.ErrorStyle, defaultErrorStyle())
	if err != nil {
		return nil, err
	}
	editingStyle, err := resolveStyle(cfg.EditingStyle, defaultEditingStyle())
	if err != nil {
		return nil, err
	}
	selectedStyle, err := resolveStyle(cfg.SelectedStyle, defaultSelectedStyle())
	if err != nil {
		return nil, err
	}

	template := cfg.Template
	return func(values map[string]string, editing bool, errorIDs []string, focusedID string) string {
		failing := make(map[string]bool, len(errorIDs))
		for _, id := range errorIDs {
			failing[id] = true
		}
		return placeholderPattern.ReplaceAllStringFunc(template, func(m string) string {
			id := m[1 : len(m)-1]
			text := values[id]
			if text == "" {
				if pos, ok := grid.Find(id); ok {
					f, _ := grid.FieldAt(pos)
					text = f.placeholder()
				} else {
					text = id
				}
			}
			focused := id == focusedID
			switch {
			case editing && focused && failing[id]:
				return errorStyle(text)
			case editing && focused:
				return editingStyle(text)
			case focused:
				return selectedStyle(text)
			}
			return text
		})
	}, nil
}

// Cursor visibility control sequences, appended to the frame by the session.
const (
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
)

const legendSeparator = " • " // " • "

// legend formats the current scope's actions into the key help line.
func legend(actions []action) string {
	faint, _ := namedStyle("faint")
	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		parts = append(parts, a.displayKey+" "+a.label)
	}
	return faint(strings.Join(parts, legendSeparator))
}

// formatErrors renders the trailing error list, one field per line in
// field-id order so repeated renders are stable.
func formatErrors(errs map[string]string, style StyleFunc) string {
	ids := make([]string, 0, len(errs))
	for id := range errs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	for _, id := range ids {
		b.WriteString("\n")
		b.WriteString(style("✗ " + errs[id]))
	}
	return b.String()
}
