package gridprompt

import (
	"fmt"
	"strings"
)

// KeyEvent is one keystroke as delivered by the host runtime.
//
// Key holds the lowercase key name: a single printable character, or a
// special name such as "enter", "escape", "delete", "backspace", "tab",
// "up", "down", "left", "right". Line carries the host's current raw
// input-line text, which the session reads on edit-mode keystrokes.
type KeyEvent struct {
	Key   string
	Ctrl  bool
	Shift bool
	Alt   bool
	Line  string
}

// combo builds the canonical combo string for the event: modifiers in fixed
// order (ctrl, shift, alt), then the lowercase key name.
func (e KeyEvent) combo() string {
	var parts []string
	if e.Ctrl {
		parts = append(parts, "ctrl")
	}
	if e.Shift {
		parts = append(parts, "shift")
	}
	if e.Alt {
		parts = append(parts, "alt")
	}
	parts = append(parts, canonicalKeyName(strings.ToLower(e.Key)))
	return strings.Join(parts, "+")
}

// keyAliases maps accepted spellings onto canonical key names.
var keyAliases = map[string]string{
	"return": "enter",
	"esc":    "escape",
	"del":    "delete",
	"space":  " ",
}

// modifierAliases maps accepted spellings onto canonical modifier names.
var modifierAliases = map[string]string{
	"ctrl":    "ctrl",
	"control": "ctrl",
	"shift":   "shift",
	"alt":     "alt",
	"opt":     "alt",
	"option":  "alt",
	"meta":    "alt",
}

func canonicalKeyName(name string) string {
	if alias, ok := keyAliases[name]; ok {
		return alias
	}
	return name
}

// normalizeCombo parses a user-supplied key-combo string like "Alt+Enter" or
// "ctrl+s" into its canonical form. Modifier order is fixed to ctrl, shift,
// alt regardless of the order written. Malformed combos are configuration
// errors.
func normalizeCombo(combo string) (string, error) {
	if strings.TrimSpace(combo) == "" {
		return "", fmt.Errorf("empty key combo")
	}

	var ctrl, shift, alt bool
	key := ""
	for _, part := range strings.Split(combo, "+") {
		part = strings.ToLower(strings.TrimSpace(part))
		if mod, ok := modifierAliases[part]; ok {
			switch mod {
			case "ctrl":
				ctrl = true
			case "shift":
				shift = true
			case "alt":
				alt = true
			}
			continue
		}
		if part == "" {
			return "", fmt.Errorf("malformed key combo %q", combo)
		}
		if key != "" {
			return "", fmt.Errorf("key combo %q names more than one key", combo)
		}
		key = canonicalKeyName(part)
	}
	if key == "" {
		return "", fmt.Errorf("key combo %q names no key", combo)
	}

	return KeyEvent{Key: key, Ctrl: ctrl, Shift: shift, Alt: alt}.combo(), nil
}

// arrowDirection reports whether the event is a bare directional key and, if
// so, which direction it moves.
func arrowDirection(e KeyEvent) (Direction, bool) {
	if e.Ctrl || e.Shift || e.Alt {
		return 0, false
	}
	switch strings.ToLower(e.Key) {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	}
	return 0, false
}
