package gridprompt

import (
	"fmt"
)

// Field describes a single editable slot in the grid.
//
// A Field is immutable once the session starts. ID must be unique across the
// whole grid; duplicate ids are rejected at configuration time. Validate and
// Transform, when set, must be total functions: they signal invalid input
// through their return value and must never panic.
type Field struct {
	ID          string                    // Unique key, also the template placeholder name
	Label       string                    // Optional human-readable label
	Placeholder string                    // Shown while the field has no value; synthesized when empty
	Required    bool                      // Empty value blocks done
	Default     string                    // Initial committed value
	Multiline   bool                      // Value may contain newlines
	Validate    func(value string) error  // nil means always valid
	Transform   func(value string) string // nil means identity
}

// Grid is the 2-D arrangement of fields. Rows may have different lengths.
// It is read-only for the lifetime of a session.
type Grid [][]Field

// Position addresses a field in a Grid. A Position held by a session always
// indexes an existing field.
type Position struct {
	Row int
	Col int
}

// FieldAt returns the field at pos, or false if pos indexes no field.
func (g Grid) FieldAt(pos Position) (Field, bool) {
	if pos.Row < 0 || pos.Row >= len(g) {
		return Field{}, false
	}
	row := g[pos.Row]
	if pos.Col < 0 || pos.Col >= len(row) {
		return Field{}, false
	}
	return row[pos.Col], true
}

// Find returns the position of the field with the given id. When the same id
// appears more than once the first occurrence in row-major order wins.
func (g Grid) Find(id string) (Position, bool) {
	for r, row := range g {
		for c, f := range row {
			if f.ID == id {
				return Position{Row: r, Col: c}, true
			}
		}
	}
	return Position{}, false
}

// fields returns all fields in row-major order.
func (g Grid) fields() []Field {
	var out []Field
	for _, row := range g {
		out = append(out, row...)
	}
	return out
}

// validate rejects empty grids and duplicate field ids.
func (g Grid) validate() error {
	seen := make(map[string]struct{})
	count := 0
	for r, row := range g {
		for c, f := range row {
			count++
			if f.ID == "" {
				return fmt.Errorf("field at row %d col %d has empty id", r, c)
			}
			if _, dup := seen[f.ID]; dup {
				return fmt.Errorf("duplicate field id %q", f.ID)
			}
			seen[f.ID] = struct{}{}
		}
	}
	if count == 0 {
		return fmt.Errorf("grid has no fields")
	}
	return nil
}

// placeholder returns the field's display text for an empty value:
// the configured placeholder, or "<id>" for required fields and "id?"
// for optional ones.
func (f Field) placeholder() string {
	if f.Placeholder != "" {
		return f.Placeholder
	}
	if f.Required {
		return "<" + f.ID + ">"
	}
	return f.ID + "?"
}

// seedValues builds the initial committed-value map: one entry per field id,
// taken from initial overrides, then field defaults, then the empty string.
func seedValues(grid Grid, initial map[string]string) map[string]string {
	values := make(map[string]string)
	for _, f := range grid.fields() {
		if _, ok := values[f.ID]; ok {
			continue // first occurrence wins
		}
		if v, ok := initial[f.ID]; ok {
			values[f.ID] = v
		} else {
			values[f.ID] = f.Default
		}
	}
	return values
}
