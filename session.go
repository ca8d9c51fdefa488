package gridprompt

import (
	"fmt"
	"strings"
)

// Controls is the capability surface handed to custom action callbacks.
//
// It exposes exactly the accessors an action needs and nothing else: actions
// never see the session's internal store, so the storage representation can
// change without breaking callbacks. All methods are synchronous and must be
// called only from within an action handler.
type Controls interface {
	// Committed values.
	Value(id string) string
	SetValue(id, value string)
	Values() map[string]string

	// Validation errors. A field is failing iff it has an entry.
	Error(id string) (string, bool)
	SetError(id, message string)
	ClearError(id string)

	// Mode and the in-progress edit buffer.
	EditMode() bool
	SetEditMode(on bool)
	EditValue() string
	SetEditValue(value string)

	// Cursor.
	Position() Position
	SetPosition(pos Position)
	CurrentField() (Field, bool)
	SetCurrentField(id string) bool

	// Done terminates the session with the current values. The builtin done
	// action validates first; calling Done directly skips the sweep.
	Done()
}

// Config holds the configuration for a grid session.
type Config struct {
	Fields        Grid              // Required: the field grid
	Renderer      *RenderConfig     // Template renderer; ignored when RenderFunc is set
	RenderFunc    RenderFunc        // Custom renderer with full control of the body
	InitialValues map[string]string // Optional per-field starting values
	Actions       []ActionConfig    // Extra or overriding key bindings
}

// Step is the outcome of handling one key event.
type Step struct {
	View    string            // The full frame to paint
	SetLine *string           // Non-nil: host must replace its raw input line with this text
	Done    bool              // Session finished successfully
	Values  map[string]string // Final values, set when Done
}

// Session is the navigation/edit state machine over one field grid.
//
// A session owns all mutable prompt state and processes key events strictly
// one at a time; it never blocks and never spawns goroutines. It has no
// terminal dependency: the bundled Prompt feeds it from a tty, and tests feed
// it KeyEvents directly.
type Session struct {
	grid            Grid
	render          RenderFunc
	errStyle        StyleFunc
	editActions     []action
	navigateActions []action

	values      map[string]string
	errors      map[string]string
	pos         Position
	editing     bool
	buffer      string
	done        bool
	pendingLine *string
}

// NewSession resolves the configuration into a running session. Duplicate
// field ids, malformed key combos, unknown style names and a missing renderer
// are configuration errors and reject the session.
func NewSession(config Config) (*Session, error) {
	if err := config.Fields.validate(); err != nil {
		return nil, fmt.Errorf("invalid field grid: %w", err)
	}

	render, err := resolveRenderer(config.Renderer, config.RenderFunc, config.Fields)
	if err != nil {
		return nil, fmt.Errorf("invalid renderer: %w", err)
	}
	if render == nil {
		return nil, fmt.Errorf("no renderer configured")
	}

	errStyle := defaultErrorStyle()
	if config.Renderer != nil {
		errStyle, err = resolveStyle(config.Renderer.ErrorStyle, defaultErrorStyle())
		if err != nil {
			return nil, fmt.Errorf("invalid renderer: %w", err)
		}
	}

	editActions, navigateActions, err := parseActions(config.Actions)
	if err != nil {
		return nil, fmt.Errorf("invalid actions: %w", err)
	}

	return &Session{
		grid:            config.Fields,
		render:          render,
		errStyle:        errStyle,
		editActions:     editActions,
		navigateActions: navigateActions,
		values:          seedValues(config.Fields, config.InitialValues),
		errors:          make(map[string]string),
	}, nil
}

// HandleKey processes one key event to completion and returns the resulting
// frame plus any host instructions. Events are handled strictly in order;
// there is no reentrancy.
//
// In navigate mode a bare arrow key moves the cursor and nothing else fires.
// In edit mode the transform/validate pipeline runs against the host's raw
// line on every keystroke, before any matched action, so an action on the
// same event observes the line being typed.
func (s *Session) HandleKey(ev KeyEvent) Step {
	s.pendingLine = nil

	if s.editing {
		if f, ok := s.CurrentField(); ok {
			value, err := applyInput(f, ev.Line)
			s.buffer = value
			if err != nil {
				s.errors[f.ID] = err.Error()
			} else {
				delete(s.errors, f.ID)
			}
		}
		if a, ok := match(s.editActions, ev); ok {
			a.run(s)
		}
	} else {
		if dir, ok := arrowDirection(ev); ok {
			s.pos = Move(s.grid, s.pos, dir)
		} else if a, ok := match(s.navigateActions, ev); ok {
			a.run(s)
		}
	}

	step := Step{View: s.View(), SetLine: s.pendingLine}
	if s.done {
		step.Done = true
		step.Values = s.Values()
	}
	return step
}

// View renders the current frame: the action legend for the active scope, a
// blank line, the body, a trailing error list when any field is failing, and
// the cursor-hide sequence outside edit mode.
func (s *Session) View() string {
	actions := s.navigateActions
	if s.editing {
		actions = s.editActions
	}

	var b strings.Builder
	b.WriteString(legend(actions))
	b.WriteString("\n\n")
	b.WriteString(s.render(s.displayValues(), s.editing, s.errorIDs(), s.focusedID()))
	if len(s.errors) > 0 {
		b.WriteString(formatErrors(s.errors, s.errStyle))
	}
	if !s.editing {
		b.WriteString(hideCursor)
	}
	return b.String()
}

// displayValues is the value map handed to the renderer: committed values,
// with the focused field showing the transformed edit buffer while editing.
func (s *Session) displayValues() map[string]string {
	values := s.Values()
	if s.editing {
		if f, ok := s.CurrentField(); ok {
			values[f.ID] = s.buffer
		}
	}
	return values
}

func (s *Session) errorIDs() []string {
	ids := make([]string, 0, len(s.errors))
	for id := range s.errors {
		ids = append(ids, id)
	}
	return ids
}

func (s *Session) focusedID() string {
	if f, ok := s.CurrentField(); ok {
		return f.ID
	}
	return ""
}

// sweep runs the full-grid validation over committed values.
func (s *Session) sweep() map[string]string {
	return sweepErrors(s.grid, s.values)
}

// Controls implementation. The session is its own control surface; builtin
// and custom actions mutate state only through these methods.

// Value returns the committed value for a field id.
func (s *Session) Value(id string) string { return s.values[id] }

// SetValue commits a value for a field id.
func (s *Session) SetValue(id, value string) { s.values[id] = value }

// Values returns a copy of the committed value map.
func (s *Session) Values() map[string]string {
	values := make(map[string]string, len(s.values))
	for id, v := range s.values {
		values[id] = v
	}
	return values
}

// Error returns the recorded validation message for a field, if any.
func (s *Session) Error(id string) (string, bool) {
	msg, ok := s.errors[id]
	return msg, ok
}

// SetError records a validation message for a field.
func (s *Session) SetError(id, message string) { s.errors[id] = message }

// ClearError removes a field's validation entry.
func (s *Session) ClearError(id string) { delete(s.errors, id) }

// EditMode reports whether a field is currently being edited.
func (s *Session) EditMode() bool { return s.editing }

// SetEditMode switches between navigate and edit mode. Entering edit mode
// instructs the host to seed its raw line with the edit buffer; leaving it
// instructs the host to clear the line.
func (s *Session) SetEditMode(on bool) {
	if s.editing == on {
		return
	}
	s.editing = on
	line := ""
	if on {
		line = s.buffer
	}
	s.pendingLine = &line
}

// EditValue returns the in-progress edit buffer.
func (s *Session) EditValue() string { return s.buffer }

// SetEditValue replaces the in-progress edit buffer.
func (s *Session) SetEditValue(value string) { s.buffer = value }

// Position returns the cursor position.
func (s *Session) Position() Position { return s.pos }

// SetPosition moves the cursor. Positions that index no field are ignored.
func (s *Session) SetPosition(pos Position) {
	if _, ok := s.grid.FieldAt(pos); ok {
		s.pos = pos
	}
}

// CurrentField returns the field under the cursor.
func (s *Session) CurrentField() (Field, bool) { return s.grid.FieldAt(s.pos) }

// SetCurrentField moves the cursor to the first field with the given id and
// reports whether it was found.
func (s *Session) SetCurrentField(id string) bool {
	pos, ok := s.grid.Find(id)
	if ok {
		s.pos = pos
	}
	return ok
}

// Done marks the session finished with the current values.
func (s *Session) Done() { s.done = true }
