package gridprompt

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	keyEnter    = KeyEvent{Key: "enter"}
	keyEscape   = KeyEvent{Key: "escape"}
	keyDelete   = KeyEvent{Key: "delete"}
	keyAltEnter = KeyEvent{Key: "enter", Alt: true}
)

func newCommitSession(t *testing.T, options ...Option) *Session {
	t.Helper()
	config := Config{
		Fields:   commitGrid(),
		Renderer: &RenderConfig{Template: "{type}({scope}): {subject}"},
	}
	for _, option := range options {
		option(&config)
	}
	s, err := NewSession(config)
	require.NoError(t, err)
	return s
}

func TestNewSessionConfigurationErrors(t *testing.T) {
	t.Parallel()

	_, err := NewSession(Config{Fields: commitGrid()})
	assert.Error(t, err, "a session without any renderer must be rejected")

	_, err = NewSession(Config{
		Fields:   Grid{{{ID: "a"}, {ID: "a"}}},
		Renderer: &RenderConfig{Template: "{a}"},
	})
	assert.Error(t, err, "duplicate ids must be rejected")

	_, err = NewSession(Config{
		Fields:   commitGrid(),
		Renderer: &RenderConfig{Template: "{type}"},
		Actions:  []ActionConfig{{Scope: ScopeEdit, Name: ActionSave, Key: "+"}},
	})
	assert.Error(t, err, "malformed combos must be rejected")
}

func TestSessionEditLifecycle(t *testing.T) {
	t.Parallel()

	s := newCommitSession(t, WithInitialValues(map[string]string{"type": "v"}))

	// Entering edit seeds the buffer and the host line with the committed value.
	step := s.HandleKey(keyEnter)
	assert.True(t, s.EditMode())
	assert.Equal(t, "v", s.EditValue())
	require.NotNil(t, step.SetLine)
	assert.Equal(t, "v", *step.SetLine)

	// Keystrokes refresh the buffer from the host's raw line.
	s.HandleKey(KeyEvent{Key: "a", Line: "va"})
	assert.Equal(t, "va", s.EditValue())

	// Cancel discards the buffer and keeps the committed value.
	step = s.HandleKey(KeyEvent{Key: "escape", Line: "va"})
	assert.False(t, s.EditMode())
	assert.Equal(t, "v", s.Value("type"))
	assert.Equal(t, "", s.EditValue())
	require.NotNil(t, step.SetLine)
	assert.Equal(t, "", *step.SetLine)
	assert.False(t, step.Done)
}

func TestSessionSaveCommitsBuffer(t *testing.T) {
	t.Parallel()

	s := newCommitSession(t)
	s.HandleKey(keyEnter)
	s.HandleKey(KeyEvent{Key: "t", Line: "feat"})

	step := s.HandleKey(KeyEvent{Key: "enter", Line: "feat"})
	assert.False(t, s.EditMode())
	assert.Equal(t, "feat", s.Value("type"))
	assert.False(t, step.Done)
}

func TestSessionSaveRefusedWhileFailing(t *testing.T) {
	t.Parallel()

	grid := Grid{{{
		ID:       "subject",
		Required: true,
		Validate: func(v string) error {
			if len(v) < 3 {
				return fmt.Errorf("subject too short")
			}
			return nil
		},
	}}}
	s, err := NewSession(Config{Fields: grid, Renderer: &RenderConfig{Template: "{subject}"}})
	require.NoError(t, err)

	s.HandleKey(keyEnter)
	s.HandleKey(KeyEvent{Key: "b", Line: "ab"})
	_, failing := s.Error("subject")
	assert.True(t, failing)

	// Save is refused: no commit, no mode change.
	s.HandleKey(KeyEvent{Key: "enter", Line: "ab"})
	assert.True(t, s.EditMode())
	assert.Equal(t, "", s.Value("subject"))

	// Once the line passes, the same keystroke saves.
	s.HandleKey(KeyEvent{Key: "enter", Line: "abc"})
	assert.False(t, s.EditMode())
	assert.Equal(t, "abc", s.Value("subject"))
	_, failing = s.Error("subject")
	assert.False(t, failing)
}

func TestSessionTransformerShapesBuffer(t *testing.T) {
	t.Parallel()

	grid := Grid{{{ID: "type", Transform: strings.ToLower}}}
	s, err := NewSession(Config{Fields: grid, Renderer: &RenderConfig{Template: "{type}"}})
	require.NoError(t, err)

	s.HandleKey(keyEnter)
	s.HandleKey(KeyEvent{Key: "T", Line: "FEAT"})
	assert.Equal(t, "feat", s.EditValue(), "the stored edit value is the transformed candidate")

	s.HandleKey(KeyEvent{Key: "enter", Line: "FEAT"})
	assert.Equal(t, "feat", s.Value("type"))
}

func TestSessionRemoveClearsValue(t *testing.T) {
	t.Parallel()

	s := newCommitSession(t, WithInitialValues(map[string]string{"type": "feat"}))
	s.HandleKey(keyDelete)
	assert.Equal(t, "", s.Value("type"))

	// The id keeps its entry; remove never deletes the key.
	_, ok := s.Values()["type"]
	assert.True(t, ok)
	assert.False(t, s.EditMode())
}

func TestSessionDoneBlockedByValidation(t *testing.T) {
	t.Parallel()

	s := newCommitSession(t, WithInitialValues(map[string]string{"type": "feat"}))

	step := s.HandleKey(keyAltEnter)
	assert.False(t, step.Done)
	msg, failing := s.Error("subject")
	require.True(t, failing)
	assert.Equal(t, "subject is required", msg)
	assert.Contains(t, step.View, "subject is required")

	// Repeating the sweep neither accumulates nor duplicates.
	first := map[string]string{}
	for id := range s.errors {
		first[id] = s.errors[id]
	}
	s.HandleKey(keyAltEnter)
	assert.Equal(t, first, s.errors)
}

func TestSessionDoneReturnsValues(t *testing.T) {
	t.Parallel()

	s := newCommitSession(t, WithInitialValues(map[string]string{
		"type":    "feat",
		"subject": "fix bug",
	}))

	step := s.HandleKey(keyAltEnter)
	require.True(t, step.Done)
	assert.Equal(t, map[string]string{
		"type":    "feat",
		"scope":   "",
		"subject": "fix bug",
	}, step.Values)
}

func TestSessionDoneClearsStaleErrors(t *testing.T) {
	t.Parallel()

	s := newCommitSession(t, WithInitialValues(map[string]string{"type": "feat"}))
	s.HandleKey(keyAltEnter)
	_, failing := s.Error("subject")
	require.True(t, failing)

	s.SetValue("subject", "fix bug")
	step := s.HandleKey(keyAltEnter)
	assert.True(t, step.Done)
	_, failing = s.Error("subject")
	assert.False(t, failing)
}

func TestSessionArrowBeatsBoundAction(t *testing.T) {
	t.Parallel()

	fired := false
	s := newCommitSession(t, WithActions(ActionConfig{
		Scope: ScopeNavigate,
		Name:  "trap",
		Key:   "left",
		Func:  func(Controls) { fired = true },
	}))

	s.HandleKey(KeyEvent{Key: "left"})
	assert.False(t, fired, "a bare arrow key must only navigate")
	assert.Equal(t, Position{Row: 0, Col: 1}, s.Position(), "left from col 0 wraps in-row")
}

func TestSessionNavigation(t *testing.T) {
	t.Parallel()

	s := newCommitSession(t)
	s.HandleKey(KeyEvent{Key: "right"})
	assert.Equal(t, Position{Row: 0, Col: 1}, s.Position())
	s.HandleKey(KeyEvent{Key: "down"})
	assert.Equal(t, Position{Row: 1, Col: 0}, s.Position(), "column clamps into the shorter row")
	s.HandleKey(KeyEvent{Key: "down"})
	assert.Equal(t, Position{Row: 0, Col: 0}, s.Position(), "down from the last row wraps")
}

func TestSessionCustomActionControls(t *testing.T) {
	t.Parallel()

	s := newCommitSession(t, WithActions(ActionConfig{
		Scope: ScopeNavigate,
		Name:  "jump-subject",
		Key:   "ctrl+j",
		Func: func(c Controls) {
			if !c.SetCurrentField("subject") {
				c.SetError("subject", "missing field")
				return
			}
			c.SetValue("subject", "from action")
		},
	}))

	s.HandleKey(KeyEvent{Key: "j", Ctrl: true})
	f, ok := s.CurrentField()
	require.True(t, ok)
	assert.Equal(t, "subject", f.ID)
	assert.Equal(t, "from action", s.Value("subject"))
}

func TestSessionUnmatchedKeyIsNoOp(t *testing.T) {
	t.Parallel()

	s := newCommitSession(t, WithInitialValues(map[string]string{"type": "feat"}))
	before := s.Values()

	step := s.HandleKey(KeyEvent{Key: "q"})
	assert.Equal(t, before, s.Values())
	assert.False(t, s.EditMode())
	assert.False(t, step.Done)
}

func TestSessionViewFrame(t *testing.T) {
	t.Parallel()

	s := newCommitSession(t, WithInitialValues(map[string]string{"type": "feat"}))

	view := s.View()
	lines := strings.Split(view, "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, lines[0], "enter edit")
	assert.Contains(t, lines[0], "alt+enter done")
	assert.Equal(t, "", lines[1], "legend and body are separated by a blank line")
	assert.Contains(t, view, "feat")
	assert.True(t, strings.HasSuffix(view, hideCursor), "navigate mode hides the cursor")

	s.HandleKey(keyEnter)
	view = s.View()
	assert.Contains(t, view, "enter save")
	assert.Contains(t, view, "esc cancel")
	assert.False(t, strings.Contains(view, hideCursor), "edit mode leaves the cursor visible")
}

func TestSessionViewShowsEditBuffer(t *testing.T) {
	t.Parallel()

	s := newCommitSession(t)
	s.HandleKey(keyEnter)
	step := s.HandleKey(KeyEvent{Key: "x", Line: "fix"})
	assert.Contains(t, step.View, "fix", "the focused field displays the in-progress buffer")
	assert.Equal(t, "", s.Value("type"), "nothing is committed until save")
}

func TestSessionValidatorFaultPropagates(t *testing.T) {
	t.Parallel()

	grid := Grid{{{ID: "boom", Validate: func(string) error { panic("callback fault") }}}}
	s, err := NewSession(Config{Fields: grid, Renderer: &RenderConfig{Template: "{boom}"}})
	require.NoError(t, err)

	s.HandleKey(keyEnter)
	assert.Panics(t, func() {
		s.HandleKey(KeyEvent{Key: "x", Line: "x"})
	}, "throwing callbacks are caller bugs and are not caught")
}

func TestSessionErrorsAreDataNotFaults(t *testing.T) {
	t.Parallel()

	grid := Grid{{{ID: "n", Validate: func(v string) error {
		if v != "" && strings.ContainsAny(v, "abcdefghijklmnopqrstuvwxyz") {
			return errors.New("n must be numeric")
		}
		return nil
	}}}}
	s, err := NewSession(Config{Fields: grid, Renderer: &RenderConfig{Template: "{n}"}})
	require.NoError(t, err)

	s.HandleKey(keyEnter)
	step := s.HandleKey(KeyEvent{Key: "x", Line: "x1"})
	msg, failing := s.Error("n")
	assert.True(t, failing)
	assert.Equal(t, "n must be numeric", msg)
	assert.Contains(t, step.View, "n must be numeric")

	// A passing keystroke clears the entry entirely.
	s.HandleKey(KeyEvent{Key: "1", Line: "11"})
	_, failing = s.Error("n")
	assert.False(t, failing)
}
