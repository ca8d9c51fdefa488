package gridprompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActionsDefaults(t *testing.T) {
	t.Parallel()

	edit, navigate, err := parseActions(nil)
	require.NoError(t, err)

	require.Len(t, edit, 2)
	assert.Equal(t, ActionSave, edit[0].name)
	assert.Equal(t, "enter", edit[0].combo)
	assert.Equal(t, ActionCancel, edit[1].name)
	assert.Equal(t, "escape", edit[1].combo)

	require.Len(t, navigate, 3)
	assert.Equal(t, ActionEdit, navigate[0].name)
	assert.Equal(t, "enter", navigate[0].combo)
	assert.Equal(t, ActionRemove, navigate[1].name)
	assert.Equal(t, "delete", navigate[1].combo)
	assert.Equal(t, ActionDone, navigate[2].name)
	assert.Equal(t, "alt+enter", navigate[2].combo)
}

func TestParseActionsUserOverrideSuppressesDefault(t *testing.T) {
	t.Parallel()

	_, navigate, err := parseActions([]ActionConfig{
		{Scope: ScopeNavigate, Name: ActionDone, Key: "ctrl+s"},
	})
	require.NoError(t, err)

	var done []action
	for _, a := range navigate {
		if a.name == ActionDone {
			done = append(done, a)
		}
	}
	require.Len(t, done, 1, "override must not gain a second done action")
	assert.Equal(t, "ctrl+s", done[0].combo)
}

func TestParseActionsCustomCallback(t *testing.T) {
	t.Parallel()

	called := false
	edit, navigate, err := parseActions([]ActionConfig{
		{
			Scope: ScopeNavigate,
			Name:  "log",
			Key:   "ctrl+l",
			Func:  func(Controls) { called = true },
		},
	})
	require.NoError(t, err)
	assert.Len(t, edit, 2)
	require.Len(t, navigate, 4)

	navigate[0].run(nil)
	assert.True(t, called)
}

func TestParseActionsErrors(t *testing.T) {
	t.Parallel()

	// Builtin name without a callback must be known for its scope.
	_, _, err := parseActions([]ActionConfig{
		{Scope: ScopeEdit, Name: "frobnicate", Key: "ctrl+f"},
	})
	assert.Error(t, err)

	// Malformed key combo.
	_, _, err = parseActions([]ActionConfig{
		{Scope: ScopeEdit, Name: ActionSave, Key: "ctrl+"},
	})
	assert.Error(t, err)

	// A builtin tag may be claimed at most once per scope.
	_, _, err = parseActions([]ActionConfig{
		{Scope: ScopeNavigate, Name: ActionDone, Key: "ctrl+s"},
		{Scope: ScopeNavigate, Name: ActionDone, Key: "ctrl+d"},
	})
	assert.Error(t, err)
}

func TestParseActionsLegendDefaults(t *testing.T) {
	t.Parallel()

	edit, _, err := parseActions([]ActionConfig{
		{Scope: ScopeEdit, Name: ActionSave, Key: "ctrl+s", DisplayKey: "^S", Label: "write"},
	})
	require.NoError(t, err)

	assert.Equal(t, "^S", edit[0].displayKey)
	assert.Equal(t, "write", edit[0].label)

	// Defaults derive the legend from the combo and name.
	assert.Equal(t, "esc", edit[1].displayKey)
	assert.Equal(t, ActionCancel, edit[1].label)
}

func TestMatchFirstWins(t *testing.T) {
	t.Parallel()

	first := action{name: "first", combo: "ctrl+x"}
	second := action{name: "second", combo: "ctrl+x"}

	got, ok := match([]action{first, second}, KeyEvent{Key: "x", Ctrl: true})
	require.True(t, ok)
	assert.Equal(t, "first", got.name)

	_, ok = match([]action{first, second}, KeyEvent{Key: "y", Ctrl: true})
	assert.False(t, ok)
}

func TestBuiltinBuildersReturnFreshClosures(t *testing.T) {
	t.Parallel()

	a := doneBuiltin()
	b := doneBuiltin()
	assert.NotNil(t, a)
	assert.NotNil(t, b)

	// Two sessions must never share default action state.
	cfgs := defaultActions()
	cfgs[0].Key = "ctrl+z"
	assert.Equal(t, "enter", defaultActions()[0].Key)
}
