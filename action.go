package gridprompt

import (
	"fmt"
)

// Scope selects which mode an action belongs to.
type Scope int

// Action scopes. Navigate-scope actions fire while moving between fields,
// edit-scope actions fire while a field is being edited.
const (
	ScopeNavigate Scope = iota
	ScopeEdit
)

// Builtin action names. An ActionConfig whose Func is nil must use one of
// these as its Name; the session supplies the behavior.
const (
	ActionEdit   = "edit"   // navigate: start editing the focused field
	ActionRemove = "remove" // navigate: clear the focused field's value
	ActionDone   = "done"   // navigate: validate everything and finish
	ActionSave   = "save"   // edit: commit the buffer and return to navigate
	ActionCancel = "cancel" // edit: discard the buffer and return to navigate
)

// ActionConfig declares one key binding.
//
// Key is a combo string such as "enter", "ctrl+s" or "Alt+Enter"; modifier
// and key spellings are normalized at configuration time and malformed combos
// reject the session. Func, when set, is a custom callback receiving the
// Controls surface; when nil, Name must be a builtin action name.
type ActionConfig struct {
	Scope      Scope
	Name       string
	Key        string
	DisplayKey string // Legend text for the key; defaults to the normalized combo
	Label      string // Legend text for the action; defaults to Name
	Func       func(Controls)
}

// action is a resolved binding: normalized combo plus a handler closure.
type action struct {
	scope      Scope
	name       string
	combo      string
	displayKey string
	label      string
	run        func(*Session)
}

// Builtin handlers are built by these functions so that every session gets
// fresh closures, never shared mutable defaults.

func editBuiltin() func(*Session) {
	return func(s *Session) {
		f, ok := s.CurrentField()
		if !ok {
			return
		}
		s.SetEditValue(s.Value(f.ID))
		s.SetEditMode(true)
	}
}

func removeBuiltin() func(*Session) {
	return func(s *Session) {
		if f, ok := s.CurrentField(); ok {
			s.SetValue(f.ID, "")
		}
	}
}

func doneBuiltin() func(*Session) {
	return func(s *Session) {
		if errs := s.sweep(); errs != nil {
			s.errors = errs
			return
		}
		s.errors = make(map[string]string)
		s.Done()
	}
}

func saveBuiltin() func(*Session) {
	return func(s *Session) {
		f, ok := s.CurrentField()
		if !ok {
			return
		}
		if _, failing := s.Error(f.ID); failing {
			return // refuse to commit a failing value; stay in edit mode
		}
		s.SetValue(f.ID, s.EditValue())
		s.SetEditValue("")
		s.SetEditMode(false)
	}
}

func cancelBuiltin() func(*Session) {
	return func(s *Session) {
		if f, ok := s.CurrentField(); ok {
			// The error described the discarded buffer, not the committed value.
			s.ClearError(f.ID)
		}
		s.SetEditValue("")
		s.SetEditMode(false)
	}
}

func builtinHandler(scope Scope, name string) (func(*Session), bool) {
	switch {
	case scope == ScopeNavigate && name == ActionEdit:
		return editBuiltin(), true
	case scope == ScopeNavigate && name == ActionRemove:
		return removeBuiltin(), true
	case scope == ScopeNavigate && name == ActionDone:
		return doneBuiltin(), true
	case scope == ScopeEdit && name == ActionSave:
		return saveBuiltin(), true
	case scope == ScopeEdit && name == ActionCancel:
		return cancelBuiltin(), true
	}
	return nil, false
}

// defaultActions returns the required bindings in their documented order.
// Fresh values on every call.
func defaultActions() []ActionConfig {
	return []ActionConfig{
		{Scope: ScopeEdit, Name: ActionSave, Key: "enter"},
		{Scope: ScopeEdit, Name: ActionCancel, Key: "escape", DisplayKey: "esc"},
		{Scope: ScopeNavigate, Name: ActionEdit, Key: "enter"},
		{Scope: ScopeNavigate, Name: ActionRemove, Key: "delete", DisplayKey: "del"},
		{Scope: ScopeNavigate, Name: ActionDone, Key: "alt+enter"},
	}
}

// parseActions resolves user bindings and appends a default for every builtin
// name the user did not claim. User actions keep registration order and come
// before defaults, so a user override always wins dispatch.
func parseActions(configs []ActionConfig) (editActions, navigateActions []action, err error) {
	var resolved []action
	claimed := make(map[Scope]map[string]bool)
	claimed[ScopeNavigate] = make(map[string]bool)
	claimed[ScopeEdit] = make(map[string]bool)

	resolve := func(cfg ActionConfig) (action, error) {
		combo, err := normalizeCombo(cfg.Key)
		if err != nil {
			return action{}, fmt.Errorf("action %q: %w", cfg.Name, err)
		}
		var run func(*Session)
		if cfg.Func != nil {
			fn := cfg.Func
			run = func(s *Session) { fn(s) }
		} else {
			handler, ok := builtinHandler(cfg.Scope, cfg.Name)
			if !ok {
				return action{}, fmt.Errorf("action %q has no callback and is not a builtin for its scope", cfg.Name)
			}
			run = handler
		}
		a := action{
			scope:      cfg.Scope,
			name:       cfg.Name,
			combo:      combo,
			displayKey: cfg.DisplayKey,
			label:      cfg.Label,
			run:        run,
		}
		if a.displayKey == "" {
			a.displayKey = combo
		}
		if a.label == "" {
			a.label = cfg.Name
		}
		return a, nil
	}

	for _, cfg := range configs {
		a, err := resolve(cfg)
		if err != nil {
			return nil, nil, err
		}
		if _, builtin := builtinHandler(cfg.Scope, cfg.Name); builtin || cfg.Func == nil {
			if claimed[cfg.Scope][cfg.Name] {
				return nil, nil, fmt.Errorf("builtin action %q bound twice in the same scope", cfg.Name)
			}
			claimed[cfg.Scope][cfg.Name] = true
		}
		resolved = append(resolved, a)
	}

	for _, cfg := range defaultActions() {
		if claimed[cfg.Scope][cfg.Name] {
			continue
		}
		a, err := resolve(cfg)
		if err != nil {
			return nil, nil, err
		}
		resolved = append(resolved, a)
	}

	for _, a := range resolved {
		if a.scope == ScopeEdit {
			editActions = append(editActions, a)
		} else {
			navigateActions = append(navigateActions, a)
		}
	}
	return editActions, navigateActions, nil
}

// match returns the first action whose combo equals the event's combo.
// At most one action fires per key event per scope.
func match(actions []action, ev KeyEvent) (action, bool) {
	combo := ev.combo()
	for _, a := range actions {
		if a.combo == combo {
			return a, true
		}
	}
	return action{}, false
}
