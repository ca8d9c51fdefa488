// Package gridprompt provides an embeddable, interactive text-composition
// engine for terminal prompts.
//
// A caller defines a 2-D grid of named fields, moves between them with the
// arrow keys, and edits one field at a time with live validation. The
// composed result is rendered through a template or a custom render
// function, so the library suits structured multi-part inputs such as
// commit-message builders and form-like CLI prompts.
//
// Quick Start:
//
//	fields := gridprompt.Grid{
//		{{ID: "type", Required: true}, {ID: "scope"}},
//		{{ID: "subject", Required: true}},
//	}
//
//	p, err := gridprompt.New(fields,
//		gridprompt.WithTemplate("{type}({scope}): {subject}"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer p.Close()
//
//	values, err := p.Run()
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%s(%s): %s\n", values["type"], values["scope"], values["subject"])
//
// Modes and Key Bindings:
//
// The prompt has two modes. In navigate mode the arrow keys move between
// fields; in edit mode keystrokes edit the focused field's value. The
// default bindings are:
//
//   - Enter (navigate): start editing the focused field
//   - Delete (navigate): clear the focused field's value
//   - Alt+Enter (navigate): validate every field and finish
//   - Enter (edit): save the edited value
//   - Escape (edit): discard the edited value
//   - Ctrl+C: cancel and return ErrInterrupted
//
// Bindings are declared with ActionConfig values; user bindings for a builtin
// name replace its default, and callbacks receive the Controls surface:
//
//	gridprompt.WithActions(gridprompt.ActionConfig{
//		Scope: gridprompt.ScopeNavigate,
//		Name:  "clear-all",
//		Key:   "ctrl+x",
//		Func: func(c gridprompt.Controls) {
//			for id := range c.Values() {
//				c.SetValue(id, "")
//			}
//		},
//	})
//
// Validation:
//
// Each field may carry a Transform (applied to every keystroke's input) and a
// Validate function. Validation failures are data, not faults: they show up
// beneath the rendered body, block saving the failing field, and block
// finishing the session. Validators and transformers must be synchronous,
// side-effect-free total functions; a panicking callback is a programmer
// error and aborts the session.
//
// Embedding:
//
// Session is the bare state machine without any terminal attached. Hosts with
// their own input loop construct one with NewSession and feed it KeyEvent
// values; every HandleKey call returns the frame to paint and any
// instructions for the host's raw input line.
//
// Thread Safety:
//
// Prompt and Session instances are not thread-safe; drive each from a single
// goroutine. A running prompt can be cancelled from another goroutine through
// context cancellation.
//
// Resource Management:
//
// Always call Close() when done with a prompt to restore the cursor and
// release the terminal. Close is safe to call multiple times and should be
// called even if Run returns an error.
package gridprompt
