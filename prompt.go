package gridprompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/mattn/go-colorable"
)

// Common errors
var (
	// ErrEOF is returned when the user presses Ctrl+D on an empty line or the
	// terminal reports EOF
	ErrEOF = errors.New("EOF")
	// ErrInterrupted is returned when the user presses Ctrl+C
	ErrInterrupted = errors.New("interrupted")
)

// Prompt is the terminal host for a grid session: it owns the tty, decodes
// raw input into key events, maintains the raw edit line the session reads,
// and paints one frame per event.
type Prompt struct {
	config    Config
	session   *Session
	output    io.Writer
	terminal  terminalInterface
	line      []rune
	cursor    int
	lastLines int
}

// Option represents a configuration option for the prompt
type Option func(*Config)

// WithTemplate sets the template renderer with default styles.
//
// Example:
//
//	p, err := gridprompt.New(fields,
//		gridprompt.WithTemplate("{type}({scope}): {subject}"),
//	)
func WithTemplate(template string) Option {
	return func(c *Config) {
		c.Renderer = &RenderConfig{Template: template}
	}
}

// WithRenderer sets the full template renderer configuration, including the
// per-state style selectors.
func WithRenderer(renderer *RenderConfig) Option {
	return func(c *Config) {
		c.Renderer = renderer
	}
}

// WithRenderFunc sets a custom render function. It takes precedence over any
// template configuration.
func WithRenderFunc(fn RenderFunc) Option {
	return func(c *Config) {
		c.RenderFunc = fn
	}
}

// WithActions adds key bindings. Builtin names the caller does not bind keep
// their default keys.
//
// Example:
//
//	gridprompt.WithActions(gridprompt.ActionConfig{
//		Scope: gridprompt.ScopeNavigate,
//		Name:  gridprompt.ActionDone,
//		Key:   "ctrl+s",
//	})
func WithActions(actions ...ActionConfig) Option {
	return func(c *Config) {
		c.Actions = append(c.Actions, actions...)
	}
}

// WithInitialValues sets starting values for fields by id. They take
// precedence over field defaults.
func WithInitialValues(values map[string]string) Option {
	return func(c *Config) {
		c.InitialValues = values
	}
}

// New creates a prompt over the given field grid.
//
// Example:
//
//	fields := gridprompt.Grid{
//		{{ID: "type", Required: true}, {ID: "scope"}},
//		{{ID: "subject", Required: true}},
//	}
//	p, err := gridprompt.New(fields, gridprompt.WithTemplate("{type}({scope}): {subject}"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer p.Close()
//
//	values, err := p.Run()
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(values["subject"])
func New(fields Grid, options ...Option) (*Prompt, error) {
	config := Config{Fields: fields}
	for _, option := range options {
		option(&config)
	}
	return newFromConfig(config)
}

func newFromConfig(config Config) (*Prompt, error) {
	session, err := NewSession(config)
	if err != nil {
		return nil, err
	}

	var output io.Writer = os.Stdout
	if runtime.GOOS == "windows" {
		// Use colorable for Windows ANSI color support
		output = colorable.NewColorableStdout()
	}

	terminal, err := newRealTerminal()
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal: %w", err)
	}

	return &Prompt{
		config:   config,
		session:  session,
		output:   output,
		terminal: terminal,
	}, nil
}

// Run starts the interactive prompt and returns the final field values once
// every required field is filled and every validator passes.
func (p *Prompt) Run() (map[string]string, error) {
	return p.RunWithContext(context.Background())
}

// RunWithContext starts the interactive prompt with context support. The
// prompt can be cancelled via the provided context between key events.
func (p *Prompt) RunWithContext(ctx context.Context) (map[string]string, error) {
	if err := p.terminal.SetRaw(); err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}

	restored := false
	defer func() {
		if !restored {
			if err := p.terminal.Restore(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to exit raw mode: %v\n", err)
			}
		}
	}()

	p.line = nil
	p.cursor = 0
	p.paint(p.session.View())

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		ev, err := p.readKeyEvent()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrEOF
			}
			return nil, fmt.Errorf("failed to read input: %w", err)
		}

		if ev.Ctrl && strings.EqualFold(ev.Key, "c") {
			if err := p.terminal.Restore(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to restore terminal state: %v\n", err)
			}
			restored = true
			fmt.Fprint(p.output, "^C\r\n")
			return nil, ErrInterrupted
		}
		if ev.Ctrl && strings.EqualFold(ev.Key, "d") && len(p.line) == 0 {
			return nil, ErrEOF
		}

		// The host owns raw line editing; the session only reads the result.
		if p.session.EditMode() {
			p.editLine(ev)
		}
		ev.Line = string(p.line)

		step := p.session.HandleKey(ev)
		if step.SetLine != nil {
			p.line = []rune(*step.SetLine)
			p.cursor = len(p.line)
		}
		p.paint(step.View)

		if step.Done {
			fmt.Fprint(p.output, "\r\n")
			return step.Values, nil
		}
	}
}

// Close restores cursor visibility and releases terminal resources. It is
// safe to call Close multiple times.
func (p *Prompt) Close() error {
	if p.output != nil {
		fmt.Fprint(p.output, showCursor)
		fmt.Fprint(p.output, "\n")
	}
	if p.terminal != nil {
		return p.terminal.Close()
	}
	return nil
}

// Session returns the underlying state machine, for hosts that want to drive
// it directly.
func (p *Prompt) Session() *Session {
	return p.session
}

// editLine applies one keystroke to the raw input line while in edit mode.
func (p *Prompt) editLine(ev KeyEvent) {
	if ev.Ctrl {
		switch strings.ToLower(ev.Key) {
		case "a":
			p.cursor = 0
		case "e":
			p.cursor = len(p.line)
		case "u":
			p.line = nil
			p.cursor = 0
		}
		return
	}
	if ev.Alt {
		if ev.Key == "enter" {
			if f, ok := p.session.CurrentField(); ok && f.Multiline {
				p.insertRune('\n')
			}
		}
		return
	}
	switch ev.Key {
	case "backspace":
		if p.cursor > 0 {
			p.line = append(p.line[:p.cursor-1], p.line[p.cursor:]...)
			p.cursor--
		}
	case "delete":
		if p.cursor < len(p.line) {
			p.line = append(p.line[:p.cursor], p.line[p.cursor+1:]...)
		}
	case "left":
		if p.cursor > 0 {
			p.cursor--
		}
	case "right":
		if p.cursor < len(p.line) {
			p.cursor++
		}
	case "home":
		p.cursor = 0
	case "end":
		p.cursor = len(p.line)
	default:
		runes := []rune(ev.Key)
		if len(runes) == 1 && runes[0] >= 32 {
			p.insertRune(runes[0])
		}
	}
}

func (p *Prompt) insertRune(r rune) {
	p.line = append(p.line[:p.cursor], append([]rune{r}, p.line[p.cursor:]...)...)
	p.cursor++
}

// paint replaces the previously drawn frame with view. Frames are written
// with \r\n line endings because the terminal is in raw mode.
func (p *Prompt) paint(view string) {
	if p.lastLines > 1 {
		fmt.Fprintf(p.output, "\x1b[%dA", p.lastLines-1)
	}
	fmt.Fprint(p.output, "\r\x1b[J")
	fmt.Fprint(p.output, showCursor)

	lines := strings.Split(view, "\n")
	fmt.Fprint(p.output, strings.Join(lines, "\r\n"))
	p.lastLines = len(lines)
}

func (p *Prompt) readRune() (rune, error) {
	r, _, err := p.terminal.ReadRune()
	return r, err
}

// readKeyEvent decodes one keystroke, including escape sequences, into a
// KeyEvent. A lone ESC with no buffered input is the escape key.
func (p *Prompt) readKeyEvent() (KeyEvent, error) {
	r, err := p.readRune()
	if err != nil {
		return KeyEvent{}, err
	}

	switch r {
	case '\x1b':
		if !p.terminal.Buffered() {
			return KeyEvent{Key: "escape"}, nil
		}
		r2, err := p.readRune()
		if err != nil {
			return KeyEvent{Key: "escape"}, nil
		}
		switch {
		case r2 == '\r' || r2 == '\n':
			return KeyEvent{Key: "enter", Alt: true}, nil
		case r2 == '[':
			seq, err := p.readCSI()
			if err != nil {
				return KeyEvent{}, err
			}
			return decodeCSI(seq), nil
		default:
			return KeyEvent{Key: string(r2), Alt: true}, nil
		}
	case '\r', '\n':
		return KeyEvent{Key: "enter"}, nil
	case '\t':
		return KeyEvent{Key: "tab"}, nil
	case '\x7f', '\b':
		return KeyEvent{Key: "backspace"}, nil
	}

	if r < 32 {
		// Control characters map back to their letter: 0x01 is Ctrl+A.
		return KeyEvent{Key: string('a' + r - 1), Ctrl: true}, nil
	}
	return KeyEvent{Key: string(r)}, nil
}

// readCSI reads the remainder of a CSI sequence after "ESC [" up to its
// terminating byte. Bounded to prevent runaway reads on garbage input.
func (p *Prompt) readCSI() (string, error) {
	seq := make([]rune, 0, 8)
	for i := 0; i < 8; i++ {
		r, err := p.readRune()
		if err != nil {
			return string(seq), err
		}
		seq = append(seq, r)
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r == '~' {
			break
		}
	}
	return string(seq), nil
}

func decodeCSI(seq string) KeyEvent {
	switch seq {
	case "A":
		return KeyEvent{Key: "up"}
	case "B":
		return KeyEvent{Key: "down"}
	case "C":
		return KeyEvent{Key: "right"}
	case "D":
		return KeyEvent{Key: "left"}
	case "H":
		return KeyEvent{Key: "home"}
	case "F":
		return KeyEvent{Key: "end"}
	case "Z":
		return KeyEvent{Key: "tab", Shift: true}
	case "3~":
		return KeyEvent{Key: "delete"}
	case "1;5C":
		return KeyEvent{Key: "right", Ctrl: true}
	case "1;5D":
		return KeyEvent{Key: "left", Ctrl: true}
	case "1;3C":
		return KeyEvent{Key: "right", Alt: true}
	case "1;3D":
		return KeyEvent{Key: "left", Alt: true}
	}
	// Unknown sequences fall through as no-op keys.
	return KeyEvent{Key: "csi:" + seq}
}
