// Package console is the terminal front end: it prints the events a viewer
// may see and asks the interactive participant for decisions.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aaronzipp/werewolf/internal/events"
	"github.com/aaronzipp/werewolf/internal/players"
	"github.com/aaronzipp/werewolf/internal/render"
)

var (
	// ErrCancelled is returned when the person backs out of a prompt
	ErrCancelled = errors.New("console: prompt cancelled")
	// ErrInterrupted is returned after ctrl+c
	ErrInterrupted = errors.New("console: interrupted")
)

// Printer writes rendered events for one viewer
type Printer struct {
	mu     sync.Mutex
	out    io.Writer
	viewer events.Viewer
}

var _ events.Listener = (*Printer)(nil)

func NewPrinter(out io.Writer, viewer events.Viewer) *Printer {
	return &Printer{out: out, viewer: viewer}
}

func (p *Printer) Handle(ev events.Event) {
	line := render.Event(ev, p.viewer)
	if line == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, line)
}

// Prompter runs one bubbletea program per question. Only one prompt is
// shown at a time.
type Prompter struct {
	mu        sync.Mutex
	in        io.Reader
	out       io.Writer
	interrupt func()
}

var _ players.Prompter = (*Prompter)(nil)

// NewPrompter reads keys from in and draws on out. interrupt, when set, is
// called on ctrl+c, since the terminal is in raw mode and no signal arrives.
func NewPrompter(in io.Reader, out io.Writer, interrupt func()) *Prompter {
	return &Prompter{in: in, out: out, interrupt: interrupt}
}

func (p *Prompter) interrupted() error {
	if p.interrupt != nil {
		p.interrupt()
	}
	return ErrInterrupted
}

func (p *Prompter) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	final, err := tea.NewProgram(m,
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
		tea.WithContext(ctx),
	).Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("run prompt: %w", err)
	}
	return final, nil
}

func (p *Prompter) Choose(ctx context.Context, title string, options []players.Option) (int, error) {
	final, err := p.run(ctx, newMenuModel(title, options))
	if err != nil {
		return 0, err
	}
	m := final.(menuModel)
	if m.interrupted {
		return 0, p.interrupted()
	}
	value, ok := m.value()
	if !ok {
		return 0, ErrCancelled
	}
	return value, nil
}

func (p *Prompter) Ask(ctx context.Context, title string) (string, error) {
	final, err := p.run(ctx, newTextModel(title))
	if err != nil {
		return "", err
	}
	m := final.(textModel)
	if m.interrupted {
		return "", p.interrupted()
	}
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.input, nil
}
