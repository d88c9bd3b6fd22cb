package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/example/finance-calculator/modules/calculator"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
)

// Module runs the interactive command loop over an input and output stream.
type Module struct {
	in       io.Reader
	out      io.Writer
	theme    string
	color    bool
	calcPort calculator.CalculatorPort
	console  *Console
	logger   types.Logger

	stopChan chan struct{}
	doneChan chan struct{}
	stopOnce sync.Once
	started  bool
}

// Compile-time interface checks
var (
	_ mono.Module          = (*Module)(nil)
	_ mono.DependentModule = (*Module)(nil)
)

// NewModule creates a console reading commands from in and writing to out.
// Colour is enabled when out is a terminal.
func NewModule(in io.Reader, out io.Writer, theme string, logger types.Logger) *Module {
	return &Module{
		in:       in,
		out:      out,
		theme:    theme,
		color:    colorEnabled(out),
		logger:   logger,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "console"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"calculator"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "calculator" {
		m.calcPort = calculator.NewCalculatorAdapter(container)
	}
}

// Done is closed when the session ends, either on quit or end of input.
func (m *Module) Done() <-chan struct{} {
	return m.doneChan
}

// Start launches the command loop.
func (m *Module) Start(_ context.Context) error {
	if m.calcPort == nil {
		return fmt.Errorf("calculator dependency not set")
	}

	m.console = NewConsole(m.calcPort, m.out, m.theme, m.color)
	m.started = true
	go m.run()

	m.logger.Info("Console module started", "theme", m.theme, "color", m.color)
	return nil
}

// run reads lines until quit, end of input or Stop.
func (m *Module) run() {
	defer close(m.doneChan)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lines := make(chan string)
	go m.scan(lines)

	fmt.Fprintln(m.out, "Finance calculator. Type 'help' for commands.")
	for {
		m.console.Prompt()

		select {
		case <-m.stopChan:
			return
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(m.out)
				return
			}
			if m.console.Execute(ctx, line) {
				return
			}
		}
	}
}

// scan feeds input lines to the loop. It may stay blocked on a read after the
// loop has ended; the process exit reclaims it.
func (m *Module) scan(lines chan<- string) {
	defer close(lines)

	scanner := bufio.NewScanner(m.in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-m.stopChan:
			return
		case <-m.doneChan:
			return
		}
	}
	if err := scanner.Err(); err != nil {
		m.logger.Error("Console input failed", "error", err)
	}
}

// Stop ends the command loop.
func (m *Module) Stop(ctx context.Context) error {
	if !m.started {
		return nil
	}

	m.stopOnce.Do(func() {
		close(m.stopChan)
	})

	select {
	case <-m.doneChan:
		m.logger.Info("Console module stopped")
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
