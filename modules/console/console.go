package console

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/example/finance-calculator/config"
	"github.com/example/finance-calculator/domain/operation"
	"github.com/example/finance-calculator/modules/calculator"
)

const defaultCallTimeout = 10 * time.Second

// Console interprets one command line at a time against a CalculatorPort.
type Console struct {
	calc        calculator.CalculatorPort
	out         io.Writer
	theme       Theme
	color       bool
	callTimeout time.Duration
}

// NewConsole creates a Console writing to out. ANSI colour is only used when
// color is true.
func NewConsole(calc calculator.CalculatorPort, out io.Writer, theme string, color bool) *Console {
	return &Console{
		calc:        calc,
		out:         out,
		theme:       ThemeByName(theme),
		color:       color,
		callTimeout: defaultCallTimeout,
	}
}

// Theme returns the active theme.
func (c *Console) Theme() Theme {
	return c.theme
}

// Execute runs one command line. It returns true when the session should end.
func (c *Console) Execute(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		c.println(c.theme.Muted, "Bye.")
		return true
	case "help", "?":
		c.printHelp()
	case "history":
		c.history(ctx, fields[1:])
	case "last":
		c.last(ctx)
	case "export":
		c.export(ctx, fields[1:])
	case "theme":
		c.switchTheme(fields[1:])
	case "clear":
		c.clear()
	default:
		c.calculate(ctx, fields)
	}
	return false
}

// Prompt writes the input prompt.
func (c *Console) Prompt() {
	fmt.Fprint(c.out, c.paint(c.theme.Prompt, "> "))
}

func (c *Console) calculate(ctx context.Context, fields []string) {
	if len(fields) > 4 {
		c.printError(string(operation.KindInput), "too many operands, expected at most 3")
		return
	}

	req := calculator.CalculateRequest{Operator: fields[0]}
	operands := []*string{&req.Operand1, &req.Operand2, &req.Operand3}
	for i, raw := range fields[1:] {
		*operands[i] = raw
	}

	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	resp, err := c.calc.Calculate(ctx, req)
	if err != nil {
		c.printError(string(operation.KindInternal), err.Error())
		return
	}
	if resp.Error != nil {
		c.printError(string(resp.Error.Kind), resp.Error.Message)
		return
	}
	c.println(c.theme.Result, resp.Display)
}

func (c *Console) history(ctx context.Context, args []string) {
	limit := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			c.printError(string(operation.KindInput), fmt.Sprintf("history size must be a positive integer, got %q", args[0]))
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	resp, err := c.calc.History(ctx, limit)
	if err != nil {
		c.printError(string(operation.KindInternal), err.Error())
		return
	}
	if len(resp.Lines) == 0 {
		c.println(c.theme.Muted, "No operations yet.")
		return
	}
	c.println(c.theme.Muted, "History:")
	for _, line := range resp.Lines {
		fmt.Fprintf(c.out, "  %s\n", line)
	}
}

func (c *Console) last(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	resp, err := c.calc.Last(ctx)
	if err != nil {
		c.printError(string(operation.KindInternal), err.Error())
		return
	}
	if !resp.Found {
		c.println(c.theme.Muted, "No operations yet.")
		return
	}
	c.println(c.theme.Result, fmt.Sprintf("Last: %s (%s)", resp.Line, resp.Record.Timestamp))
}

func (c *Console) export(ctx context.Context, args []string) {
	path := strings.Join(args, " ")

	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	resp, err := c.calc.ExportReport(ctx, path)
	if err != nil {
		c.printError(string(operation.KindInternal), err.Error())
		return
	}
	if resp.Error != nil {
		c.printError(string(resp.Error.Kind), resp.Error.Message)
		return
	}
	c.println(c.theme.Result, fmt.Sprintf("Exported %d operations to %s", resp.Rows, resp.Path))
}

func (c *Console) switchTheme(args []string) {
	switch {
	case len(args) == 0:
		c.theme = c.theme.Toggle()
	case args[0] == config.ThemeLight || args[0] == config.ThemeDark:
		c.theme = ThemeByName(args[0])
	default:
		c.printError(string(operation.KindInput), fmt.Sprintf("unknown theme %q, expected %q or %q", args[0], config.ThemeLight, config.ThemeDark))
		return
	}
	c.println(c.theme.Muted, "Theme: "+c.theme.Name)
}

func (c *Console) clear() {
	if c.color {
		fmt.Fprint(c.out, "\x1b[H\x1b[2J")
	}
	c.println(c.theme.Result, "Result: ")
}

func (c *Console) printHelp() {
	lines := []string{
		"Usage:",
		"  <op> a [b]        arithmetic: + - * / % ^, and √ (or sqrt) with one operand",
		"  EMI p r n         monthly instalment for principal p, annual rate r %, period n",
		"  SI p r t          simple interest",
		"  CI p r t          compound interest (annual compounding)",
		"  history [n]       show the n most recent operations",
		"  last              show the most recent operation",
		"  export [path]     write every logged operation to a CSV report",
		"  theme [name]      toggle or set the theme (light, dark)",
		"  clear             reset the result display",
		"  help              show this help",
		"  quit, exit        leave the calculator",
	}
	for _, line := range lines {
		fmt.Fprintln(c.out, line)
	}
}

func (c *Console) printError(kind, msg string) {
	c.println(c.theme.Error, fmt.Sprintf("Error [%s]: %s", kind, msg))
}

func (c *Console) println(code, s string) {
	fmt.Fprintln(c.out, c.paint(code, s))
}

func (c *Console) paint(code, s string) string {
	if !c.color || code == "" {
		return s
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}
