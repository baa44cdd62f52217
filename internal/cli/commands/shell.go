package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablestakes/pkg/table"
)

const shellPrompt = "tablestakes> "

// NewShellCommand creates the shell command.
func NewShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell <file>",
		Short: "Explore a table interactively",
		Long: `Load a table and explore it with dot-commands.

Each command works on the current table; queries replace it with their
result and .reset goes back to the file as loaded. Type .help for the list.`,
		Example: `  tablestakes shell cities.tsv`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			t, err := cc.Load(args[0])
			if err != nil {
				return err
			}
			return runShell(cc, args[0], t)
		},
	}
}

func runShell(cc *CommandContext, path string, t *table.Table) error {
	s := newSession(cc, t)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          shellPrompt,
		HistoryFile:     cc.Cfg.HistoryFile,
		AutoComplete:    s.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cc.Renderer.Writer(),
		Stderr:          cc.Renderer.ErrWriter(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	cc.Renderer.Printf("tablestakes shell (%s: %d rows)\n", path, t.Count())
	cc.Renderer.Println("Type .help for commands, .quit to exit")
	cc.Renderer.Println()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		quit, err := s.exec(line)
		if err != nil {
			cc.Renderer.Error(err)
		}
		if quit {
			return nil
		}
		// Headers may have changed.
		rl.Config.AutoComplete = s.completer()
	}
}

// session is the state of an interactive shell: the table as loaded and
// the current working table.
type session struct {
	cc      *CommandContext
	loaded  *table.Table
	current *table.Table
}

func newSession(cc *CommandContext, t *table.Table) *session {
	return &session{cc: cc, loaded: t, current: t.Clone()}
}

// shellCommands lists the dot-commands with their usage, in help order.
var shellCommands = []struct{ name, usage string }{
	{".help", "Show this help message"},
	{".headers", "List the column headers"},
	{".show", "Display the current table"},
	{".count", "[column value]  Count rows, or rows holding a value"},
	{".tally", "<column>  Count each distinct value"},
	{".top", "<column> [n]  Most frequent values"},
	{".bottom", "<column> [n]  Least frequent values"},
	{".select", "<column>...  Keep only these columns"},
	{".where", "<column> <condition>  Keep matching rows"},
	{".sort", "<column> [numeric|reverse]...  Sort rows"},
	{".sub", "<column> <match> <replacement>  Replace the first match"},
	{".rename", "<old> <new>  Rename a column"},
	{".drop", "<column>  Remove a column"},
	{".delrow", "<index>  Remove a row"},
	{".reset", "Go back to the table as loaded"},
	{".save", "<path>  Write the current table as tab-delimited text"},
	{".clear", "Clear the screen"},
	{".quit", "Exit the shell (also .exit)"},
}

// exec runs one line of input. It reports whether the session should end.
func (s *session) exec(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	args, err := splitArgs(line)
	if err != nil {
		return false, err
	}
	command, args := strings.ToLower(args[0]), args[1:]
	r := s.cc.Renderer

	switch command {
	case ".quit", ".exit":
		return true, nil

	case ".help":
		printShellHelp(r.Writer())
		return false, nil

	case ".headers":
		return false, s.cc.EmitValues("Header", s.current.Headers())

	case ".show":
		return false, r.Table(s.current)

	case ".count":
		switch len(args) {
		case 0:
			return false, r.Count("Rows", s.current.Count())
		case 2:
			n, err := s.current.CountValue(args[0], args[1])
			if err != nil {
				return false, err
			}
			return false, r.Count(fmt.Sprintf("%s = %s", args[0], args[1]), n)
		}
		return false, usage(command)

	case ".tally":
		if len(args) != 1 {
			return false, usage(command)
		}
		out, err := s.current.Tally(args[0])
		if err != nil {
			return false, err
		}
		return false, r.Table(out)

	case ".top", ".bottom":
		if len(args) < 1 || len(args) > 2 {
			return false, usage(command)
		}
		n := 1
		if len(args) == 2 {
			if n, err = strconv.Atoi(args[1]); err != nil {
				return false, fmt.Errorf("invalid count %q", args[1])
			}
		}
		rank := s.current.Top
		if command == ".bottom" {
			rank = s.current.Bottom
		}
		out, err := rank(args[0], n)
		if err != nil {
			return false, err
		}
		return false, r.Table(out)

	case ".select":
		if len(args) == 0 {
			return false, usage(command)
		}
		return false, s.replace(s.current.Select(args...))

	case ".where":
		if len(args) < 2 {
			return false, usage(command)
		}
		cond, err := table.ParseCondition(strings.Join(args[1:], " "))
		if err != nil {
			return false, err
		}
		return false, s.replace(s.current.Where(args[0], cond))

	case ".sort":
		if len(args) == 0 {
			return false, usage(command)
		}
		cmp := table.Lexical
		reverse := false
		for _, opt := range args[1:] {
			switch opt {
			case "numeric":
				cmp = table.Numeric
			case "reverse":
				reverse = true
			default:
				return false, fmt.Errorf("unknown sort option %q (want numeric or reverse)", opt)
			}
		}
		if reverse {
			cmp = table.Reverse(cmp)
		}
		return false, s.replace(s.current.Sort(table.ByColumn(args[0]), cmp))

	case ".sub":
		if len(args) != 3 {
			return false, usage(command)
		}
		return false, s.replace(s.current.Sub(args[0], table.Replace(args[1], args[2])))

	case ".rename":
		if len(args) != 2 {
			return false, usage(command)
		}
		_, err := s.current.RenameHeader(args[0], args[1])
		return false, err

	case ".drop":
		if len(args) != 1 {
			return false, usage(command)
		}
		_, err := s.current.DelColumn(args[0])
		return false, err

	case ".delrow":
		if len(args) != 1 {
			return false, usage(command)
		}
		idx, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("invalid row index %q", args[0])
		}
		_, err = s.current.DelRow(idx)
		return false, err

	case ".reset":
		s.current = s.loaded.Clone()
		return false, nil

	case ".save":
		if len(args) != 1 {
			return false, usage(command)
		}
		if err := s.current.WriteFile(args[0]); err != nil {
			return false, err
		}
		r.Success(fmt.Sprintf("Saved %d rows to %s", s.current.Count(), args[0]))
		return false, nil

	case ".clear":
		r.Printf("\033[H\033[2J")
		return false, nil
	}

	return false, fmt.Errorf("unknown command: %s (type .help for commands)", command)
}

// replace makes the result of a query the current table and shows it.
func (s *session) replace(t *table.Table, err error) error {
	if err != nil {
		return err
	}
	s.current = t
	s.cc.Logger.Debug("shell table replaced", "rows", t.Count(), "columns", len(t.Headers()))
	return s.cc.Renderer.Table(t)
}

func (s *session) completer() *readline.PrefixCompleter {
	var columns []readline.PrefixCompleterInterface
	for _, h := range s.current.Headers() {
		columns = append(columns, readline.PcItem(h))
	}

	items := make([]readline.PrefixCompleterInterface, 0, len(shellCommands)+1)
	for _, c := range shellCommands {
		switch c.name {
		case ".count", ".tally", ".top", ".bottom", ".select", ".where", ".sort", ".sub", ".rename", ".drop":
			items = append(items, readline.PcItem(c.name, columns...))
		default:
			items = append(items, readline.PcItem(c.name))
		}
	}
	items = append(items, readline.PcItem(".exit"))
	return readline.NewPrefixCompleter(items...)
}

func usage(command string) error {
	for _, c := range shellCommands {
		if c.name == command {
			return fmt.Errorf("usage: %s %s", command, strings.SplitN(c.usage, "  ", 2)[0])
		}
	}
	return fmt.Errorf("usage: %s", command)
}

func printShellHelp(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Commands:")
	for _, c := range shellCommands {
		_, _ = fmt.Fprintf(w, "  %-9s %s\n", c.name, c.usage)
	}
	_, _ = fmt.Fprintln(w, `
Tips:
  - Quote values containing spaces: .where City == "New York"
  - Conditions use the where syntax: == != < <= > >= =~ !~, num for numbers
  - Tab completion works for commands and column names`)
}

// splitArgs splits a line on whitespace, keeping double- or single-quoted
// runs together.
func splitArgs(line string) ([]string, error) {
	var (
		args  []string
		cur   strings.Builder
		quote rune
		inArg bool
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(r)
			inArg = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote in %q", line)
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}
