package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablestakes/pkg/table"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Display a table",
		Long: `Display a table file.

Output adapts to environment:
  - Terminal: boxed table
  - Piped/Scripted: Markdown table

Use --output to override: auto, text, markdown, json, yaml, tsv`,
		Example: `  # Show a table
  tablestakes show cities.tsv

  # Re-render whenever the file changes
  tablestakes show cities.tsv --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			if !watch {
				t, err := cc.Load(args[0])
				if err != nil {
					return err
				}
				return cc.Emit(t)
			}
			ctx, stop := signal.NotifyContext(cc.Ctx, os.Interrupt)
			defer stop()
			return watchTable(ctx, cc, args[0])
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-render when the file changes")
	return cmd
}

// watchTable renders path, then renders it again after every write until
// ctx is done.
func watchTable(ctx context.Context, cc *CommandContext, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: editors often replace files instead of writing them.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	var mu sync.Mutex
	render := func() {
		mu.Lock()
		defer mu.Unlock()
		t, err := cc.Load(path)
		if err != nil {
			cc.Renderer.Error(err)
			return
		}
		if err := cc.Emit(t); err != nil {
			cc.Renderer.Error(err)
		}
	}
	render()

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				cc.Logger.Debug("file changed, re-rendering", "file", event.Name)
				render()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cc.Logger.Error("watcher error", "error", err)
		}
	}
}

// NewCountCommand creates the count command.
func NewCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count <file> [column value]",
		Short: "Count rows, or rows holding a value",
		Example: `  # Number of rows
  tablestakes count cities.tsv

  # Rows whose State is NY
  tablestakes count cities.tsv State NY`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 && len(args) != 3 {
				return fmt.Errorf("accepts <file> or <file> <column> <value>, received %d arg(s)", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			t, err := cc.Load(args[0])
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return cc.Renderer.Count("Rows", t.Count())
			}
			n, err := t.CountValue(args[1], args[2])
			if err != nil {
				return err
			}
			return cc.Renderer.Count(fmt.Sprintf("%s = %s", args[1], args[2]), n)
		},
	}
}

// NewTallyCommand creates the tally command.
func NewTallyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tally <file> <column>",
		Short: "Count each distinct value of a column",
		Long: `Count each distinct value of a column.

The result has one row per distinct value, in order of first appearance,
with its number of occurrences in a Count column.`,
		Example: `  tablestakes tally cities.tsv State`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			t, err := cc.Load(args[0])
			if err != nil {
				return err
			}
			out, err := t.Tally(args[1])
			if err != nil {
				return err
			}
			return cc.Emit(out)
		},
	}
}

// NewTopCommand creates the top command.
func NewTopCommand() *cobra.Command {
	return newRankCommand("top", "Show the most frequent values of a column", (*table.Table).Top)
}

// NewBottomCommand creates the bottom command.
func NewBottomCommand() *cobra.Command {
	return newRankCommand("bottom", "Show the least frequent values of a column", (*table.Table).Bottom)
}

func newRankCommand(name, short string, rank func(*table.Table, string, int) (*table.Table, error)) *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:     name + " <file> <column>",
		Short:   short,
		Example: fmt.Sprintf("  tablestakes %s cities.tsv State -n 2", name),
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			t, err := cc.Load(args[0])
			if err != nil {
				return err
			}
			out, err := rank(t, args[1], n)
			if err != nil {
				return err
			}
			return cc.Emit(out)
		},
	}

	cmd.Flags().IntVarP(&n, "number", "n", 1, "Number of values to show")
	return cmd
}
