package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/tablestakes/pkg/table"
)

// NewCatCommand creates the cat command.
func NewCatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cat <file>...",
		Short: "Concatenate tables with the same headers",
		Long: `Concatenate the rows of several tables, in argument order.

Every non-empty table must have the same headers in the same order.`,
		Example: `  tablestakes cat jan.tsv feb.tsv mar.tsv --save q1.tsv`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			out, err := catTables(cc, args)
			if err != nil {
				return err
			}
			return cc.Emit(out)
		},
	}
}

// catTables loads paths concurrently and appends them in order.
func catTables(cc *CommandContext, paths []string) (*table.Table, error) {
	tables := make([]*table.Table, len(paths))

	g, _ := errgroup.WithContext(cc.Ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			t, err := cc.Load(path)
			if err != nil {
				return err
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := table.New()
	for i, t := range tables {
		if _, err := out.Append(t); err != nil {
			return nil, fmt.Errorf("%s: %w", paths[i], err)
		}
	}
	cc.Logger.Debug("concatenated tables", "files", len(paths), "rows", out.Count())
	return out, nil
}

// NewRenameCommand creates the rename command.
func NewRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rename <file> <old> <new>",
		Short:   "Rename a column, keeping its position",
		Example: `  tablestakes rename cities.tsv State ST --save cities.tsv`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			t, err := cc.Load(args[0])
			if err != nil {
				return err
			}
			if _, err := t.RenameHeader(args[1], args[2]); err != nil {
				return err
			}
			return cc.Emit(t)
		},
	}
}

// NewDropCommand creates the drop command.
func NewDropCommand() *cobra.Command {
	var rows []int

	cmd := &cobra.Command{
		Use:   "drop <file> [column]...",
		Short: "Remove columns or rows",
		Long: `Remove the named columns, and the rows given with --row.

Row positions start at 0; negative positions count from the end, so -1 is
the last row. Rows are removed in the order given.`,
		Example: `  tablestakes drop cities.tsv Population
  tablestakes drop cities.tsv --row -1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			if len(args) == 1 && len(rows) == 0 {
				return fmt.Errorf("nothing to drop: name a column or use --row")
			}
			t, err := cc.Load(args[0])
			if err != nil {
				return err
			}
			for _, name := range args[1:] {
				if _, err := t.DelColumn(name); err != nil {
					return err
				}
			}
			for _, idx := range rows {
				if _, err := t.DelRow(idx); err != nil {
					return err
				}
			}
			return cc.Emit(t)
		},
	}

	cmd.Flags().IntSliceVar(&rows, "row", nil, "Position of a row to remove (repeatable)")
	return cmd
}
