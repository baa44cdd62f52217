package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablestakes/pkg/table"
)

// loadPair loads the two tables named by the first two arguments and
// returns them with the key columns. The second key defaults to the first.
func loadPair(cc *CommandContext, args []string) (left, right *table.Table, col, col2 string, err error) {
	left, err = cc.Load(args[0])
	if err != nil {
		return nil, nil, "", "", err
	}
	right, err = cc.Load(args[1])
	if err != nil {
		return nil, nil, "", "", err
	}
	col = args[2]
	if len(args) > 3 {
		col2 = args[3]
	}
	return left, right, col, col2, nil
}

// NewJoinCommand creates the join command.
func NewJoinCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "join <left> <right> <column> [column2]",
		Short: "Inner-join two tables on equal column values",
		Long: `Inner-join two tables on equal column values.

Each left row is paired with every right row whose column2 value (column
when omitted) equals its column value; unmatched rows are dropped. Right
headers that collide with left ones are prefixed with "_".`,
		Example: `  tablestakes join cities.tsv capitals.tsv State
  tablestakes join cities.tsv capitals.tsv City Capital`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			left, right, col, col2, err := loadPair(cc, args)
			if err != nil {
				return err
			}
			out, err := left.Join(right, col, col2)
			if err != nil {
				return err
			}
			return cc.Emit(out)
		},
	}
}

// NewUnionCommand creates the union command.
func NewUnionCommand() *cobra.Command {
	return newSetCommand("union", "List the distinct values found in either column", (*table.Table).Union)
}

// NewIntersectCommand creates the intersect command.
func NewIntersectCommand() *cobra.Command {
	return newSetCommand("intersect", "List the distinct values found in both columns", (*table.Table).Intersect)
}

func newSetCommand(name, short string, op func(*table.Table, *table.Table, string, string) ([]string, error)) *cobra.Command {
	return &cobra.Command{
		Use:     name + " <left> <right> <column> [column2]",
		Short:   short,
		Example: "  tablestakes " + name + " cities.tsv capitals.tsv City Capital",
		Args:    cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			left, right, col, col2, err := loadPair(cc, args)
			if err != nil {
				return err
			}
			values, err := op(left, right, col, col2)
			if err != nil {
				return err
			}
			return cc.EmitValues(col, values)
		},
	}
}
