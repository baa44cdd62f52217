package commands

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/tablestakes/pkg/table"
)

// NewSelectCommand creates the select command.
func NewSelectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "select <file> <column>...",
		Short: "Keep only the named columns, in the order given",
		Example: `  tablestakes select cities.tsv State City`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			t, err := cc.Load(args[0])
			if err != nil {
				return err
			}
			out, err := t.Select(args[1:]...)
			if err != nil {
				return err
			}
			return cc.Emit(out)
		},
	}
}

// NewWhereCommand creates the where command.
func NewWhereCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "where <file> <column> [condition]",
		Short: "Keep the rows whose column value satisfies a condition",
		Long: `Keep the rows whose column value satisfies a condition.

A condition is an operator followed by a literal:

  == != < <= > >=   compare as text
  =~ !~             match a regular expression, written /re/ or quoted
  num OP NUMBER     compare as numbers (rows that are not numbers never match)

Without a condition every row is kept.`,
		Example: `  tablestakes where cities.tsv State "== NY"
  tablestakes where cities.tsv City "=~ /^New/"
  tablestakes where cities.tsv Population "num > 1000000"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			t, err := cc.Load(args[0])
			if err != nil {
				return err
			}
			var cond table.Predicate
			if len(args) > 2 {
				cond, err = table.ParseCondition(strings.Join(args[2:], " "))
				if err != nil {
					return err
				}
			}
			out, err := t.Where(args[1], cond)
			if err != nil {
				return err
			}
			return cc.Emit(out)
		},
	}
}

// sortOptions holds the flags of the sort command.
type sortOptions struct {
	column  string
	index   int
	numeric bool
	date    string
	collate string
	reverse bool
}

func (o *sortOptions) key(cmd *cobra.Command) table.SortKey {
	switch {
	case cmd.Flags().Changed("column"):
		return table.ByColumn(o.column)
	case cmd.Flags().Changed("index"):
		return table.ByIndex(o.index)
	}
	return table.SortKey{}
}

func (o *sortOptions) comparator() (table.Comparator, error) {
	cmp := table.Lexical
	switch {
	case o.numeric:
		cmp = table.Numeric
	case o.date != "":
		cmp = table.Date(o.date)
	case o.collate != "":
		tag, err := language.Parse(o.collate)
		if err != nil {
			return nil, fmt.Errorf("invalid --collate tag %q: %w", o.collate, err)
		}
		cmp = table.Collated(tag)
	}
	if o.reverse {
		cmp = table.Reverse(cmp)
	}
	return cmp, nil
}

// NewSortCommand creates the sort command.
func NewSortCommand() *cobra.Command {
	opts := &sortOptions{}

	cmd := &cobra.Command{
		Use:   "sort <file>",
		Short: "Sort rows by a column",
		Long: `Sort rows by a column. The sort is stable.

Values compare as text unless --numeric, --date or --collate is given.
Without --column or --index the first column is used.`,
		Example: `  tablestakes sort cities.tsv --column Population --numeric --reverse
  tablestakes sort events.tsv --index 2 --date 2006-01-02
  tablestakes sort words.tsv --collate de`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			cmp, err := opts.comparator()
			if err != nil {
				return err
			}
			t, err := cc.Load(args[0])
			if err != nil {
				return err
			}
			out, err := t.Sort(opts.key(cmd), cmp)
			if err != nil {
				return err
			}
			return cc.Emit(out)
		},
	}

	cmd.Flags().StringVarP(&opts.column, "column", "c", "", "Column to sort by")
	cmd.Flags().IntVarP(&opts.index, "index", "i", 0, "Position of the column to sort by")
	cmd.Flags().BoolVar(&opts.numeric, "numeric", false, "Compare values as numbers")
	cmd.Flags().StringVar(&opts.date, "date", "", "Compare values as dates in this Go time layout")
	cmd.Flags().StringVar(&opts.collate, "collate", "", "Compare values with the collation of this language tag")
	cmd.Flags().BoolVarP(&opts.reverse, "reverse", "r", false, "Sort in descending order")
	cmd.MarkFlagsMutuallyExclusive("column", "index")
	cmd.MarkFlagsMutuallyExclusive("numeric", "date", "collate")
	return cmd
}

// transforms are the named per-value rewrites accepted by sub --transform.
var transforms = map[string]func() func(string) string{
	"upper": func() func(string) string { return cases.Upper(language.Und).String },
	"lower": func() func(string) string { return cases.Lower(language.Und).String },
	"title": func() func(string) string { return cases.Title(language.English).String },
	"trim":  func() func(string) string { return strings.TrimSpace },
}

// subOptions holds the flags of the sub command.
type subOptions struct {
	regexp    bool
	transform string
	mapping   map[string]string
}

func (o *subOptions) substitution(args []string) (table.Substitution, error) {
	switch {
	case o.transform != "":
		if len(args) != 0 {
			return table.Substitution{}, fmt.Errorf("--transform takes no match or replacement")
		}
		mk, ok := transforms[o.transform]
		if !ok {
			return table.Substitution{}, fmt.Errorf("unknown transform %q (want upper|lower|title|trim)", o.transform)
		}
		return table.Transform(mk()), nil

	case len(o.mapping) > 0:
		if len(args) != 1 {
			return table.Substitution{}, fmt.Errorf("--map takes a single pattern")
		}
		re, err := regexp.Compile(args[0])
		if err != nil {
			return table.Substitution{}, err
		}
		return table.ReplaceMapped(re, o.mapping), nil
	}

	if len(args) != 2 {
		return table.Substitution{}, fmt.Errorf("requires <match> <replacement>, --map or --transform")
	}
	if o.regexp {
		re, err := regexp.Compile(args[0])
		if err != nil {
			return table.Substitution{}, err
		}
		return table.ReplacePattern(re, args[1]), nil
	}
	return table.Replace(args[0], args[1]), nil
}

// NewSubCommand creates the sub command.
func NewSubCommand() *cobra.Command {
	opts := &subOptions{}

	cmd := &cobra.Command{
		Use:   "sub <file> <column> [match replacement]",
		Short: "Rewrite the values of a column",
		Long: `Rewrite the values of a column.

Only the first occurrence of the match in each value is replaced. With
--regexp the match is a regular expression and the replacement may use
$1 or ${name}. With --map the first match of the pattern is looked up in
the mapping and left alone when absent. --transform applies a named
rewrite to every value instead.`,
		Example: `  tablestakes sub cities.tsv State NY "New York"
  tablestakes sub people.tsv Name --regexp '(\w+) (\w+)' '$2, $1'
  tablestakes sub cities.tsv State '^[A-Z]+$' --map NY=New\ York,TX=Texas
  tablestakes sub cities.tsv City --transform upper`,
		Args: cobra.RangeArgs(2, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			s, err := opts.substitution(args[2:])
			if err != nil {
				return err
			}
			t, err := cc.Load(args[0])
			if err != nil {
				return err
			}
			out, err := t.Sub(args[1], s)
			if err != nil {
				return err
			}
			return cc.Emit(out)
		},
	}

	cmd.Flags().BoolVarP(&opts.regexp, "regexp", "e", false, "Treat the match as a regular expression")
	cmd.Flags().StringVarP(&opts.transform, "transform", "t", "", "Apply a named rewrite: upper, lower, title or trim")
	cmd.Flags().StringToStringVar(&opts.mapping, "map", nil, "Replace the first match using this mapping (key=value,...)")
	_ = cmd.RegisterFlagCompletionFunc("transform", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"upper", "lower", "title", "trim"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
