package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablestakes/pkg/arrowtable"
	"github.com/leapstack-labs/tablestakes/pkg/table"
)

// exporters maps --format values to writers.
var exporters = map[string]func(*table.Table, string) error{
	"arrow":   arrowtable.WriteIPC,
	"parquet": arrowtable.WriteParquet,
	"tsv":     (*table.Table).WriteFile,
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write a table as Arrow IPC, Parquet or tab-delimited text",
		Long: `Write a table as an Arrow IPC file, a snappy-compressed Parquet file or
tab-delimited text. Every column is exported as a string.

Tables ending in .arrow, .ipc or .parquet can be read back by every command.`,
		Example: `  tablestakes export cities.tsv --format parquet --out cities.parquet
  tablestakes export cities.parquet --format tsv --out cities.tsv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			write, ok := exporters[format]
			if !ok {
				return fmt.Errorf("unknown format %q (want arrow|parquet|tsv)", format)
			}
			t, err := cc.Load(args[0])
			if err != nil {
				return err
			}
			if err := write(t, out); err != nil {
				return fmt.Errorf("export %s: %w", out, err)
			}
			cc.Logger.Debug("exported table", "format", format, "path", out, "rows", t.Count())
			cc.Renderer.Success(fmt.Sprintf("Exported %d rows to %s", t.Count(), out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "parquet", "Output format: arrow, parquet or tsv")
	cmd.Flags().StringVar(&out, "out", "", "Path of the file to write")
	_ = cmd.MarkFlagRequired("out")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"arrow", "parquet", "tsv"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
