// Package cli provides the command-line interface for tablestakes.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablestakes/internal/cli/commands"
	"github.com/leapstack-labs/tablestakes/internal/cli/config"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tablestakes",
		Short: "tablestakes - Tab-delimited table toolkit",
		Long: `tablestakes reads, queries and rewrites tab-delimited tables.

The first line of a file is its headers; every other line is a row. Commands
print their result, or write it back as a table file with --save, so they can
be chained together in scripts.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger := config.NewLogger(cfg, cmd.ErrOrStderr())
			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)

			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", "path", configFile)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{.Name}} {{.Version}}
commit %s, built %s
`, GitCommit, BuildDate))

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./tablestakes.yaml, searched upward)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json|yaml|tsv)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().Int("max-rows", 0, "Rows shown by text and markdown output (0 for all)")
	rootCmd.PersistentFlags().String("style", "", "Box style of text tables (light|rounded|double|ascii)")
	rootCmd.PersistentFlags().String("save", "", "Write the resulting table to this file instead of printing it")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.OutputModes, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("style", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.Styles, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(
		&cobra.Group{ID: "inspect", Title: "Inspecting:"},
		&cobra.Group{ID: "query", Title: "Querying:"},
		&cobra.Group{ID: "edit", Title: "Editing:"},
	)
	addToGroup(rootCmd, "inspect",
		commands.NewShowCommand(),
		commands.NewCountCommand(),
		commands.NewTallyCommand(),
		commands.NewTopCommand(),
		commands.NewBottomCommand(),
		commands.NewShellCommand(),
	)
	addToGroup(rootCmd, "query",
		commands.NewSelectCommand(),
		commands.NewWhereCommand(),
		commands.NewSortCommand(),
		commands.NewJoinCommand(),
		commands.NewUnionCommand(),
		commands.NewIntersectCommand(),
	)
	addToGroup(rootCmd, "edit",
		commands.NewSubCommand(),
		commands.NewCatCommand(),
		commands.NewRenameCommand(),
		commands.NewDropCommand(),
		commands.NewExportCommand(),
	)
	rootCmd.AddCommand(commands.NewVersionCommand(commands.BuildInfo{
		Version:   Version,
		Commit:    GitCommit,
		BuildDate: BuildDate,
	}))
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

func addToGroup(root *cobra.Command, group string, cmds ...*cobra.Command) {
	for _, c := range cmds {
		c.GroupID = group
		root.AddCommand(c)
	}
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for tablestakes.

To load completions:

Bash:
  $ source <(tablestakes completion bash)

  # To load completions for each session, execute once:
  $ tablestakes completion bash > /etc/bash_completion.d/tablestakes

Zsh:
  $ tablestakes completion zsh > "${fpath[1]}/_tablestakes"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ tablestakes completion fish > ~/.config/fish/completions/tablestakes.fish

PowerShell:
  PS> tablestakes completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(w)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}
	return cmd
}
