package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablestakes/internal/cli/config"
	"github.com/leapstack-labs/tablestakes/internal/cli/output"
	"github.com/leapstack-labs/tablestakes/pkg/arrowtable"
	"github.com/leapstack-labs/tablestakes/pkg/table"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Ctx      context.Context
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	// SavePath, when set, makes Emit write the result as a tab-delimited
	// file instead of rendering it.
	SavePath string
}

// NewCommandContext creates a CommandContext from the command's context and flags.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.FromContext(ctx)

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)).
		WithMaxRows(cfg.MaxRows).
		WithStyle(cfg.Style)

	var save string
	if f := cmd.Flag("save"); f != nil {
		save = f.Value.String()
	}

	return &CommandContext{
		Ctx:      ctx,
		Cfg:      cfg,
		Logger:   config.GetLogger(ctx),
		Renderer: r,
		SavePath: save,
	}
}

// Load reads the table at path. Files ending in .arrow or .ipc are read as
// Arrow IPC, .parquet as Parquet, anything else as tab-delimited text.
func (cc *CommandContext) Load(path string) (*table.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".arrow", ".ipc":
		return arrowtable.ReadIPC(path)
	case ".parquet":
		return arrowtable.ReadParquet(cc.Ctx, path)
	}

	skipped := 0
	t, err := table.ReadFile(path,
		table.WithLogger(cc.Logger.With("path", path)),
		table.OnMalformed(func(table.MalformedRow) { skipped++ }),
	)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		cc.Renderer.Warn(fmt.Sprintf("%s: skipped %d malformed row(s)", path, skipped))
	}
	return t, nil
}

// Emit renders t, or writes it to SavePath when one was given.
func (cc *CommandContext) Emit(t *table.Table) error {
	if cc.SavePath == "" {
		return cc.Renderer.Table(t)
	}
	if err := t.WriteFile(cc.SavePath); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	cc.Logger.Debug("saved table", "path", cc.SavePath, "rows", t.Count())
	cc.Renderer.Success(fmt.Sprintf("Saved %d rows to %s", t.Count(), cc.SavePath))
	return nil
}

// EmitValues renders a list of values as a one-column table headed name.
func (cc *CommandContext) EmitValues(name string, values []string) error {
	t := table.New()
	if _, err := t.AddColumn(name, values...); err != nil {
		return err
	}
	return cc.Emit(t)
}
