package commands

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tablestakes/internal/cli/config"
	"github.com/leapstack-labs/tablestakes/internal/cli/output"
	"github.com/leapstack-labs/tablestakes/internal/cli/testutil"
	roottestutil "github.com/leapstack-labs/tablestakes/internal/testutil"
)

func TestShowCommand_AutoModeIsMarkdownWhenPiped(t *testing.T) {
	path := testutil.Capitals(t)

	out, _, err := execute(t, config.Default(), NewShowCommand(), path)
	require.NoError(t, err)

	testutil.AssertNoANSI(t, out)
	assert.Equal(t, [][]string{
		{"Capital", "State"},
		{"Albany", "NY"},
		{"Austin", "TX"},
		{"Trenton", "NJ"},
	}, testutil.MarkdownRows(out))
}

func TestShowCommand_MissingFile(t *testing.T) {
	_, _, err := execute(t, tsvConfig(), NewShowCommand(), "does-not-exist.tsv")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestShowCommand_WarnsAboutMalformedRows(t *testing.T) {
	path := roottestutil.WriteFile(t, "bad.tsv", "A\tB\n1\t2\n1\t2\t3\n4\t5\n")

	out, errOut, err := execute(t, tsvConfig(), NewShowCommand(), path)
	require.NoError(t, err)

	assert.Equal(t, "A\tB\n1\t2\n4\t5\n", out)
	assert.Contains(t, errOut, "skipped 1 malformed row(s)")
}

func TestShowCommand_Save(t *testing.T) {
	path := testutil.Capitals(t)
	dest := t.TempDir() + "/copy.tsv"

	out, errOut, err := execute(t, tsvConfig(), NewShowCommand(), path, "--save", dest)
	require.NoError(t, err)

	assert.Empty(t, out)
	assert.Contains(t, errOut, "Saved 3 rows to "+dest)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "Capital\tState\nAlbany\tNY\nAustin\tTX\nTrenton\tNJ\n", string(data))
}

func TestCountCommand(t *testing.T) {
	path := testutil.Cities(t)

	tests := []struct {
		name    string
		cfg     *config.Config
		args    []string
		want    string
		wantErr bool
	}{
		{name: "rows", cfg: tsvConfig(), args: []string{path}, want: "6\n"},
		{name: "value", cfg: tsvConfig(), args: []string{path, "State", "TX"}, want: "3\n"},
		{name: "absent value", cfg: tsvConfig(), args: []string{path, "State", "CA"}, want: "0\n"},
		{name: "markdown label", cfg: config.Default(), args: []string{path, "State", "NY"}, want: "**State = NY:** 2\n"},
		{name: "unknown column", cfg: tsvConfig(), args: []string{path, "Country", "US"}, wantErr: true},
		{name: "two args", cfg: tsvConfig(), args: []string{path, "State"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.cfg, NewCountCommand(), tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestTallyCommand(t *testing.T) {
	path := testutil.Cities(t)

	out, _, err := execute(t, tsvConfig(), NewTallyCommand(), path, "State")
	require.NoError(t, err)
	assert.Equal(t, "State\tCount\nNY\t2\nTX\t3\nNJ\t1\n", out)
}

func TestRankCommands(t *testing.T) {
	path := testutil.Cities(t)

	tests := []struct {
		name string
		run  func() (string, string, error)
		want string
	}{
		{
			name: "top default",
			run:  func() (string, string, error) { return execute(t, tsvConfig(), NewTopCommand(), path, "State") },
			want: "State\tCount\nTX\t3\n",
		},
		{
			name: "top two",
			run:  func() (string, string, error) { return execute(t, tsvConfig(), NewTopCommand(), path, "State", "-n", "2") },
			want: "State\tCount\nTX\t3\nNY\t2\n",
		},
		{
			name: "bottom",
			run:  func() (string, string, error) { return execute(t, tsvConfig(), NewBottomCommand(), path, "State") },
			want: "State\tCount\nNJ\t1\n",
		},
		{
			name: "top zero",
			run:  func() (string, string, error) { return execute(t, tsvConfig(), NewTopCommand(), path, "State", "-n", "0") },
			want: "State\tCount\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := tt.run()
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

// syncBuffer is a bytes.Buffer safe for the watcher's render goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchTable_RerendersOnWrite(t *testing.T) {
	path := roottestutil.WriteFile(t, "live.tsv", "Name\nfirst\n")

	out := &syncBuffer{}
	cc := &CommandContext{
		Ctx:      context.Background(),
		Cfg:      config.Default(),
		Logger:   slog.New(slog.DiscardHandler),
		Renderer: output.NewRendererWithTTY(out, out, false, output.ModeTSV),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watchTable(ctx, cc, path) }()

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "first")
	}, 2*time.Second, 20*time.Millisecond)

	// The watcher may not be registered yet when the first render lands, so
	// keep writing until a change is picked up.
	assert.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("Name\nsecond\n"), 0o600)
		return strings.Contains(out.String(), "second")
	}, 5*time.Second, 200*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watchTable did not stop after cancel")
	}
}
