package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteTSV writes rows as a tab-delimited file named name inside a fresh
// temporary directory and returns its path.
func WriteTSV(t testing.TB, name string, rows ...[]string) string {
	t.Helper()
	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(strings.Join(row, "\t"))
		sb.WriteString("\n")
	}
	return WriteFile(t, name, sb.String())
}

// WriteFile writes content to name inside a fresh temporary directory and
// returns its path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}
