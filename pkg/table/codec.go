package table

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
)

const (
	fieldSep  = "\t"
	lineSep   = "\n"
	maxLineSz = 16 * 1024 * 1024
)

// MalformedRow describes a line skipped while parsing because it had more
// fields than there are headers.
type MalformedRow struct {
	Line   int // 1-based line number
	Fields []string
	Want   int
}

// Option configures Parse and ReadFile.
type Option func(*parseOptions)

type parseOptions struct {
	logger      *slog.Logger
	onMalformed func(MalformedRow)
}

// WithLogger sets the logger that receives parse diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *parseOptions) { o.logger = l }
}

// OnMalformed registers fn to be called for every skipped row.
func OnMalformed(fn func(MalformedRow)) Option {
	return func(o *parseOptions) { o.onMalformed = fn }
}

func buildOptions(opts []Option) parseOptions {
	o := parseOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Parse reads a tab-delimited table from r. The first line holds the
// headers. Rows with fewer fields than headers are padded with empty values;
// rows with more are skipped and reported through the logger and OnMalformed.
// A trailing carriage return on each line is ignored.
func Parse(r io.Reader, opts ...Option) (*Table, error) {
	o := buildOptions(opts)
	logger := o.logger

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSz)

	t := New()
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Split(strings.TrimSuffix(sc.Text(), "\r"), fieldSep)
		if line == 1 {
			if _, err := t.AddRow(fields...); err != nil {
				return nil, fmt.Errorf("header line: %w", err)
			}
			continue
		}

		want := len(t.headers)
		if len(fields) > want {
			logger.Warn("skipping malformed row", "line", line, "fields", len(fields), "want", want)
			if o.onMalformed != nil {
				o.onMalformed(MalformedRow{Line: line, Fields: fields, Want: want})
			}
			continue
		}
		for len(fields) < want {
			fields = append(fields, "")
		}
		if _, err := t.AddRow(fields...); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	return t, nil
}

// ReadFile parses the tab-delimited file at path.
func ReadFile(path string, opts ...Option) (t *Table, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	t, err = Parse(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	buildOptions(opts).logger.Debug("loaded table", "path", path, "rows", t.Count(), "columns", len(t.headers))
	return t, nil
}

// ToRows returns the headers followed by every row, each as a fresh slice.
func (t *Table) ToRows() [][]string {
	rows := make([][]string, 0, t.Count()+1)
	rows = append(rows, slices.Clone(t.headers))
	for _, row := range t.Rows() {
		rows = append(rows, row)
	}
	return rows
}

// WriteTo writes the tab-delimited rendering of t to w. Every line, including
// the last, ends with a newline. An empty Table writes nothing.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	if t.IsEmpty() {
		return 0, nil
	}
	bw := bufio.NewWriter(w)
	var n int64
	write := func(fields []string) error {
		m, err := bw.WriteString(strings.Join(fields, fieldSep) + lineSep)
		n += int64(m)
		return err
	}
	if err := write(t.headers); err != nil {
		return n, err
	}
	for _, row := range t.Rows() {
		if err := write(row); err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// String returns the tab-delimited rendering of t.
func (t *Table) String() string {
	var sb strings.Builder
	_, _ = t.WriteTo(&sb)
	return sb.String()
}

// WriteFile writes the tab-delimited rendering of t to path, replacing any
// existing content.
func (t *Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	_, werr := t.WriteTo(f)
	cerr := f.Close()
	return errors.Join(werr, cerr)
}
