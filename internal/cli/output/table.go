package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/tablestakes/pkg/table"
)

// tableDoc is the json and yaml shape of a table. Rows keep header order,
// which an array of objects would lose.
type tableDoc struct {
	Headers []string   `json:"headers" yaml:"headers"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

type countDoc struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

func newTableDoc(t *table.Table) tableDoc {
	rows := t.ToRows()
	doc := tableDoc{Headers: rows[0], Rows: rows[1:]}
	if doc.Headers == nil {
		doc.Headers = []string{}
	}
	return doc
}

// Table renders t in the effective mode.
func (r *Renderer) Table(t *table.Table) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return encodeJSON(r.w, newTableDoc(t))
	case ModeYAML:
		return encodeYAML(r.w, newTableDoc(t))
	case ModeTSV:
		_, err := t.WriteTo(r.w)
		return err
	case ModeMarkdown:
		r.renderMarkdown(t)
		return nil
	default:
		r.renderText(t)
		return nil
	}
}

// Count renders a single labelled number.
func (r *Renderer) Count(label string, n int) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return encodeJSON(r.w, countDoc{Label: label, Count: n})
	case ModeYAML:
		return encodeYAML(r.w, countDoc{Label: label, Count: n})
	case ModeTSV:
		r.Println(n)
	case ModeMarkdown:
		r.Printf("**%s:** %d\n", label, n)
	default:
		r.Printf("%s %d\n", r.styles.Bold.Render(label+":"), n)
	}
	return nil
}

func (r *Renderer) renderText(t *table.Table) {
	if t.IsEmpty() {
		r.Println(r.styles.Muted.Render("(empty table)"))
		return
	}

	tw := prettytable.NewWriter()
	tw.SetStyle(r.tableStyle())
	tw.AppendHeader(toRow(t.Headers()))
	shown := 0
	for _, row := range t.Rows() {
		if r.maxRows > 0 && shown == r.maxRows {
			break
		}
		tw.AppendRow(toRow(row))
		shown++
	}
	r.Println(tw.Render())
	r.Println(r.styles.Muted.Render(footer(shown, t.Count())))
}

func (r *Renderer) tableStyle() prettytable.Style {
	var s prettytable.Style
	switch r.style {
	case "rounded":
		s = prettytable.StyleRounded
	case "double":
		s = prettytable.StyleDouble
	case "ascii":
		s = prettytable.StyleDefault
	default:
		s = prettytable.StyleLight
	}
	// Headers are data here; keep their case.
	s.Format.Header = text.FormatDefault
	if r.isTTY {
		s.Color.Header = text.Colors{text.Bold}
	}
	return s
}

func toRow(values []string) prettytable.Row {
	row := make(prettytable.Row, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}

func (r *Renderer) renderMarkdown(t *table.Table) {
	if t.IsEmpty() {
		r.Println("(empty table)")
		return
	}

	headers := t.Headers()
	r.Printf("| %s |\n", strings.Join(escapeCells(headers), " | "))
	seps := make([]string, len(headers))
	for i := range seps {
		seps[i] = "---"
	}
	r.Printf("| %s |\n", strings.Join(seps, " | "))

	shown := 0
	for _, row := range t.Rows() {
		if r.maxRows > 0 && shown == r.maxRows {
			break
		}
		r.Printf("| %s |\n", strings.Join(escapeCells(row), " | "))
		shown++
	}
	if shown < t.Count() || shown == 0 {
		r.Println()
		r.Println(footer(shown, t.Count()))
	}
}

func escapeCells(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ReplaceAll(v, "|", `\|`)
	}
	return out
}

func footer(shown, total int) string {
	if shown < total {
		return fmt.Sprintf("(showing %d of %d rows)", shown, total)
	}
	if total == 1 {
		return "(1 row)"
	}
	return "(" + strconv.Itoa(total) + " rows)"
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
