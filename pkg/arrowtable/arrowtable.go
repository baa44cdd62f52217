// Package arrowtable converts tables to and from Apache Arrow records and
// exports them as Arrow IPC or Parquet files.
//
// Every column maps to a non-nullable utf8 field named after its header.
package arrowtable

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/leapstack-labs/tablestakes/pkg/table"
)

// Schema returns the Arrow schema describing t.
func Schema(t *table.Table) *arrow.Schema {
	headers := t.Headers()
	fields := make([]arrow.Field, len(headers))
	for i, h := range headers {
		fields[i] = arrow.Field{Name: h, Type: arrow.BinaryTypes.String}
	}
	return arrow.NewSchema(fields, nil)
}

// ToRecord builds a record holding every row of t. The caller owns the
// record and must Release it.
func ToRecord(t *table.Table, mem memory.Allocator) arrow.Record {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	b := array.NewRecordBuilder(mem, Schema(t))
	defer b.Release()

	for i, h := range t.Headers() {
		b.Field(i).(*array.StringBuilder).AppendValues(t.Column(h), nil)
	}
	return b.NewRecord()
}

// FromRecord copies rec into a new Table. String columns are copied
// verbatim, other types are formatted with ValueStr, nulls become "".
func FromRecord(rec arrow.Record) (*table.Table, error) {
	out := table.New()
	for i, f := range rec.Schema().Fields() {
		if _, err := out.AddColumn(f.Name, columnValues(rec.Column(i))...); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
	}
	return out, nil
}

func columnValues(col arrow.Array) []string {
	vals := make([]string, col.Len())
	for i := range vals {
		if col.IsNull(i) {
			continue
		}
		switch c := col.(type) {
		case *array.String:
			vals[i] = c.Value(i)
		case *array.LargeString:
			vals[i] = c.Value(i)
		default:
			vals[i] = col.ValueStr(i)
		}
	}
	return vals
}

// FromTable copies every record of tbl into a new Table.
func FromTable(tbl arrow.Table) (*table.Table, error) {
	out, err := headersOnly(tbl.Schema())
	if err != nil {
		return nil, err
	}

	tr := array.NewTableReader(tbl, -1)
	defer tr.Release()
	for tr.Next() {
		part, err := FromRecord(tr.Record())
		if err != nil {
			return nil, err
		}
		if _, err := out.Append(part); err != nil {
			return nil, err
		}
	}
	return out, tr.Err()
}

func headersOnly(schema *arrow.Schema) (*table.Table, error) {
	fields := schema.Fields()
	if len(fields) == 0 {
		return table.New(), nil
	}
	headers := make([]string, len(fields))
	for i, f := range fields {
		headers[i] = f.Name
	}
	return table.FromRows([][]string{headers})
}

func exportable(t *table.Table) error {
	if t == nil || t.IsEmpty() {
		return fmt.Errorf("%w: table has no columns", table.ErrInvalidTable)
	}
	return nil
}

// WriteIPC writes t to path in the Arrow IPC file format.
func WriteIPC(t *table.Table, path string) (err error) {
	if err := exportable(t); err != nil {
		return err
	}
	rec := ToRecord(t, memory.DefaultAllocator)
	defer rec.Release()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	w, err := ipc.NewFileWriter(f, ipc.WithSchema(rec.Schema()))
	if err != nil {
		return fmt.Errorf("create ipc writer: %w", err)
	}
	if err := w.Write(rec); err != nil {
		_ = w.Close()
		return fmt.Errorf("write ipc record: %w", err)
	}
	return w.Close()
}

// ReadIPC reads an Arrow IPC file into a Table.
func ReadIPC(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := ipc.NewFileReader(f, ipc.WithAllocator(memory.DefaultAllocator))
	if err != nil {
		return nil, fmt.Errorf("%s: open ipc reader: %w", path, err)
	}
	defer r.Close()

	out, err := headersOnly(r.Schema())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for i := 0; i < r.NumRecords(); i++ {
		rec, err := r.Record(i)
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", path, i, err)
		}
		part, err := FromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if _, err := out.Append(part); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return out, nil
}

// WriteParquet writes t to path as a snappy-compressed Parquet file.
func WriteParquet(t *table.Table, path string) error {
	if err := exportable(t); err != nil {
		return err
	}
	rec := ToRecord(t, memory.DefaultAllocator)
	defer rec.Release()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	w, err := pqarrow.NewFileWriter(rec.Schema(), f, props, arrowProps)
	if err != nil {
		return fmt.Errorf("create parquet writer: %w", err)
	}
	if err := w.Write(rec); err != nil {
		_ = w.Close()
		return fmt.Errorf("write parquet record: %w", err)
	}
	// Close flushes the footer and closes f.
	return w.Close()
}

// ReadParquet reads a Parquet file into a Table.
func ReadParquet(ctx context.Context, path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tbl, err := pqarrow.ReadTable(ctx, f, parquet.NewReaderProperties(memory.DefaultAllocator),
		pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("%s: read parquet: %w", path, err)
	}
	defer tbl.Release()

	out, err := FromTable(tbl)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}
