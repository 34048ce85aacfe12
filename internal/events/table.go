// Package events holds the in-memory event table: one row per recorded
// collision, one float64 column per named quantity, backed by an Arrow record.
package events

import (
	"errors"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

var (
	ErrNoColumn    = errors.New("events: no such column")
	ErrRowMismatch = errors.New("events: columns have different row counts")
	ErrDuplicate   = errors.New("events: duplicate column name")
)

// Pool is the allocator every table is built with.
var Pool = memory.NewGoAllocator()

// Table is an immutable column store of event quantities.
type Table struct {
	rec   arrow.Record
	index map[string]int
}

// New builds a table from parallel name/column slices. All columns must have
// the same length.
func New(
	names []string,
	cols [][]float64,
) (
	*Table, error,
) {
	if len(names) != len(cols) {
		return nil, fmt.Errorf("events: %d names for %d columns", len(names), len(cols))
	}

	index := make(map[string]int, len(names))
	fields := make([]arrow.Field, 0, len(names))
	for i, name := range names {
		if _, ok := index[name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicate, name)
		}
		if len(cols[i]) != len(cols[0]) {
			return nil, fmt.Errorf("%w: %q has %d rows, %q has %d",
				ErrRowMismatch, name, len(cols[i]), names[0], len(cols[0]))
		}
		index[name] = i
		fields = append(fields, arrow.Field{Name: name, Type: arrow.PrimitiveTypes.Float64})
	}

	schema := arrow.NewSchema(fields, nil)
	b := array.NewRecordBuilder(Pool, schema)
	defer b.Release()

	for i, col := range cols {
		b.Field(i).(*array.Float64Builder).AppendValues(col, nil)
	}

	return &Table{rec: b.NewRecord(), index: index}, nil
}

// Release frees the underlying Arrow buffers.
func (t *Table) Release() {
	if t.rec != nil {
		t.rec.Release()
		t.rec = nil
	}
}

// Record exposes the backing Arrow record. The table keeps ownership.
func (t *Table) Record() arrow.Record { return t.rec }

func (t *Table) NumRows() int { return int(t.rec.NumRows()) }

func (t *Table) NumCols() int { return int(t.rec.NumCols()) }

// Names returns column names in table order.
func (t *Table) Names() []string {
	names := make([]string, t.NumCols())
	for i, f := range t.rec.Schema().Fields() {
		names[i] = f.Name
	}
	return names
}

// Has reports whether the table carries a column called name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the values of the named column. The slice aliases the
// Arrow buffer and must not be modified.
func (t *Table) Column(name string) ([]float64, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoColumn, name)
	}
	return t.rec.Column(i).(*array.Float64).Float64Values(), nil
}

// columns copies out every column, for building derived tables.
func (t *Table) columns() ([]string, [][]float64) {
	names := t.Names()
	cols := make([][]float64, len(names))
	for i := range names {
		src := t.rec.Column(i).(*array.Float64).Float64Values()
		cols[i] = append([]float64(nil), src...)
	}
	return names, cols
}
