package events

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// WriteCSV writes the table with a header row and one line per event.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w, t.rec.Schema(), csv.WithHeader(true))

	if err := cw.Write(t.rec); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// WriteParquet writes the table as a single snappy-compressed row group.
func (t *Table) WriteParquet(w io.Writer) error {
	tbl := array.NewTableFromRecords(t.rec.Schema(), []arrow.Record{t.rec})
	defer tbl.Release()

	props := parquet.NewWriterProperties(
		parquet.WithCompression(compress.Codecs.Snappy),
		parquet.WithAllocator(Pool),
	)

	chunk := tbl.NumRows()
	if chunk == 0 {
		chunk = 1
	}
	if err := pqarrow.WriteTable(tbl, w, chunk, props, pqarrow.DefaultWriterProps()); err != nil {
		return fmt.Errorf("failed to write parquet: %w", err)
	}
	return nil
}
