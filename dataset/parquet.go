package dataset

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// ParquetOption configures WriteParquet.
type ParquetOption func(*parquetConfig)

type parquetConfig struct {
	compression parquet.WriterOption
}

// WithCompression selects the column codec by name. Snappy is the
// default; zstd, gzip, brotli, lz4 and none are also accepted.
func WithCompression(name string) (ParquetOption, error) {
	var opt parquet.WriterOption

	switch strings.ToLower(name) {
	case "", "snappy":
		opt = parquet.Compression(&parquet.Snappy)
	case "zstd":
		opt = parquet.Compression(&parquet.Zstd)
	case "gzip", "gz":
		opt = parquet.Compression(&parquet.Gzip)
	case "brotli":
		opt = parquet.Compression(&parquet.Brotli)
	case "lz4":
		opt = parquet.Compression(&parquet.Lz4Raw)
	case "none", "uncompressed":
		opt = parquet.Compression(&parquet.Uncompressed)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}

	return func(c *parquetConfig) { c.compression = opt }, nil
}

// WriteParquet writes rows as a single Parquet file.
func WriteParquet(w io.Writer, rows []Row, opts ...ParquetOption) error {
	cfg := parquetConfig{compression: parquet.Compression(&parquet.Snappy)}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	pw := parquet.NewGenericWriter[Row](w, cfg.compression)
	if _, err := pw.Write(rows); err != nil {
		_ = pw.Close()
		return fmt.Errorf("dataset: write parquet: %w", err)
	}

	if err := pw.Close(); err != nil {
		return fmt.Errorf("dataset: close parquet: %w", err)
	}

	return nil
}

// ReadParquet reads every row of a Parquet file written by WriteParquet.
func ReadParquet(r io.ReaderAt, size int64) ([]Row, error) {
	f, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("dataset: open parquet: %w", err)
	}

	// The opened *parquet.File is itself an io.ReaderAt; the reader reuses
	// its parsed footer instead of reading it again.
	gr := parquet.NewGenericReader[Row](f)
	defer gr.Close()

	out := make([]Row, 0, f.NumRows())
	batch := make([]Row, 256)
	for {
		n, err := gr.Read(batch)
		out = append(out, batch[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read parquet: %w", err)
		}
	}

	return out, nil
}
