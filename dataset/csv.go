package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteCSV writes a header line followed by one line per row.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header()); err != nil {
		return err
	}

	record := make([]string, 0, len(Header()))
	for _, r := range rows {
		record = append(record[:0], r.Filename, r.Category)
		for _, v := range r.features() {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		record = append(record,
			r.Label,
			strconv.FormatFloat(r.Confidence, 'g', -1, 64),
			r.NoiseType,
			strconv.FormatBool(r.Degenerate),
		)

		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Sample is one entry of a labelled sample list.
type Sample struct {
	Filename string
	Category string
}

// ReadMetadata reads a CSV with "filename" and "category" columns, in any
// order and alongside any other columns.
func ReadMetadata(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset: read header: %w", err)
	}

	fileCol, catCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "filename":
			fileCol = i
		case "category":
			catCol = i
		}
	}
	if fileCol < 0 {
		return nil, fmt.Errorf("%w: filename", ErrMissingColumn)
	}
	if catCol < 0 {
		return nil, fmt.Errorf("%w: category", ErrMissingColumn)
	}

	var out []Sample
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read metadata: %w", err)
		}

		out = append(out, Sample{Filename: rec[fileCol], Category: rec[catCol]})
	}

	return out, nil
}
