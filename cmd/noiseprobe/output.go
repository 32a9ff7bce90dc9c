package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"go.uber.org/multierr"

	"github.com/Usama2015/Noise-Environment-Monitor-App/batch"
	"github.com/Usama2015/Noise-Environment-Monitor-App/dataset"
)

// printTable writes one line per entry and returns the dataset rows of the
// successful ones.
func printTable(w io.Writer, inputs []input, entries []batch.Entry) []dataset.Row {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "FILE\tAVG dB\tMAX dB\tMIN dB\tLABEL\tCONF\tCENTROID Hz\tFLATNESS\tDOMINANT Hz\tTYPE\n")

	rows := make([]dataset.Row, 0, len(entries))
	for i, e := range entries {
		name := filepath.Base(e.Path)
		if e.Err != nil {
			fmt.Fprintf(tw, "%s\terror: %v\n", name, e.Err)
			continue
		}

		r := e.Result.Record
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%.1f\t%s\t%.2f\t%.0f\t%.3f\t%.0f\t%s\n",
			name, r.AvgDB, r.MaxDB, r.MinDB, r.Label, r.Confidence,
			r.SpectralCentroid, r.SpectralFlatness, r.DominantFrequency, r.NoiseType)

		rows = append(rows, dataset.FromRecord(e.Path, inputs[i].category, r))
	}

	tw.Flush()
	return rows
}

func writeOutputs(o options, parquetOpt dataset.ParquetOption, rows []dataset.Row) error {
	var errs error

	if o.csvPath != "" {
		errs = multierr.Append(errs, writeFile(o.csvPath, func(w io.Writer) error {
			return dataset.WriteCSV(w, rows)
		}))
	}
	if o.parquetPath != "" {
		errs = multierr.Append(errs, writeFile(o.parquetPath, func(w io.Writer) error {
			return dataset.WriteParquet(w, rows, parquetOpt)
		}))
	}

	return errs
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	return write(f)
}
