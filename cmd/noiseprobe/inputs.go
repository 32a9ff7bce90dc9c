package main

import (
	"os"
	"path/filepath"

	"github.com/Usama2015/Noise-Environment-Monitor-App/dataset"
)

type input struct {
	path     string
	category string
}

// collectInputs merges files from -metadata with positional arguments.
// Metadata filenames are relative to the metadata file's directory.
func collectInputs(o options, args []string) ([]input, error) {
	var inputs []input

	if o.metadata != "" {
		f, err := os.Open(o.metadata)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		samples, err := dataset.ReadMetadata(f)
		if err != nil {
			return nil, err
		}

		dir := filepath.Dir(o.metadata)
		for _, s := range samples {
			p := s.Filename
			if !filepath.IsAbs(p) {
				p = filepath.Join(dir, p)
			}
			inputs = append(inputs, input{path: p, category: s.Category})
		}
	}

	for _, a := range args {
		inputs = append(inputs, input{path: a, category: o.category})
	}

	return inputs, nil
}
