package synth

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// PerBand is the exact number of snippets in each relevance band.
const PerBand = 4

// Record is one dataset entry. All six fields are populated on commit;
// a rejected anchor leaves no partial record behind.
type Record struct {
	Query           string   `json:"query"`
	Description     string   `json:"description"`
	GroundTruth     string   `json:"ground_truth"`
	HighRelevance   []string `json:"high_relevance"`
	MediumRelevance []string `json:"medium_relevance"`
	LowRelevance    []string `json:"low_relevance"`
}

// Dataset is the ordered record sequence for one run.
type Dataset []Record

// Encode writes the dataset to w as an indented JSON array.
func (d Dataset) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return nil
}

// WriteFile serializes the dataset to path, creating or truncating it.
func (d Dataset) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset file: %w", err)
	}
	if err := d.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile loads a dataset previously written by WriteFile.
func ReadFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset file: %w", err)
	}
	defer f.Close()

	var d Dataset
	if err := json.NewDecoder(f).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return d, nil
}
