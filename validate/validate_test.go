package validate

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/evalcorpus/synth"
)

func goodRecord(i int) synth.Record {
	pad := func(field string, length int) string {
		s := fmt.Sprintf("Record %03d %s text for the structural checks. ", i, field)
		for len(s) < length {
			s += fmt.Sprintf("More %s filler for record %03d. ", field, i)
		}
		return strings.TrimSpace(s)
	}
	band := func(name string) []string {
		out := make([]string, 0, synth.PerBand)
		for j := 0; j < synth.PerBand; j++ {
			out = append(out, fmt.Sprintf("Record %03d %s snippet number %d with enough surrounding words.", i, name, j))
		}
		return out
	}
	return synth.Record{
		Query:           pad("query", 80),
		Description:     fmt.Sprintf("description %03d", i),
		GroundTruth:     pad("ground truth", 150),
		HighRelevance:   band("high"),
		MediumRelevance: band("medium"),
		LowRelevance:    band("low"),
	}
}

func goodDataset(n int) synth.Dataset {
	ds := make(synth.Dataset, 0, n)
	for i := 0; i < n; i++ {
		ds = append(ds, goodRecord(i))
	}
	return ds
}

func TestDataset_CleanPass(t *testing.T) {
	res := Dataset(goodDataset(5), Config{})

	assert.True(t, res.OK())
	assert.NoError(t, res.Err())
	assert.Equal(t, 5, res.Records)
}

func TestDataset_BandCardinality(t *testing.T) {
	ds := goodDataset(2)
	ds[1].HighRelevance = ds[1].HighRelevance[:3]
	ds[1].LowRelevance = append(ds[1].LowRelevance, "one extra low snippet that should not be here at all")

	res := Dataset(ds, Config{})

	require.Len(t, res.Violations, 2)
	assert.Equal(t, "high_relevance", res.Violations[0].Field)
	assert.Equal(t, "low_relevance", res.Violations[1].Field)
	assert.Equal(t, 2, res.Violations[0].Record)
}

func TestDataset_LengthFloors(t *testing.T) {
	ds := goodDataset(1)
	ds[0].Query = "too short"
	ds[0].GroundTruth = "also too short"

	res := Dataset(ds, Config{})

	require.Len(t, res.Violations, 2)
	assert.Contains(t, res.Violations[0].Message, "below minimum 80")
	assert.Contains(t, res.Violations[1].Message, "below minimum 150")
}

func TestDataset_QueryEqualsGroundTruth(t *testing.T) {
	ds := goodDataset(1)
	ds[0].GroundTruth = ds[0].Query

	res := Dataset(ds, Config{MinGroundTruthLen: 40})

	require.Len(t, res.Violations, 1)
	assert.Equal(t, "ground_truth", res.Violations[0].Field)
	assert.Contains(t, res.Violations[0].Message, "identical to query")
}

func TestDataset_DuplicateQueryAcrossRecords(t *testing.T) {
	ds := goodDataset(3)
	ds[2].Query = ds[0].Query

	res := Dataset(ds, Config{})

	require.Len(t, res.Violations, 1)
	v := res.Violations[0]
	assert.Equal(t, 3, v.Record)
	assert.Equal(t, "query", v.Field)
	assert.Contains(t, v.Message, "record 1")
}

func TestDataset_DuplicateGroundTruthAcrossRecords(t *testing.T) {
	ds := goodDataset(3)
	ds[1].GroundTruth = ds[2].GroundTruth

	res := Dataset(ds, Config{})

	require.Len(t, res.Violations, 1)
	assert.Equal(t, 3, res.Violations[0].Record)
	assert.Equal(t, "ground_truth", res.Violations[0].Field)
}

func TestDataset_GlobalRelevanceUniqueness(t *testing.T) {
	ds := goodDataset(2)
	ds[1].LowRelevance[0] = ds[0].HighRelevance[2]

	res := Dataset(ds, Config{})

	require.Len(t, res.Violations, 1)
	v := res.Violations[0]
	assert.Equal(t, 2, v.Record)
	assert.Equal(t, "low_relevance", v.Field)
	assert.Contains(t, v.Message, "high_relevance in record 1")
}

func TestDataset_BandStringCollidesWithQuery(t *testing.T) {
	ds := goodDataset(2)
	ds[1].MediumRelevance[3] = ds[0].Query

	res := Dataset(ds, Config{})

	require.Len(t, res.Violations, 1)
	assert.Contains(t, res.Violations[0].Message, "collides with query of record 1")
}

func TestDataset_EnumeratesEveryViolation(t *testing.T) {
	ds := goodDataset(3)
	ds[0].Query = "short"
	ds[1].HighRelevance = nil
	ds[2].Query = ds[1].Query
	ds[2].LowRelevance[1] = ds[0].MediumRelevance[0]

	res := Dataset(ds, Config{})

	assert.False(t, res.OK())
	assert.ErrorIs(t, res.Err(), ErrValidationFailed)
	assert.Len(t, res.Violations, 4)
}

func TestFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")
	require.NoError(t, goodDataset(4).WriteFile(path))

	res, err := File(path, Config{})

	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, 4, res.Records)
}

func TestFile_Missing(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "absent.json"), Config{})
	assert.Error(t, err)
}
