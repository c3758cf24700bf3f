package output

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shamaton/msgpack/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"popstats/internal/bootstrap"
	"popstats/internal/engine"
	"popstats/pkg/api"
)

func est(mean, se ...float64) bootstrap.Estimate {
	return bootstrap.Estimate{Mean: mean, SE: se}
}

func freqsResult() engine.Result {
	return engine.Result{
		Family:  engine.Freqs,
		Index:   0,
		Regions: 2,
		Units:   3,
		Pi:      est(0.02, 0.0015),
		SFS:     bootstrap.Estimate{Mean: []float64{1.0 / 3, 2.0 / 3}, SE: []float64{0.1, 0.1}},
		Anc:     bootstrap.Estimate{Mean: []float64{0.9, math.NaN()}, SE: []float64{0.05, math.NaN()}},
	}
}

func TestFormatsStable(t *testing.T) {
	assert.Equal(t, "text", FormatText)
	assert.Equal(t, "json", FormatJSON)
	assert.Equal(t, "jsonl", FormatJSONL)
	assert.Equal(t, "msgpack", FormatMsgpack)
	assert.Equal(t, "txt", Extension(FormatText))
}

func TestTextLinesFreqs(t *testing.T) {
	got := TextLines(freqsResult())
	assert.Equal(t, []string{
		"0",
		"0.02\t0.0015",
		"[0.3333333333333333, 0.6666666666666666]",
		"[0.1, 0.1]",
		"[0.9, nan]",
		"[0.05, nan]",
	}, got)
}

func TestTextLinesLDAndFst(t *testing.T) {
	ld := engine.Result{
		Family: engine.LD, Index: 1,
		R2:     bootstrap.Estimate{Mean: []float64{0.5, 0}, SE: []float64{0.01, 0}},
		DPrime: bootstrap.Estimate{Mean: []float64{1}, SE: []float64{0}},
	}
	assert.Equal(t, []string{"1", "[0.5, 0]", "[0.01, 0]", "[1]", "[0]"}, TextLines(ld))

	fst := engine.Result{Family: engine.Fst, Index: 2, Fst: est(0.125, 0.5)}
	assert.Equal(t, []string{"2\t0.125\t0.5"}, TextLines(fst))
}

func TestStreamTextKeepsArrivalOrder(t *testing.T) {
	in := make(chan engine.Result, 2)
	in <- engine.Result{Family: engine.Fst, Index: 0, Fst: est(1, 0)}
	in <- engine.Result{Family: engine.Fst, Index: 1, Fst: est(2, 0)}
	close(in)

	var b bytes.Buffer
	require.NoError(t, StreamText(&b, in))
	assert.Equal(t, "0\t1\t0\n1\t2\t0\n", b.String())
}

func TestWriteJSONNullsUndefined(t *testing.T) {
	var b bytes.Buffer
	info := RunInfo{RunID: "r1", Replicates: 10, Seed: 7}
	require.NoError(t, WriteJSON(&b, info, []engine.Result{freqsResult()}))
	assert.True(t, strings.Contains(b.String(), "null"))

	var rep api.ReportV1
	require.NoError(t, json.Unmarshal(b.Bytes(), &rep))
	require.Len(t, rep.Records, 1)
	rec := rep.Records[0]
	assert.Equal(t, "freqs", rec.Section)
	assert.Nil(t, rec.R2)
	require.NotNil(t, rec.Anc)
	assert.Equal(t, 0.9, *rec.Anc.Mean[0])
	assert.Nil(t, rec.Anc.Mean[1])
	assert.Equal(t, 0.02, *rec.Pi.Mean[0])
}

func TestWriteMsgpack(t *testing.T) {
	var b bytes.Buffer
	info := RunInfo{RunID: "r2", Replicates: 5, Seed: 1}
	list := []engine.Result{freqsResult(), {Family: engine.Fst, Index: 0, Fst: est(0.3, 0.01)}}
	require.NoError(t, WriteMsgpack(&b, info, list))

	var rep api.ReportV1
	require.NoError(t, msgpack.Unmarshal(b.Bytes(), &rep))
	assert.Equal(t, "r2", rep.RunID)
	require.Len(t, rep.Records, 2)
	assert.Equal(t, "fst", rep.Records[1].Section)
	assert.Equal(t, 0.3, *rep.Records[1].Fst.Mean[0])
	assert.Nil(t, rep.Records[0].Anc.SE[1])
}
