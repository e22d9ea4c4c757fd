package upsetgo_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/upsetgo"
	"github.com/hupe1980/upsetgo/codec"
)

func buildChart(t *testing.T) *upsetgo.Chart {
	t.Helper()
	chart, err := upsetgo.New(sampleTable(t), "A", "B", "C").
		Title("Sample UpSet Plot").
		Build()
	require.NoError(t, err)
	return chart
}

func TestChart_JSON(t *testing.T) {
	data, err := buildChart(t).JSON()
	require.NoError(t, err)

	assert.Contains(t, string(data), `"$schema"`)
	assert.Contains(t, string(data), `"intersection_id"`)
	assert.Contains(t, string(data), "Sample UpSet Plot")
}

func TestChart_JSON_CodecsAgree(t *testing.T) {
	table := sampleTable(t)

	std, err := upsetgo.New(table, "A", "B", "C").Codec(codec.JSON{}).Build()
	require.NoError(t, err)
	fast, err := upsetgo.New(table, "A", "B", "C").Codec(codec.GoJSON{}).Build()
	require.NoError(t, err)

	stdJSON, err := std.JSON()
	require.NoError(t, err)
	fastJSON, err := fast.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, string(stdJSON), string(fastJSON))
}

func TestChart_WriteTo(t *testing.T) {
	chart := buildChart(t)

	var buf bytes.Buffer
	n, err := chart.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	data, err := chart.JSON()
	require.NoError(t, err)
	assert.Equal(t, data, buf.Bytes())
}

func TestChart_Save(t *testing.T) {
	chart := buildChart(t)
	path := filepath.Join(t.TempDir(), "upset.vl.json")

	require.NoError(t, chart.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	expected, err := chart.JSON()
	require.NoError(t, err)
	assert.Equal(t, expected, data)
}

func TestChart_SaveGzip(t *testing.T) {
	chart := buildChart(t)
	path := filepath.Join(t.TempDir(), "upset.vl.json.gz")

	require.NoError(t, chart.Save(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(gz)
	require.NoError(t, err)

	expected, err := chart.JSON()
	require.NoError(t, err)
	assert.Equal(t, expected, data)
}

func TestChart_SceneRoundTrip(t *testing.T) {
	chart := buildChart(t)

	data, err := chart.JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, codec.Default.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "vconcat")
	assert.Contains(t, decoded, "config")
}
