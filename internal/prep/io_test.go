package prep

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evolbioinfo/gotree/io/newick"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsdoublel/dbsearch/internal/config"
	"github.com/jsdoublel/dbsearch/internal/derive"
	"github.com/jsdoublel/dbsearch/internal/search"
	"github.com/jsdoublel/dbsearch/internal/stats"
)

func TestReadInput(t *testing.T) {
	testCases := []struct {
		name        string
		arg         string
		file        string
		expected    string
		expectedErr error
	}{
		{name: "argument", arg: "aabb", expected: "aabb"},
		{name: "default", expected: DefaultSequence},
		{name: "file", file: "testdata/seq.txt", expected: "aaccadd"},
		{name: "padded file", file: "testdata/padded.txt", expected: "ccbbaa"},
		{name: "both", arg: "aa", file: "testdata/seq.txt", expectedErr: ErrInvalidFile},
		{name: "bad argument", arg: "aaz", expectedErr: ErrInvalidFormat},
		{name: "two sequences", file: "testdata/two.txt", expectedErr: ErrInvalidFile},
		{name: "empty file", file: "testdata/empty.txt", expectedErr: ErrInvalidFile},
		{name: "bad file", file: "testdata/bad.txt", expectedErr: ErrInvalidFormat},
	}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			seq, err := ReadInput(test.arg, test.file)
			switch {
			case !errors.Is(err, test.expectedErr):
				t.Errorf("Failed with unexpected error %+v", err)
			case errors.Is(err, test.expectedErr) && err != nil:
				t.Logf("%s", err)
			case test.expectedErr == nil:
				if seq.String() != test.expected {
					t.Errorf("read %s, expected %s", seq, test.expected)
				}
			}
		})
	}
	_, err := ReadInput("", "testdata/missing.txt")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func runSearch(t *testing.T, input string) (*search.Result, int) {
	t.Helper()
	seq, err := derive.ParseSequence(input)
	require.NoError(t, err)
	res, err := search.New(seq).Run(context.Background())
	require.NoError(t, err)
	return res, len(seq)
}

func TestWriteLevelStatsCSV(t *testing.T) {
	res, n := runSearch(t, "aaccadd")
	var buf bytes.Buffer
	require.NoError(t, WriteLevelStatsCSV(stats.Levels(res, n), &buf))
	expected := "Depth,Dependency,Combination,Frontier,Covered,Max Span\n" +
		"1,6,2,8,6,4\n" +
		"2,2,2,4,7,7\n" +
		"3,0,0,0,0,0\n"
	assert.Equal(t, expected, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteLevelStatsCSVError(t *testing.T) {
	res, n := runSearch(t, "aa")
	err := WriteLevelStatsCSV(stats.Levels(res, n), failingWriter{})
	assert.True(t, errors.Is(err, ErrWritingFile), "got %v", err)
}

func TestWriteOutputs(t *testing.T) {
	res, n := runSearch(t, "aaccadd")
	dir := t.TempDir()
	out := config.Output{
		Newick:     filepath.Join(dir, "tree.nwk"),
		StatsCSV:   filepath.Join(dir, "stats.csv"),
		PlotPrefix: filepath.Join(dir, "levels"),
	}
	require.NoError(t, WriteOutputs(res, n, out))

	nwk, err := os.ReadFile(out.Newick)
	require.NoError(t, err)
	tre, err := newick.NewParser(strings.NewReader(strings.TrimSpace(string(nwk)))).Parse()
	require.NoError(t, err)
	assert.Len(t, tre.Nodes(), res.Store.Len())

	csvData, err := os.ReadFile(out.StatsCSV)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(csvData)), "\n"), res.Depth+1)

	info, err := os.Stat(out.PlotPrefix + ".png")
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteOutputsErrors(t *testing.T) {
	res, n := runSearch(t, "aa")
	missing := filepath.Join(t.TempDir(), "missing", "dir")
	out := config.Output{
		Newick:   filepath.Join(missing, "tree.nwk"),
		StatsCSV: filepath.Join(missing, "stats.csv"),
	}
	err := WriteOutputs(res, n, out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWritingFile))
	assert.Contains(t, err.Error(), "tree.nwk")
	assert.Contains(t, err.Error(), "stats.csv")
}

func TestWriteOutputsNone(t *testing.T) {
	res, n := runSearch(t, "aa")
	assert.NoError(t, WriteOutputs(res, n, config.Output{}))
}
