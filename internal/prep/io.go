// Package reading the input sequence and writing search results
package prep

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"

	"go.uber.org/multierr"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/jsdoublel/dbsearch/internal/config"
	"github.com/jsdoublel/dbsearch/internal/derive"
	"github.com/jsdoublel/dbsearch/internal/search"
	"github.com/jsdoublel/dbsearch/internal/stats"
)

// Sequence searched when none is given
const DefaultSequence = "aaccadd"

var (
	ErrInvalidFile   = errors.New("invalid file")
	ErrInvalidFormat = errors.New("invalid format")
	ErrWritingFile   = errors.New("error writing file")

	depLineColor   = color.RGBA{R: 37, G: 150, B: 190, A: 255}
	combLineColor  = color.RGBA{R: 190, G: 77, B: 37, A: 255}
	plotMarkerShap = draw.SquareGlyph{}
)

const (
	plotH = 4 * vg.Inch
	plotW = 6 * vg.Inch
)

// Returns the sequence given as argument, read from file, or the default
// sequence when neither is set. Setting both is an error.
func ReadInput(arg, file string) (derive.Sequence, error) {
	switch {
	case arg != "" && file != "":
		return nil, fmt.Errorf("%w, sequence given both as argument and as file %s", ErrInvalidFile, file)
	case file != "":
		return ReadSequenceFile(file)
	case arg == "":
		arg = DefaultSequence
	}
	seq, err := derive.ParseSequence(arg)
	if err != nil {
		return nil, fmt.Errorf("%w, %s", ErrInvalidFormat, err.Error())
	}
	return seq, nil
}

// Reads and validates a file holding exactly one sequence
func ReadSequenceFile(file string) (derive.Sequence, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("error reading sequence file: %w", err)
	}
	data = bytes.TrimSpace(data)
	if bytes.Count(data, []byte{'\n'}) != 0 || len(data) == 0 {
		return nil, fmt.Errorf("%w, there should only be exactly one sequence in %s", ErrInvalidFile, file)
	}
	seq, err := derive.ParseSequence(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w, error parsing sequence from %s: %s", ErrInvalidFormat, file, err.Error())
	}
	return seq, nil
}

// Write per-depth statistics csv to writer.
//
// Columns: "Depth", "Dependency", "Combination", "Frontier", "Covered", "Max Span"
func WriteLevelStatsCSV(levels []stats.LevelStats, w io.Writer) (err error) {
	data := make([][]string, len(levels)+1)
	data[0] = []string{"Depth", "Dependency", "Combination", "Frontier", "Covered", "Max Span"}
	for i, l := range levels {
		data[i+1] = []string{
			strconv.Itoa(l.Depth),
			strconv.Itoa(l.Dependency),
			strconv.Itoa(l.Combination),
			strconv.Itoa(l.Frontier),
			strconv.FormatUint(uint64(l.Covered), 10),
			strconv.Itoa(l.MaxSpan),
		}
	}
	writer := csv.NewWriter(w)
	defer func() {
		writer.Flush()
		err = multierr.Append(err, writer.Error())
	}()
	if err = writer.WriteAll(data); err != nil {
		err = fmt.Errorf("%w, %s", ErrWritingFile, err)
	}
	return
}

// Plots the number of nodes created at every depth to <prefix>.png
func WriteLevelPlot(levels []stats.LevelStats, prefix string) error {
	p := plot.New()
	p.Title.Text = "Derivation nodes per depth"
	p.X.Label.Text = "Depth"
	p.Y.Label.Text = "Nodes created"
	p.X.Min = 0
	p.X.Max = float64(len(levels))
	p.Y.Min = 0
	p.X.Tick.Marker = plot.TickerFunc(func(_, max float64) []plot.Tick {
		ticks := make([]plot.Tick, 0, int(max)+1)
		for i := range int(max) + 1 {
			ticks = append(ticks, plot.Tick{Value: float64(i), Label: strconv.Itoa(i)})
		}
		return ticks
	})
	dep := make(plotter.XYs, len(levels)+1)
	comb := make(plotter.XYs, len(levels)+1)
	for i, l := range levels {
		dep[i+1].X, dep[i+1].Y = float64(l.Depth), float64(l.Dependency)
		comb[i+1].X, comb[i+1].Y = float64(l.Depth), float64(l.Combination)
	}
	for _, series := range []struct {
		name  string
		pts   plotter.XYs
		color color.Color
	}{
		{name: "dependency", pts: dep, color: depLineColor},
		{name: "combination", pts: comb, color: combLineColor},
	} {
		line, points, err := plotter.NewLinePoints(series.pts)
		if err != nil {
			return err
		}
		line.Color = series.color
		line.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		points.Color = series.color
		points.Shape = plotMarkerShap
		points.Radius = vg.Points(4)
		p.Add(line, points)
		p.Legend.Add(series.name, line, points)
	}
	if err := p.Save(plotW, plotH, fmt.Sprintf("%s.png", prefix)); err != nil {
		return fmt.Errorf("%w, %s", ErrWritingFile, err)
	}
	return nil
}

// Writes the derivation tree to file in newick format
func WriteNewick(store *derive.Store, file string) error {
	if err := os.WriteFile(file, []byte(store.Newick()+"\n"), 0644); err != nil {
		return fmt.Errorf("%w, %s", ErrWritingFile, err)
	}
	return nil
}

// Writes every output file set in out. All outputs are attempted; errors are
// combined.
func WriteOutputs(res *search.Result, n int, out config.Output) (err error) {
	if out.Newick != "" {
		err = multierr.Append(err, WriteNewick(res.Store, out.Newick))
	}
	if out.StatsCSV == "" && out.PlotPrefix == "" {
		return
	}
	levels := stats.Levels(res, n)
	if out.StatsCSV != "" {
		err = multierr.Append(err, writeStatsFile(levels, out.StatsCSV))
	}
	if out.PlotPrefix != "" {
		err = multierr.Append(err, WriteLevelPlot(levels, out.PlotPrefix))
	}
	return
}

func writeStatsFile(levels []stats.LevelStats, file string) (err error) {
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("%w, %s", ErrWritingFile, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	return WriteLevelStatsCSV(levels, f)
}
