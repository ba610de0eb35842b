// Package layout maps positioned characters from a document extractor onto
// the grid. Characters arrive with device-space coordinates; the mapper
// clusters them into lines, words and column bands, then places them at
// terminal-cell resolution so the page's spatial layout survives the
// conversion.
package layout

import (
	"image/color"
	"math"
	"sort"

	"github.com/jackgrauer/chonk-note/internal/grid"
	"github.com/jackgrauer/chonk-note/internal/undo"
)

// PositionedChar is one extracted character in device space. It is consumed
// during placement and not retained afterwards.
type PositionedChar struct {
	Rune     rune
	X, Y     float64
	Width    float64
	Height   float64
	FontSize float64
	Color    color.Color
	Rotation float64
}

// Options controls placement. The gap multiples are expressed relative to
// the average character width of the line being clustered; LineGap is
// relative to font size.
type Options struct {
	Rows int
	Cols int

	// WordGap starts a new word; ColumnGap marks a column-boundary
	// candidate instead of a mere word break.
	WordGap   float64
	ColumnGap float64
	LineGap   float64

	// BandFrequency is the fraction of lines that must share a large gap
	// at the same x-range before it splits the page into column bands.
	BandFrequency float64
}

// DefaultOptions returns the placement defaults for a standard page.
func DefaultOptions() Options {
	return Options{
		Rows:          100,
		Cols:          200,
		WordGap:       0.3,
		ColumnGap:     1.5,
		LineGap:       0.5,
		BandFrequency: 0.6,
	}
}

// Report describes what placement did with the input, so that fidelity loss
// is visible to the caller rather than silent.
type Report struct {
	Placed             int
	SkippedMalformed   int
	SkippedZeroWidth   int
	RotatedLowFidelity int
	LinesCompressed    int
}

// LowFidelity reports whether any part of the page was placed with reduced
// accuracy.
func (r Report) LowFidelity() bool {
	return r.SkippedZeroWidth > 0 || r.RotatedLowFidelity > 0 ||
		r.LinesCompressed > 0 || r.SkippedMalformed > 0
}

type line struct {
	chars []PositionedChar
	ySum  float64
}

func (l *line) yMean() float64 { return l.ySum / float64(len(l.chars)) }

func (l *line) add(c PositionedChar) {
	l.chars = append(l.chars, c)
	l.ySum += c.Y
}

// clusterLines groups y-sorted characters into lines. A character joins the
// current line when its y differs from the line's running mean by less than
// LineGap times the font size.
func clusterLines(chars []PositionedChar, o Options) []*line {
	var lines []*line
	var cur *line
	for _, c := range chars {
		fs := c.FontSize
		if fs <= 0 {
			fs = c.Height
		}
		if fs <= 0 {
			fs = 1
		}
		if cur == nil || c.Y-cur.yMean() >= o.LineGap*fs {
			cur = &line{}
			lines = append(lines, cur)
		}
		cur.add(c)
	}
	for _, l := range lines {
		sort.SliceStable(l.chars, func(i, j int) bool {
			return l.chars[i].X < l.chars[j].X
		})
	}
	return lines
}

func avgWidth(chars []PositionedChar) float64 {
	sum := 0.0
	for _, c := range chars {
		sum += c.Width
	}
	return sum / float64(len(chars))
}

// gapSpan is a horizontal gap inside one line, a candidate column boundary.
type gapSpan struct {
	start, end float64
}

// columnGaps returns the column-boundary candidates of a line: gaps wider
// than ColumnGap times the line's average character width.
func columnGaps(l *line, o Options) []gapSpan {
	aw := avgWidth(l.chars)
	if aw <= 0 {
		return nil
	}
	var spans []gapSpan
	for i := 1; i < len(l.chars); i++ {
		prev := l.chars[i-1]
		gap := l.chars[i].X - (prev.X + prev.Width)
		if gap > o.ColumnGap*aw {
			spans = append(spans, gapSpan{start: prev.X + prev.Width, end: l.chars[i].X})
		}
	}
	return spans
}

// detectBands finds x positions where a large gap recurs across enough lines
// and returns the split points. Gaps from different lines count as the same
// boundary when their spans overlap.
func detectBands(lines []*line, o Options) []float64 {
	type cluster struct {
		start, end float64
		count      int
	}
	var clusters []cluster
	for _, l := range lines {
		for _, s := range columnGaps(l, o) {
			merged := false
			for i := range clusters {
				if s.start < clusters[i].end && clusters[i].start < s.end {
					if s.start > clusters[i].start {
						clusters[i].start = s.start
					}
					if s.end < clusters[i].end {
						clusters[i].end = s.end
					}
					clusters[i].count++
					merged = true
					break
				}
			}
			if !merged {
				clusters = append(clusters, cluster{start: s.start, end: s.end, count: 1})
			}
		}
	}
	need := int(o.BandFrequency * float64(len(lines)))
	if need < 1 {
		need = 1
	}
	var splits []float64
	for _, c := range clusters {
		if c.count > need {
			splits = append(splits, (c.start+c.end)/2)
		}
	}
	sort.Float64s(splits)
	return splits
}

// band is one reading-order column of the page, mapped to a sub-range of
// grid columns.
type band struct {
	x0, x1     float64 // device-space extent
	col0, cols int     // grid column range
}

func makeBands(minX, maxX float64, splits []float64, totalCols int) []band {
	edges := append([]float64{minX}, splits...)
	edges = append(edges, maxX)
	bands := make([]band, 0, len(edges)-1)
	span := maxX - minX
	if span <= 0 {
		span = 1
	}
	col := 0
	for i := 0; i < len(edges)-1; i++ {
		frac := (edges[i+1] - edges[i]) / span
		w := int(frac * float64(totalCols))
		if w < 1 {
			w = 1
		}
		if i == len(edges)-2 {
			w = totalCols - col
			if w < 1 {
				w = 1
			}
		}
		bands = append(bands, band{x0: edges[i], x1: edges[i+1], col0: col, cols: w})
		col += w
	}
	return bands
}

func (b band) colFor(x float64) int {
	span := b.x1 - b.x0
	if span <= 0 {
		return b.col0
	}
	c := b.col0 + int((x-b.x0)/span*float64(b.cols-1))
	if c < b.col0 {
		c = b.col0
	}
	if max := b.col0 + b.cols - 1; c > max {
		c = max
	}
	return c
}

func bandFor(bands []band, x float64) band {
	for _, b := range bands {
		if x < b.x1 {
			return b
		}
	}
	return bands[len(bands)-1]
}

// classify buckets a font size relative to the page median.
func classify(size, median float64) grid.FontClass {
	if median <= 0 || size <= 0 {
		return grid.FontNormal
	}
	switch ratio := size / median; {
	case ratio >= 1.8:
		return grid.FontTitle
	case ratio >= 1.3:
		return grid.FontLarge
	case ratio <= 0.85:
		return grid.FontSmall
	default:
		return grid.FontNormal
	}
}

func medianFontSize(chars []PositionedChar) float64 {
	sizes := make([]float64, 0, len(chars))
	for _, c := range chars {
		if c.FontSize > 0 {
			sizes = append(sizes, c.FontSize)
		}
	}
	if len(sizes) == 0 {
		return 0
	}
	sort.Float64s(sizes)
	return sizes[len(sizes)/2]
}

type placement struct {
	pos  grid.Pos
	cell grid.Cell
}

// place runs the full clustering pipeline and returns cell placements
// without touching any grid.
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func place(chars []PositionedChar, o Options) ([]placement, Report) {
	var rep Report

	kept := make([]PositionedChar, 0, len(chars))
	for _, c := range chars {
		if !finite(c.X) || !finite(c.Y) || !finite(c.Width) || !finite(c.Height) {
			rep.SkippedMalformed++
			continue
		}
		if c.Rune == 0 || c.Width <= 0 || c.Height <= 0 {
			rep.SkippedZeroWidth++
			continue
		}
		if c.Rotation != 0 {
			// Placed at the nominal anchor, no rotation-aware layout.
			rep.RotatedLowFidelity++
		}
		kept = append(kept, c)
	}
	if len(kept) == 0 {
		return nil, rep
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Y != kept[j].Y {
			return kept[i].Y < kept[j].Y
		}
		return kept[i].X < kept[j].X
	})

	lines := clusterLines(kept, o)

	minX, maxX := kept[0].X, kept[0].X
	for _, c := range kept {
		if c.X < minX {
			minX = c.X
		}
		if right := c.X + c.Width; right > maxX {
			maxX = right
		}
	}
	bands := makeBands(minX, maxX, detectBands(lines, o), o.Cols)
	median := medianFontSize(kept)

	rowFor := func(i int) int { return i }
	if len(lines) > o.Rows && o.Rows > 0 {
		// Proportional bucketing: several source lines share a grid row.
		rep.LinesCompressed = len(lines) - o.Rows
		n := len(lines)
		rowFor = func(i int) int { return i * o.Rows / n }
	}

	var out []placement
	for li, l := range lines {
		row := rowFor(li)
		aw := avgWidth(l.chars)
		lastCol := -2 // col after the previous char in this row
		for i, c := range l.chars {
			b := bandFor(bands, c.X)
			col := b.colFor(c.X)
			if i > 0 {
				gap := c.X - (l.chars[i-1].X + l.chars[i-1].Width)
				if aw > 0 && gap <= o.WordGap*aw {
					// Same word: keep characters contiguous even when the
					// proportional mapping would spread or collapse them.
					col = lastCol + 1
				} else if col <= lastCol+1 {
					// Word break needs at least one blank column.
					col = lastCol + 2
				}
			}
			cell := grid.Cell{Rune: c.Rune, Style: grid.Style{
				Class: classify(c.FontSize, median),
				Fg:    c.Color,
			}}
			out = append(out, placement{pos: grid.Pos{Row: row, Col: col}, cell: cell})
			rep.Placed++
			lastCol = col
		}
	}
	return out, rep
}

// Apply places the characters into g. The whole page is recorded as a single
// undo entry when log is non-nil, so a re-extract is reversible in one step.
func Apply(g *grid.Grid, log *undo.Log, chars []PositionedChar, o Options) Report {
	placements, rep := place(chars, o)
	rec := undo.NewRecorder(g)
	for _, p := range placements {
		rec.Set(p.pos, p.cell)
	}
	if log != nil {
		rec.Commit(log)
	}
	return rep
}
