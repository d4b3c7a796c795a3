package pdftext

import (
	"math"
	"sort"
	"strings"
)

// glyph is one positioned run of text in page space (origin bottom-left).
type glyph struct {
	X, Y, W float64
	Size    float64
	S       string
}

// word is a run of glyphs with no visible gap.
type word struct {
	X0, X1 float64
	Text   string
}

func (w word) mid() float64 { return (w.X0 + w.X1) / 2 }

// textLine is a set of words sharing a baseline, left to right.
type textLine struct {
	Y     float64
	Size  float64
	Words []word
}

func (l textLine) String() string {
	parts := make([]string, len(l.Words))
	for i, w := range l.Words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

const (
	defaultSize = 10.0
	// minimum gap, as a fraction of the font size, that separates two words.
	wordGapRatio = 0.2
	// minimum gap, as a fraction of the font size, that separates two cells.
	cellGapRatio = 1.0
)

func sizeOf(g glyph) float64 {
	if g.Size <= 0 {
		return defaultSize
	}
	return g.Size
}

// groupLines orders glyphs top to bottom and left to right, grouping them into
// lines by baseline and into words by horizontal gaps.
func groupLines(glyphs []glyph) []textLine {
	if len(glyphs) == 0 {
		return nil
	}
	sorted := make([]glyph, len(glyphs))
	copy(sorted, glyphs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var (
		lines  []textLine
		bucket []glyph
	)
	flush := func() {
		if len(bucket) > 0 {
			lines = append(lines, buildLine(bucket))
			bucket = nil
		}
	}
	for _, g := range sorted {
		if len(bucket) > 0 && math.Abs(bucket[0].Y-g.Y) > sizeOf(bucket[0])/2 {
			flush()
		}
		bucket = append(bucket, g)
	}
	flush()

	out := lines[:0]
	for _, l := range lines {
		if len(l.Words) > 0 {
			out = append(out, l)
		}
	}
	return out
}

func buildLine(glyphs []glyph) textLine {
	sort.SliceStable(glyphs, func(i, j int) bool { return glyphs[i].X < glyphs[j].X })

	line := textLine{Y: glyphs[0].Y, Size: sizeOf(glyphs[0])}
	var cur *word
	for _, g := range glyphs {
		if strings.TrimSpace(g.S) == "" {
			cur = nil
			continue
		}
		w := g.W
		if w <= 0 {
			w = sizeOf(g) / 2 * float64(len([]rune(g.S)))
		}
		if cur != nil && g.X-cur.X1 > sizeOf(g)*wordGapRatio {
			cur = nil
		}
		if cur == nil {
			line.Words = append(line.Words, word{X0: g.X, X1: g.X + w, Text: g.S})
			cur = &line.Words[len(line.Words)-1]
			continue
		}
		cur.Text += g.S
		cur.X1 = math.Max(cur.X1, g.X+w)
	}
	return line
}

// cells merges the words of a line into phrases separated by wide gaps.
func (l textLine) cells() []word {
	var out []word
	for _, w := range l.Words {
		if n := len(out); n > 0 && w.X0-out[n-1].X1 <= l.Size*cellGapRatio {
			out[n-1].Text += " " + w.Text
			out[n-1].X1 = w.X1
			continue
		}
		out = append(out, w)
	}
	return out
}

// span is a closed horizontal interval.
type span struct{ X0, X1 float64 }

// columnSpans returns the horizontal extents of the columns formed by the union
// of all cell extents, left to right.
func columnSpans(rows [][]word) []span {
	var spans []span
	for _, row := range rows {
		for _, c := range row {
			spans = append(spans, span{c.X0, c.X1})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].X0 < spans[j].X0 })

	var merged []span
	for _, s := range spans {
		if n := len(merged); n > 0 && s.X0 <= merged[n-1].X1 {
			merged[n-1].X1 = math.Max(merged[n-1].X1, s.X1)
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// columnOf returns the index of the span containing x, or the nearest one.
func columnOf(spans []span, x float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, s := range spans {
		if x >= s.X0 && x <= s.X1 {
			return i
		}
		d := math.Min(math.Abs(x-s.X0), math.Abs(x-s.X1))
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// genericGrid lays out every line with at least two cells on columns inferred
// from whitespace.
func genericGrid(lines []textLine) [][]string {
	var rows [][]word
	for _, l := range lines {
		if c := l.cells(); len(c) >= 2 {
			rows = append(rows, c)
		}
	}
	if len(rows) < 2 {
		return nil
	}

	spans := columnSpans(rows)
	grid := make([][]string, 0, len(rows))
	for _, row := range rows {
		out := make([]string, len(spans))
		for _, c := range row {
			idx := columnOf(spans, c.mid())
			out[idx] = joinCell(out[idx], c.Text)
		}
		grid = append(grid, out)
	}
	return grid
}

// ruledGrid assigns words to the columns delimited by vertical rulings. Only lines
// within the vertical extent of the rulings take part. Columns that stay empty on
// every row are dropped.
func ruledGrid(lines []textLine, rulings []float64, bottom, top float64) [][]string {
	var grid [][]string
	for _, l := range lines {
		if l.Y < bottom-l.Size/2 || l.Y > top+l.Size/2 {
			continue
		}
		row := make([]string, len(rulings)+1)
		for _, w := range l.Words {
			idx := sort.SearchFloat64s(rulings, w.mid())
			row[idx] = joinCell(row[idx], w.Text)
		}
		grid = append(grid, row)
	}
	return dropEmptyColumns(grid)
}

func dropEmptyColumns(grid [][]string) [][]string {
	if len(grid) == 0 {
		return nil
	}
	keep := make([]bool, len(grid[0]))
	for _, row := range grid {
		for i, c := range row {
			if c != "" {
				keep[i] = true
			}
		}
	}
	out := make([][]string, 0, len(grid))
	for _, row := range grid {
		var r []string
		for i, c := range row {
			if keep[i] {
				r = append(r, c)
			}
		}
		if !allEmpty(r) {
			out = append(out, r)
		}
	}
	return out
}

func allEmpty(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}

func joinCell(cell, text string) string {
	if cell == "" {
		return text
	}
	return cell + " " + text
}
