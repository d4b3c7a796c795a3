// Package pdftext reads the text layer of statement PDFs.
//
// It renders page text line by line for the text strategies and segments pages
// into cell grids for the table strategy. Scanned documents without a text layer
// are reported with ErrNoExtractableText; there is no OCR.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dslipak/pdf"

	"github.com/FACorreiaa/statement-importer/internal/domain/import/extraction"
)

var (
	ErrNoExtractableText  = errors.New("no extractable text")
	ErrUnreadableDocument = errors.New("unreadable PDF document")
	ErrPageOutOfRange     = errors.New("page out of range")
)

// ExtractText returns the text of every page, one line per baseline, top to bottom.
func ExtractText(data []byte) (string, error) {
	r, err := open(data)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		lines, err := readLines(p)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		for _, l := range lines {
			b.WriteString(l.String())
			b.WriteByte('\n')
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrNoExtractableText
	}
	return text, nil
}

// Extractor exposes ExtractText as a collaborator value.
type Extractor struct{}

func (Extractor) ExtractText(data []byte) (string, error) { return ExtractText(data) }

// Segmenter splits PDF pages into tables.
type Segmenter struct{}

// PageCount returns the number of pages in the document.
func (Segmenter) PageCount(data []byte) (int, error) {
	r, err := open(data)
	if err != nil {
		return 0, err
	}
	return r.NumPage(), nil
}

// Tables returns the tables found on a 1-based page. The ruled detector runs first
// and needs at least two vertical rulings; otherwise columns are inferred from
// whitespace between text runs.
func (Segmenter) Tables(data []byte, page int) ([]extraction.Table, error) {
	r, err := open(data)
	if err != nil {
		return nil, err
	}
	if page < 1 || page > r.NumPage() {
		return nil, fmt.Errorf("%w: %d", ErrPageOutOfRange, page)
	}
	p := r.Page(page)
	if p.V.IsNull() {
		return nil, fmt.Errorf("%w: %d", ErrPageOutOfRange, page)
	}

	content, err := readContent(p)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", page, err)
	}
	lines := groupLines(toGlyphs(content.Text))

	if rulings, bottom, top := verticalRulings(content.Rect); len(rulings) >= 2 {
		if grid := ruledGrid(lines, rulings, bottom, top); len(grid) > 0 {
			return []extraction.Table{grid}, nil
		}
	}
	if grid := genericGrid(lines); len(grid) > 0 {
		return []extraction.Table{grid}, nil
	}
	return nil, nil
}

func open(data []byte) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r, err = nil, fmt.Errorf("%w: %v", ErrUnreadableDocument, rec)
		}
	}()
	r, err = pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}
	return r, nil
}

// readContent recovers from the panics the PDF library raises on malformed streams.
func readContent(p pdf.Page) (c pdf.Content, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrUnreadableDocument, rec)
		}
	}()
	return p.Content(), nil
}

func readLines(p pdf.Page) ([]textLine, error) {
	content, err := readContent(p)
	if err != nil {
		return nil, err
	}
	return groupLines(toGlyphs(content.Text)), nil
}

func toGlyphs(texts []pdf.Text) []glyph {
	glyphs := make([]glyph, 0, len(texts))
	for _, t := range texts {
		glyphs = append(glyphs, glyph{X: t.X, Y: t.Y, W: t.W, Size: t.FontSize, S: t.S})
	}
	return glyphs
}

const (
	// rulings are at most this wide and at least this tall, in points.
	maxRulingWidth  = 2.0
	minRulingHeight = 10.0
	rulingMergeDist = 2.0
)

// verticalRulings returns the distinct x positions of thin vertical rectangles,
// sorted, along with their combined vertical extent.
func verticalRulings(rects []pdf.Rect) (xs []float64, bottom, top float64) {
	bottom, top = math.Inf(1), math.Inf(-1)
	for _, r := range rects {
		x0, x1 := math.Min(r.Min.X, r.Max.X), math.Max(r.Min.X, r.Max.X)
		y0, y1 := math.Min(r.Min.Y, r.Max.Y), math.Max(r.Min.Y, r.Max.Y)
		if x1-x0 > maxRulingWidth || y1-y0 < minRulingHeight {
			continue
		}
		xs = append(xs, (x0+x1)/2)
		bottom, top = math.Min(bottom, y0), math.Max(top, y1)
	}
	sort.Float64s(xs)

	var distinct []float64
	for _, x := range xs {
		if n := len(distinct); n > 0 && x-distinct[n-1] <= rulingMergeDist {
			continue
		}
		distinct = append(distinct, x)
	}
	return distinct, bottom, top
}
