package source

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/tsawler/tabula/model"
)

// PDFDocument is a Document decoded with github.com/ledongthuc/pdf.
type PDFDocument struct {
	name   string
	closer io.Closer
	reader *pdf.Reader
	params TableDetectionParams
}

// OpenPDF opens the PDF at path.
func OpenPDF(path string, params TableDetectionParams) (*PDFDocument, error) {
	f, r, err := openPDF(path)
	if err != nil {
		if f != nil {
			f.Close()
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	return &PDFDocument{name: filepath.Base(path), closer: f, reader: r, params: params}, nil
}

// NewPDFDocument decodes a PDF held by r.
func NewPDFDocument(name string, r io.ReaderAt, size int64, params TableDetectionParams) (*PDFDocument, error) {
	reader, err := newPDFReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, name, err)
	}
	return &PDFDocument{name: name, reader: reader, params: params}, nil
}

// The decoder panics on some malformed inputs.
func openPDF(path string) (f *os.File, r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%v", rec)
		}
	}()
	return pdf.Open(path)
}

func newPDFReader(ra io.ReaderAt, size int64) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%v", rec)
		}
	}()
	return pdf.NewReader(ra, size)
}

// Name returns the document name.
func (d *PDFDocument) Name() string { return d.name }

// NumPages returns the page count.
func (d *PDFDocument) NumPages() int { return d.reader.NumPage() }

// Page returns page n (1-based).
func (d *PDFDocument) Page(n int) (Page, error) {
	if n < 1 || n > d.NumPages() {
		return nil, fmt.Errorf("%w: %d of %d", ErrPageRange, n, d.NumPages())
	}
	return &pdfPage{number: n, page: d.reader.Page(n), params: d.params}, nil
}

// Close closes the underlying file, if any.
func (d *PDFDocument) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}

type pdfPage struct {
	number int
	page   pdf.Page
	params TableDetectionParams

	lines  []textLine
	loaded bool
	err    error
}

// textLine is one decoded row of the page: its baseline, the largest font
// size seen on it and the runs merged into cells.
type textLine struct {
	y     float64
	size  float64
	cells []cellRun
}

type cellRun struct {
	text  string
	x     float64
	width float64
}

func (p *pdfPage) Number() int { return p.number }

func (p *pdfPage) Text() (string, error) {
	lines, err := p.load()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, c := range line.cells {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(c.text)
		}
	}
	return b.String(), nil
}

func (p *pdfPage) Tables() ([]Table, error) {
	lines, err := p.load()
	if err != nil {
		return nil, err
	}
	t, err := DetectTables(p.layout(lines), p.params)
	if err != nil {
		return nil, fmt.Errorf("%w: page %d: %v", ErrDecode, p.number, err)
	}
	return t, nil
}

// layout places every cell as a positioned fragment. All cells of a line
// share one height so the detector keeps them on the same grid row.
func (p *pdfPage) layout(lines []textLine) *model.Page {
	box := p.page.V.Key("MediaBox")
	page := model.NewPage(box.Index(2).Float64(), box.Index(3).Float64())
	page.Number = p.number
	for _, line := range lines {
		height := line.size
		if height <= 0 {
			height = 2 * p.params.CharWidth
		}
		for _, c := range line.cells {
			page.RawText = append(page.RawText, model.TextFragment{
				Text:     c.text,
				BBox:     model.NewBBox(c.x, line.y, c.width, height),
				FontSize: line.size,
			})
		}
	}
	return page
}

func (p *pdfPage) load() ([]textLine, error) {
	if p.loaded {
		return p.lines, p.err
	}
	p.loaded = true
	if p.page.V.IsNull() {
		return nil, nil
	}

	rows, err := textRows(p.page)
	if err != nil {
		p.err = fmt.Errorf("%w: page %d: %v", ErrDecode, p.number, err)
		return nil, p.err
	}
	for _, row := range rows {
		cells := splitCells(row.Content, p.params)
		if len(cells) == 0 {
			continue
		}
		line := textLine{y: float64(row.Position), cells: cells}
		for _, t := range row.Content {
			line.size = math.Max(line.size, t.FontSize)
		}
		p.lines = append(p.lines, line)
	}
	return p.lines, nil
}

func textRows(page pdf.Page) (rows pdf.Rows, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%v", rec)
		}
	}()
	return page.GetTextByRow()
}

// splitCells joins the text runs of one line into cells. Runs are sorted
// by X; a new cell starts when the gap after the estimated end of the
// previous run exceeds params.CellGap.
func splitCells(runs []pdf.Text, params TableDetectionParams) []cellRun {
	var cells []cellRun
	var cur strings.Builder
	start, end := 0.0, 0.0
	started := false

	flush := func() {
		cells = append(cells, cellRun{text: strings.TrimSpace(cur.String()), x: start, width: end - start})
		cur.Reset()
	}

	for _, t := range runs {
		s := NormalizeText(t.S)
		if strings.TrimSpace(s) == "" {
			if started {
				end += estimateWidth(s, params.CharWidth)
			}
			continue
		}
		width := t.W
		if width <= 0 {
			width = estimateWidth(s, params.CharWidth)
		}
		if started && t.X-end > params.CellGap {
			flush()
			start = t.X
		} else if started && t.X-end > params.CharWidth/2 {
			cur.WriteByte(' ')
		}
		if !started {
			start = t.X
		}
		cur.WriteString(s)
		end = t.X + width
		started = true
	}
	if started {
		flush()
	}
	return cells
}
