package source

import "fmt"

// MemoryPage is page content supplied directly by the caller.
type MemoryPage struct {
	Text   string
	Tables []Table
	// Err, when set, is returned by both Text and Tables.
	Err error
}

// MemoryDocument is a Document backed by in-memory pages.
type MemoryDocument struct {
	name  string
	pages []MemoryPage
}

// NewMemoryDocument creates a document from pages in order.
func NewMemoryDocument(name string, pages ...MemoryPage) *MemoryDocument {
	return &MemoryDocument{name: name, pages: pages}
}

// Name returns the document name.
func (d *MemoryDocument) Name() string { return d.name }

// NumPages returns the page count.
func (d *MemoryDocument) NumPages() int { return len(d.pages) }

// Page returns page n (1-based).
func (d *MemoryDocument) Page(n int) (Page, error) {
	if n < 1 || n > len(d.pages) {
		return nil, fmt.Errorf("%w: %d of %d", ErrPageRange, n, len(d.pages))
	}
	return &memoryPage{number: n, content: d.pages[n-1]}, nil
}

// Close is a no-op.
func (d *MemoryDocument) Close() error { return nil }

type memoryPage struct {
	number  int
	content MemoryPage
}

func (p *memoryPage) Number() int { return p.number }

func (p *memoryPage) Text() (string, error) {
	if p.content.Err != nil {
		return "", p.content.Err
	}
	return NormalizeText(p.content.Text), nil
}

func (p *memoryPage) Tables() ([]Table, error) {
	if p.content.Err != nil {
		return nil, p.content.Err
	}
	out := make([]Table, len(p.content.Tables))
	for i, t := range p.content.Tables {
		out[i] = normalizeTable(t)
	}
	return out, nil
}
