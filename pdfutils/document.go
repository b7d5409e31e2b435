// Package pdfutils wraps the PDF engines behind the extraction pipeline: a
// MuPDF handle for plain page text and a unipdf reader for annotations and
// positioned text marks. One Document is opened per processing run and must
// be closed when the run ends.
package pdfutils

import (
	"fmt"
	"io"
	"os"

	"github.com/gen2brain/go-fitz"
	"github.com/golang/geo/r2"
	"github.com/mgmeyers/unipdf/v3/extractor"
	"github.com/mgmeyers/unipdf/v3/model"
)

// Document is a read-only handle on a single PDF. Page content is parsed
// lazily and cached, since the title search may revisit the same page once
// per annotation.
type Document struct {
	path    string
	file    *os.File
	fitzDoc *fitz.Document
	reader  *model.PdfReader
	pages   int
	cache   map[int]*pageCache
}

type pageCache struct {
	page      *model.PdfPage
	plainText *string
	extracted string
	marks     []extractor.TextMark
	markRects []r2.Rect
	blocks    []Block
	hasMarks  bool
	hasBlocks bool
}

// Open opens the document with both engines. Any failure leaves nothing to
// release on the caller's side.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	reader, err := model.NewPdfReader(io.ReadSeeker(f))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	fitzDoc, err := fitz.New(path)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	pages, err := reader.GetNumPages()
	if err != nil {
		fitzDoc.Close()
		f.Close()
		return nil, fmt.Errorf("reading page count of %s: %w", path, err)
	}

	return &Document{
		path:    path,
		file:    f,
		fitzDoc: fitzDoc,
		reader:  reader,
		pages:   pages,
		cache:   map[int]*pageCache{},
	}, nil
}

// Path returns the path the document was opened from.
func (d *Document) Path() string {
	return d.path
}

// NumPages returns the page count.
func (d *Document) NumPages() int {
	return d.pages
}

// Close releases both engine handles.
func (d *Document) Close() error {
	ferr := d.fitzDoc.Close()
	if err := d.file.Close(); err != nil {
		return err
	}
	return ferr
}

func (d *Document) pageAt(pageIndex int) (*pageCache, error) {
	if cached, ok := d.cache[pageIndex]; ok {
		return cached, nil
	}

	page, err := d.reader.GetPage(pageIndex + 1)
	if err != nil {
		return nil, err
	}

	cached := &pageCache{page: page}
	d.cache[pageIndex] = cached
	return cached, nil
}

// Annotations returns the raw annotations of a page in decoder order.
func (d *Document) Annotations(pageIndex int) ([]*model.PdfAnnotation, error) {
	cached, err := d.pageAt(pageIndex)
	if err != nil {
		return nil, err
	}
	return cached.page.GetAnnotations()
}

// Page returns the parsed unipdf page.
func (d *Document) Page(pageIndex int) (*model.PdfPage, error) {
	cached, err := d.pageAt(pageIndex)
	if err != nil {
		return nil, err
	}
	return cached.page, nil
}

// PlainText returns the full text of a page in reading order.
func (d *Document) PlainText(pageIndex int) (string, error) {
	cached, err := d.pageAt(pageIndex)
	if err != nil {
		return "", err
	}

	if cached.plainText == nil {
		text, err := d.fitzDoc.Text(pageIndex)
		if err != nil {
			return "", err
		}
		cached.plainText = &text
	}

	return *cached.plainText, nil
}

func (d *Document) pageMarks(pageIndex int) (*pageCache, error) {
	cached, err := d.pageAt(pageIndex)
	if err != nil {
		return nil, err
	}
	if cached.hasMarks {
		return cached, nil
	}

	ext, err := extractor.New(cached.page)
	if err != nil {
		return nil, err
	}

	txt, _, _, err := ext.ExtractPageText()
	if err != nil {
		return nil, err
	}

	cached.extracted = txt.Text()
	cached.marks = txt.Marks().Elements()
	cached.markRects = make([]r2.Rect, len(cached.marks))
	for i, mark := range cached.marks {
		cached.markRects[i] = MarkRect(mark)
	}
	cached.hasMarks = true

	return cached, nil
}

// TextInRect returns the page text intersecting the given rectangle, in
// reading order. Marks must overlap the rectangle by at least half their
// area to count, which keeps neighbouring lines out of tight highlights.
func (d *Document) TextInRect(pageIndex int, bounds r2.Rect) (string, error) {
	cached, err := d.pageMarks(pageIndex)
	if err != nil {
		return "", err
	}

	segment := ""

	for i, markRect := range cached.markRects {
		if !markRect.IsValid() || markRect.IsEmpty() {
			continue
		}

		if !bounds.Intersects(markRect) || !IsWithinOverlapThresh(bounds, markRect) {
			continue
		}

		mark := cached.marks[i]

		if len(mark.Text) > 0 && mark.Offset > 0 && len(segment) > 0 {
			prevChar := string(cached.extracted[mark.Offset-1])

			if prevChar == " " || prevChar == "\n" {
				segment += " " + mark.Text
				continue
			}
		}

		segment += mark.Text
	}

	return segment, nil
}

// Blocks returns the structured text of a page, top to bottom.
func (d *Document) Blocks(pageIndex int) ([]Block, error) {
	cached, err := d.pageMarks(pageIndex)
	if err != nil {
		return nil, err
	}

	if !cached.hasBlocks {
		cached.blocks = BuildBlocks(cached.marks)
		cached.hasBlocks = true
	}

	return cached.blocks, nil
}
