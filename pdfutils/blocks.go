package pdfutils

import (
	"math"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/mgmeyers/unipdf/v3/extractor"
	"github.com/mgmeyers/unipdf/v3/model"
)

// Span is a run of text sharing one font and size.
type Span struct {
	Text     string
	FontSize float64
	Bold     bool
}

// Line is a horizontal row of spans.
type Line struct {
	Spans []Span
}

// Block is a positioned group of lines. The extractor emits one block per
// visual line; Bounds is the union of the line's mark boxes in page
// coordinates (origin bottom-left, y up).
type Block struct {
	Bounds r2.Rect
	Lines  []Line
}

// Text returns the concatenated span text of the block.
func (b Block) Text() string {
	var sb strings.Builder
	for _, line := range b.Lines {
		for _, span := range line.Spans {
			sb.WriteString(span.Text)
		}
	}
	return sb.String()
}

// MaxFontSize returns the largest span font size in the block.
func (b Block) MaxFontSize() float64 {
	size := 0.0
	for _, line := range b.Lines {
		for _, span := range line.Spans {
			if span.FontSize > size {
				size = span.FontSize
			}
		}
	}
	return size
}

// HasBold reports whether any span in the block uses a bold font.
func (b Block) HasBold() bool {
	for _, line := range b.Lines {
		for _, span := range line.Spans {
			if span.Bold {
				return true
			}
		}
	}
	return false
}

// lineBreakTolerance is the vertical drift, in points, a mark may have from
// the current line's bottom edge before it starts a new line.
const lineBreakTolerance = 2.0

// BuildBlocks groups character-level text marks into line blocks of
// font-merged spans. Marks arrive in reading order; a mark whose baseline
// moves past the tolerance starts a new block.
func BuildBlocks(marks []extractor.TextMark) []Block {
	blocks := []Block{}

	var current *Block
	var currentBottom float64

	flushSpan := func(span *Span) {
		if span.Text == "" {
			return
		}
		line := &current.Lines[len(current.Lines)-1]
		line.Spans = append(line.Spans, *span)
		*span = Span{}
	}

	var span Span

	for _, mark := range marks {
		if mark.Meta || mark.Text == "" {
			continue
		}

		markRect := MarkRect(mark)
		if !markRect.IsValid() {
			continue
		}

		bold := FontIsBold(mark.Font)

		if current == nil || math.Abs(markRect.Y.Lo-currentBottom) > lineBreakTolerance {
			if current != nil {
				flushSpan(&span)
			}
			blocks = append(blocks, Block{
				Bounds: markRect,
				Lines:  []Line{{}},
			})
			current = &blocks[len(blocks)-1]
			currentBottom = markRect.Y.Lo
			span = Span{FontSize: mark.FontSize, Bold: bold}
		} else if span.FontSize != mark.FontSize || span.Bold != bold {
			flushSpan(&span)
			span = Span{FontSize: mark.FontSize, Bold: bold}
		}

		span.Text += mark.Text
		current.Bounds = current.Bounds.Union(markRect)
	}

	if current != nil {
		flushSpan(&span)
	}

	return blocks
}

// FontIsBold reports whether a font descriptor names a bold face.
func FontIsBold(font *model.PdfFont) bool {
	if font == nil {
		return false
	}

	desc := font.FontDescriptor()
	if desc == nil || desc.FontName == nil {
		return false
	}

	return strings.Contains(strings.ToLower(desc.FontName.String()), "bold")
}
