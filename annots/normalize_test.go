package annots

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/mgmeyers/unipdf/v3/core"
	"github.com/mgmeyers/unipdf/v3/model"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newHighlight(author, comment string, rect, quads []float64) *model.PdfAnnotation {
	hl := model.NewPdfAnnotationHighlight()
	hl.PdfAnnotationMarkup = &model.PdfAnnotationMarkup{
		T:            core.MakeString(author),
		CreationDate: core.MakeString("D:20240102030405Z"),
	}
	if comment != "" {
		hl.Contents = core.MakeString(comment)
	}
	if rect != nil {
		hl.Rect = core.MakeArrayFromFloats(rect)
	}
	if quads != nil {
		hl.QuadPoints = core.MakeArrayFromFloats(quads)
	}
	hl.M = core.MakeString("D:20240102030406Z")
	return hl.PdfAnnotation
}

func newFreeText(comment string, rect []float64) *model.PdfAnnotation {
	ft := model.NewPdfAnnotationFreeText()
	ft.PdfAnnotationMarkup = &model.PdfAnnotationMarkup{}
	if comment != "" {
		ft.Contents = core.MakeString(comment)
	}
	if rect != nil {
		ft.Rect = core.MakeArrayFromFloats(rect)
	}
	return ft.PdfAnnotation
}

// fakeDoc implements Source over fakePages plus per-page annotation lists.
type fakeDoc struct {
	fakePages
	annots map[int][]*model.PdfAnnotation
	pages  int
}

func (f *fakeDoc) NumPages() int {
	return f.pages
}

func (f *fakeDoc) Annotations(pageIndex int) ([]*model.PdfAnnotation, error) {
	return f.annots[pageIndex], nil
}

// Scenario: one page, one highlight over "Login succeeded", a case header
// above it.
func TestNormalizeHighlightWithTitle(t *testing.T) {
	doc := &fakeDoc{
		fakePages: fakePages{
			texts:   map[int]string{0: "CP N° 01: Demo Title\nLogin succeeded\n"},
			clipped: map[int]string{0: " Login succeeded "},
		},
		pages: 1,
	}

	raw := newHighlight("Ana", "works", []float64{100, 400, 300, 415}, []float64{100, 415, 300, 415, 100, 400, 300, 400})

	normalized, err := Normalize(doc, raw, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, normalized.Page)
	assert.Equal(t, "Highlight", normalized.Type)
	assert.Equal(t, "Login succeeded", normalized.HighlightedText)
	assert.Equal(t, "CP N° 01: Demo Title", normalized.NearbyTitle)
	assert.Equal(t, "Ana", normalized.Author)
	assert.Equal(t, "works", normalized.Content)
	assert.Equal(t, "D:20240102030405Z", normalized.CreationDate)
	assert.Equal(t, map[string]float64{"x0": 100, "y0": 400, "x1": 300, "y1": 415}, normalized.Coordinates)
}

func TestNormalizeDefaultsMissingFields(t *testing.T) {
	doc := &fakeDoc{
		fakePages: fakePages{texts: map[int]string{0: "nothing"}},
		pages:     1,
	}

	hl := model.NewPdfAnnotationHighlight()
	hl.PdfAnnotationMarkup = &model.PdfAnnotationMarkup{}

	normalized, err := Normalize(doc, hl.PdfAnnotation, 0)
	require.NoError(t, err)

	assert.Equal(t, "Unknown", normalized.Author)
	assert.Empty(t, normalized.Subject)
	assert.Empty(t, normalized.Content)
	assert.Empty(t, normalized.CreationDate)
	assert.Empty(t, normalized.HighlightedText)
	assert.Empty(t, normalized.NearbyTitle)
}

// Scenario: the rectangle is unreadable. Coordinates degrade to an empty
// map; every other field still comes through.
func TestNormalizeUnreadableRect(t *testing.T) {
	doc := &fakeDoc{
		fakePages: fakePages{texts: map[int]string{0: "nothing"}},
		pages:     1,
	}

	hl := model.NewPdfAnnotationHighlight()
	hl.PdfAnnotationMarkup = &model.PdfAnnotationMarkup{T: core.MakeString("Ana")}
	hl.Contents = core.MakeString("note")
	hl.Rect = core.MakeString("not a rectangle")

	normalized, err := Normalize(doc, hl.PdfAnnotation, 0)
	require.NoError(t, err)

	assert.NotNil(t, normalized.Coordinates)
	assert.Empty(t, normalized.Coordinates)
	assert.Equal(t, "Ana", normalized.Author)
	assert.Equal(t, "note", normalized.Content)
}

func TestNormalizeNonMarkupTypeHasNoHighlightedText(t *testing.T) {
	doc := &fakeDoc{
		fakePages: fakePages{
			texts:   map[int]string{0: "nothing"},
			clipped: map[int]string{0: "should never be read"},
		},
		pages: 1,
	}

	raw := newFreeText("a note", []float64{10, 10, 50, 30})

	normalized, err := Normalize(doc, raw, 0)
	require.NoError(t, err)

	assert.Equal(t, "FreeText", normalized.Type)
	assert.Empty(t, normalized.HighlightedText)
}

func TestNormalizeHighlightWithoutQuadPointsSkipsExtraction(t *testing.T) {
	doc := &fakeDoc{
		fakePages: fakePages{
			texts:   map[int]string{0: "nothing"},
			clipped: map[int]string{0: "should never be read"},
		},
		pages: 1,
	}

	raw := newHighlight("Ana", "", []float64{10, 10, 50, 30}, nil)

	normalized, err := Normalize(doc, raw, 0)
	require.NoError(t, err)
	assert.Empty(t, normalized.HighlightedText)
}

// A QuadPoints array that is present but empty carries no highlight-region
// vertices; extraction must not fall back to the bounding rectangle.
func TestNormalizeHighlightWithEmptyQuadPointsSkipsExtraction(t *testing.T) {
	doc := &fakeDoc{
		fakePages: fakePages{
			texts:   map[int]string{0: "nothing"},
			clipped: map[int]string{0: "leaked text"},
		},
		pages: 1,
	}

	raw := newHighlight("Ana", "", []float64{10, 10, 50, 30}, nil)
	raw.GetContext().(*model.PdfAnnotationHighlight).QuadPoints = core.MakeArray()

	normalized, err := Normalize(doc, raw, 0)
	require.NoError(t, err)
	assert.Empty(t, normalized.HighlightedText)
}

func TestNormalizeNilAnnotationIsMalformed(t *testing.T) {
	doc := &fakeDoc{fakePages: fakePages{texts: map[int]string{0: ""}}, pages: 1}

	_, err := Normalize(doc, nil, 0)
	assert.Error(t, err)
}

// Scenario: page 2 carries the annotation, page 1 the case header.
func TestBuildCollectionTitleFallsBackAcrossPages(t *testing.T) {
	doc := &fakeDoc{
		fakePages: fakePages{
			texts: map[int]string{
				0: "CP N° 02: First page header\n",
				1: "free text page\n",
			},
		},
		annots: map[int][]*model.PdfAnnotation{
			1: {newFreeText("remark", []float64{10, 700, 60, 720})},
		},
		pages: 2,
	}

	collected := BuildCollection(doc, quietLogger())
	require.Len(t, collected, 1)
	assert.Equal(t, 2, collected[0].Page)
	assert.Equal(t, "CP N° 02: First page header", collected[0].NearbyTitle)
}

func TestBuildCollectionOrderAndMalformedSkip(t *testing.T) {
	doc := &fakeDoc{
		fakePages: fakePages{
			texts: map[int]string{0: "x", 1: "x", 2: "x"},
		},
		annots: map[int][]*model.PdfAnnotation{
			0: {
				newFreeText("p1-first", []float64{0, 0, 1, 1}),
				nil, // malformed, must be skipped without aborting the page
				newFreeText("p1-second", []float64{0, 0, 1, 1}),
			},
			2: {newFreeText("p3-only", []float64{0, 0, 1, 1})},
		},
		pages: 3,
	}

	collected := BuildCollection(doc, quietLogger())
	require.Len(t, collected, 3)

	assert.Equal(t, []string{"p1-first", "p1-second", "p3-only"}, []string{
		collected[0].Content, collected[1].Content, collected[2].Content,
	})
	assert.Equal(t, []int{1, 1, 3}, []int{
		collected[0].Page, collected[1].Page, collected[2].Page,
	})
}

func TestExtractorRejectsMissingFile(t *testing.T) {
	_, err := NewExtractor("does/not/exist.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExtractorUnreadableDocumentYieldsEmptyCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0o644))

	extractor, err := NewExtractor(path)
	require.NoError(t, err)
	extractor.log = quietLogger()

	collected := extractor.ExtractAnnotations()
	assert.Empty(t, collected)
}
