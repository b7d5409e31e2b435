package annots

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/mgmeyers/unipdf/v3/model"
	"github.com/sirupsen/logrus"

	"github.com/cmorales/pdf-extract/pdfutils"
)

// PageContent is the page capability the normalizer consumes: plain and
// structured text plus region-clipped extraction. pdfutils.Document
// satisfies it.
type PageContent interface {
	PageIndex
	TextInRect(pageIndex int, bounds r2.Rect) (string, error)
}

// Source enumerates a document's pages and raw annotations. It exists so
// the builder can be exercised without a real PDF.
type Source interface {
	PageContent
	NumPages() int
	Annotations(pageIndex int) ([]*model.PdfAnnotation, error)
}

// Extractor runs the annotation pipeline for one PDF.
type Extractor struct {
	path string
	log  *logrus.Logger
}

// NewExtractor validates the input path. A path that does not resolve to a
// regular file fails with ErrNotFound.
func NewExtractor(path string) (*Extractor, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	return &Extractor{path: path, log: logrus.StandardLogger()}, nil
}

// ExtractAnnotations opens the document, builds the collection and releases
// the document handle. A document that fails to decode yields an empty
// collection and a diagnostic, not an error: a broken PDF must not abort a
// batch, and it will not parse better on retry.
func (e *Extractor) ExtractAnnotations() Collection {
	doc, err := pdfutils.Open(e.path)
	if err != nil {
		e.log.WithError(err).WithField("file", e.path).Error("cannot decode PDF document")
		return Collection{}
	}
	defer doc.Close()

	return BuildCollection(doc, e.log)
}

// Path returns the input path the extractor was built for.
func (e *Extractor) Path() string {
	return e.path
}

// BuildCollection normalizes every annotation of the document, pages in
// ascending order, decoder order within a page. Malformed records are
// skipped with a diagnostic; the rest of the document is still processed.
func BuildCollection(doc Source, log *logrus.Logger) Collection {
	if log == nil {
		log = logrus.StandardLogger()
	}

	collected := Collection{}

	for i := 0; i < doc.NumPages(); i++ {
		raw, err := doc.Annotations(i)
		if err != nil {
			log.WithError(err).WithField("page", i+1).Warn("cannot read page annotations")
			continue
		}

		for idx, annotation := range raw {
			normalized, err := Normalize(doc, annotation, i)
			if err != nil {
				log.WithError(&MalformedRecordError{Page: i + 1, Index: idx, Err: err}).
					Warn("skipping malformed annotation")
				continue
			}
			collected = append(collected, normalized)
		}
	}

	return collected
}

var errNoContext = errors.New("annotation has no readable context")

// Normalize maps one raw annotation to its record. Only a missing record
// body is an error; every enrichment step degrades to absence instead.
func Normalize(doc PageContent, annotation *model.PdfAnnotation, pageIndex int) (Annotation, error) {
	if annotation == nil {
		return Annotation{}, errNoContext
	}

	typeName := pdfutils.AnnotationTypeName(annotation.GetContext())

	normalized := Annotation{
		Page:             pageIndex + 1,
		Type:             typeName,
		Content:          pdfutils.ObjectString(annotation.Contents),
		Author:           "Unknown",
		ModificationDate: pdfutils.ObjectString(annotation.M),
		Coordinates:      coordinates(annotation),
		Color:            pdfutils.AnnotationColor(annotation),
		ColorCategory:    pdfutils.AnnotationColorCategory(annotation),
	}

	if markup := pdfutils.MarkupFields(annotation); markup != nil {
		if author := pdfutils.ObjectString(markup.T); author != "" {
			normalized.Author = author
		}
		normalized.Subject = pdfutils.ObjectString(markup.Subj)
		normalized.CreationDate = pdfutils.ObjectString(markup.CreationDate)
	}

	if pdfutils.IsMarkupType(typeName) {
		normalized.HighlightedText = extractHighlighted(doc, annotation, pageIndex)
	}

	if title, ok := LocateTitle(doc, pageIndex, annotTop(normalized.Coordinates)); ok {
		normalized.NearbyTitle = title
	}

	return normalized, nil
}

// coordinates reads the annotation rectangle into an {x0,y0,x1,y1} map.
// An unreadable rectangle yields an empty map, never an error.
func coordinates(annotation *model.PdfAnnotation) map[string]float64 {
	coords, err := pdfutils.RectFloats(annotation.Rect)
	if err != nil {
		return map[string]float64{}
	}

	return map[string]float64{
		"x0": coords[0],
		"y0": coords[1],
		"x1": coords[2],
		"y1": coords[3],
	}
}

func annotTop(coords map[string]float64) float64 {
	if len(coords) == 0 {
		return 0
	}

	top := coords["y0"]
	if coords["y1"] > top {
		top = coords["y1"]
	}
	return top
}

// extractHighlighted pulls the page text covered by a markup annotation's
// bounding rectangle. Annotations without quad points, and any extraction
// failure, yield "": highlighted text is enrichment, not a required field.
func extractHighlighted(doc PageContent, annotation *model.PdfAnnotation, pageIndex int) string {
	if len(pdfutils.AnnotationQuadRects(annotation)) == 0 {
		return ""
	}

	coords, err := pdfutils.RectFloats(annotation.Rect)
	if err != nil {
		return ""
	}

	bounds := pdfutils.RectFromFloats(coords)
	if !bounds.IsValid() || bounds.IsEmpty() {
		return ""
	}

	text, err := doc.TextInRect(pageIndex, bounds)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(text)
}
