package pdfutils

import (
	"errors"

	"github.com/golang/geo/r2"
	"github.com/mgmeyers/unipdf/v3/core"
	"github.com/mgmeyers/unipdf/v3/extractor"
	"github.com/mgmeyers/unipdf/v3/model"
)

// IsWithinOverlapThresh reports whether at least half of mark's area falls
// inside annot.
func IsWithinOverlapThresh(annot r2.Rect, mark r2.Rect) bool {
	markSize := rectArea(mark)
	intersect := rectArea(annot.Intersection(mark))

	return intersect/markSize >= 0.5
}

func rectArea(r r2.Rect) float64 {
	s := r.Size()
	return s.X * s.Y
}

// MarkRect converts a text mark's bounding box to an r2 rectangle.
func MarkRect(mark extractor.TextMark) r2.Rect {
	return r2.RectFromPoints(
		r2.Point{X: mark.BBox.Llx, Y: mark.BBox.Lly},
		r2.Point{X: mark.BBox.Llx, Y: mark.BBox.Ury},
		r2.Point{X: mark.BBox.Urx, Y: mark.BBox.Lly},
		r2.Point{X: mark.BBox.Urx, Y: mark.BBox.Ury},
	)
}

// RectFromFloats builds an r2 rectangle from an {x0,y0,x1,y1} quadruple.
func RectFromFloats(coords []float64) r2.Rect {
	if len(coords) < 4 {
		return r2.EmptyRect()
	}
	return r2.RectFromPoints(
		r2.Point{X: coords[0], Y: coords[1]},
		r2.Point{X: coords[2], Y: coords[3]},
	)
}

// AnnotationQuadRects returns the highlight-region rectangles of a markup
// annotation, one per quad, or nil when the annotation carries no quad
// points or they cannot be read.
func AnnotationQuadRects(annotation *model.PdfAnnotation) []r2.Rect {
	qp := quadPoints(annotation)
	if qp == nil {
		return nil
	}

	coords, err := qp.GetAsFloat64Slice()
	if err != nil {
		return nil
	}

	coordHolder := []float64{}
	ptHolder := []r2.Point{}
	rects := []r2.Rect{}

	for _, coord := range coords {
		coordHolder = append(coordHolder, coord)

		if len(coordHolder) == 2 {
			pt := r2.Point{X: coordHolder[0], Y: coordHolder[1]}
			ptHolder = append(ptHolder, pt)

			coordHolder = []float64{}

			if len(ptHolder) == 4 {
				r := r2.RectFromPoints(ptHolder[0], ptHolder[1], ptHolder[2], ptHolder[3])
				rects = append(rects, r)
				ptHolder = []r2.Point{}
			}
		}
	}

	// An empty QuadPoints array carries no highlight region; treat it the
	// same as a missing one.
	if len(rects) == 0 {
		return nil
	}

	return rects
}

func quadPoints(annotation *model.PdfAnnotation) *core.PdfObjectArray {
	if annotation == nil {
		return nil
	}

	var obj core.PdfObject

	switch ctx := annotation.GetContext().(type) {
	case *model.PdfAnnotationHighlight:
		obj = ctx.QuadPoints
	case *model.PdfAnnotationUnderline:
		obj = ctx.QuadPoints
	case *model.PdfAnnotationStrikeOut:
		obj = ctx.QuadPoints
	case *model.PdfAnnotationSquiggly:
		obj = ctx.QuadPoints
	default:
		return nil
	}

	arr, ok := obj.(*core.PdfObjectArray)
	if !ok {
		return nil
	}

	return arr
}

var errNotRect = errors.New("object is not a rectangle array")

// RectFloats reads a PDF rectangle array as four floats. Arrays the bulk
// conversion rejects are read element by element as a fallback.
func RectFloats(obj core.PdfObject) ([]float64, error) {
	arr, ok := obj.(*core.PdfObjectArray)
	if !ok || arr.Len() < 4 {
		return nil, errNotRect
	}

	coords, err := arr.GetAsFloat64Slice()
	if err == nil && len(coords) >= 4 {
		return coords[:4], nil
	}

	coords = make([]float64, 4)
	for i := 0; i < 4; i++ {
		val, err := core.GetNumberAsFloat(arr.Get(i))
		if err != nil {
			return nil, errNotRect
		}
		coords[i] = val
	}

	return coords, nil
}
