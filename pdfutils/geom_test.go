package pdfutils

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/mgmeyers/unipdf/v3/core"
	"github.com/mgmeyers/unipdf/v3/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsWithinOverlapThresh(t *testing.T) {
	annot := r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 100, Y: 10})

	contained := r2.RectFromPoints(r2.Point{X: 10, Y: 2}, r2.Point{X: 30, Y: 8})
	assert.True(t, IsWithinOverlapThresh(annot, contained))

	halfOut := r2.RectFromPoints(r2.Point{X: 90, Y: 0}, r2.Point{X: 110, Y: 10})
	assert.True(t, IsWithinOverlapThresh(annot, halfOut))

	mostlyOut := r2.RectFromPoints(r2.Point{X: 95, Y: 0}, r2.Point{X: 135, Y: 10})
	assert.False(t, IsWithinOverlapThresh(annot, mostlyOut))
}

func TestRectFromFloats(t *testing.T) {
	rect := RectFromFloats([]float64{10, 20, 30, 40})
	assert.Equal(t, 10.0, rect.X.Lo)
	assert.Equal(t, 40.0, rect.Y.Hi)

	assert.True(t, RectFromFloats([]float64{1, 2}).IsEmpty())
}

func TestRectFloats(t *testing.T) {
	coords, err := RectFloats(core.MakeArrayFromFloats([]float64{1, 2, 3, 4}))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, coords)

	_, err = RectFloats(core.MakeString("nope"))
	assert.Error(t, err)

	_, err = RectFloats(nil)
	assert.Error(t, err)

	_, err = RectFloats(core.MakeArrayFromFloats([]float64{1, 2}))
	assert.Error(t, err)
}

func TestAnnotationQuadRects(t *testing.T) {
	hl := model.NewPdfAnnotationHighlight()
	hl.QuadPoints = core.MakeArrayFromFloats([]float64{
		0, 10, 50, 10, 0, 0, 50, 0,
		60, 10, 90, 10, 60, 0, 90, 0,
	})

	rects := AnnotationQuadRects(hl.PdfAnnotation)
	require.Len(t, rects, 2)
	assert.Equal(t, 0.0, rects[0].X.Lo)
	assert.Equal(t, 50.0, rects[0].X.Hi)
	assert.Equal(t, 60.0, rects[1].X.Lo)
}

func TestAnnotationQuadRectsAbsent(t *testing.T) {
	hl := model.NewPdfAnnotationHighlight()
	assert.Nil(t, AnnotationQuadRects(hl.PdfAnnotation))

	// A present but empty array carries no vertices either.
	empty := model.NewPdfAnnotationHighlight()
	empty.QuadPoints = core.MakeArray()
	assert.Nil(t, AnnotationQuadRects(empty.PdfAnnotation))

	text := model.NewPdfAnnotationText()
	assert.Nil(t, AnnotationQuadRects(text.PdfAnnotation))

	assert.Nil(t, AnnotationQuadRects(nil))
}
