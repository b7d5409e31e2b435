package pdfutils

import (
	"testing"

	"github.com/mgmeyers/unipdf/v3/core"
	"github.com/mgmeyers/unipdf/v3/model"
	"github.com/stretchr/testify/assert"
)

func TestAnnotationColor(t *testing.T) {
	hl := model.NewPdfAnnotationHighlight()
	hl.C = core.MakeArrayFromFloats([]float64{1, 0.8, 0})

	assert.Equal(t, "#ffcc00", AnnotationColor(hl.PdfAnnotation))
	assert.Equal(t, "Yellow", AnnotationColorCategory(hl.PdfAnnotation))
}

func TestAnnotationColorAbsent(t *testing.T) {
	hl := model.NewPdfAnnotationHighlight()
	assert.Equal(t, "", AnnotationColor(hl.PdfAnnotation))
	assert.Equal(t, "", AnnotationColorCategory(hl.PdfAnnotation))

	assert.Equal(t, "", AnnotationColor(nil))

	// Grayscale single-component arrays carry no hue to report.
	gray := model.NewPdfAnnotationHighlight()
	gray.C = core.MakeArrayFromFloats([]float64{0.5})
	assert.Equal(t, "", AnnotationColor(gray.PdfAnnotation))
}

func TestAnnotationColorCategories(t *testing.T) {
	cases := []struct {
		rgb  []float64
		want string
	}{
		{[]float64{0, 0, 0}, "Black"},
		{[]float64{1, 1, 1}, "White"},
		{[]float64{0.5, 0.5, 0.5}, "Gray"},
		{[]float64{1, 0, 0}, "Red"},
		{[]float64{0, 1, 0}, "Green"},
		{[]float64{0, 0, 1}, "Blue"},
	}

	for _, tc := range cases {
		hl := model.NewPdfAnnotationHighlight()
		hl.C = core.MakeArrayFromFloats(tc.rgb)
		assert.Equal(t, tc.want, AnnotationColorCategory(hl.PdfAnnotation), "rgb %v", tc.rgb)
	}
}
