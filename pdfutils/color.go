package pdfutils

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mgmeyers/unipdf/v3/core"
	"github.com/mgmeyers/unipdf/v3/model"
)

// AnnotationColor returns the annotation's color as a #rrggbb hex string,
// or "" when the annotation carries no usable color array.
func AnnotationColor(annotation *model.PdfAnnotation) string {
	clr := colorComponents(annotation)
	if clr == nil {
		return ""
	}

	return "#" + toHexStr(int(clr[0]*255)) + toHexStr(int(clr[1]*255)) + toHexStr(int(clr[2]*255))
}

// AnnotationColorCategory buckets the annotation's color into a coarse
// human name based on HSL.
func AnnotationColorCategory(annotation *model.PdfAnnotation) string {
	clr := colorComponents(annotation)
	if clr == nil {
		return ""
	}

	color := colorful.Color{
		R: clr[0],
		G: clr[1],
		B: clr[2],
	}
	h, s, l := color.Hsl()

	if l < 0.12 {
		return "Black"
	}
	if l > 0.98 {
		return "White"
	}
	if s < 0.2 {
		return "Gray"
	}
	if h < 15 {
		return "Red"
	}
	if h < 45 {
		return "Orange"
	}
	if h < 65 {
		return "Yellow"
	}
	if h < 170 {
		return "Green"
	}
	if h < 190 {
		return "Cyan"
	}
	if h < 263 {
		return "Blue"
	}
	if h < 280 {
		return "Purple"
	}
	if h < 335 {
		return "Magenta"
	}
	return "Red"
}

func colorComponents(annotation *model.PdfAnnotation) []float64 {
	if annotation == nil || annotation.C == nil {
		return nil
	}

	arr, ok := annotation.C.(*core.PdfObjectArray)
	if !ok {
		return nil
	}

	clr, err := arr.ToFloat64Array()
	if err != nil || len(clr) < 3 {
		return nil
	}

	return clr
}

func toHexStr(i int) string {
	s := fmt.Sprintf("%x", i)

	if len(s) == 1 {
		return "0" + s
	}

	return s
}
