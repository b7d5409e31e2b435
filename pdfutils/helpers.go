package pdfutils

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mgmeyers/unipdf/v3/core"
	"github.com/mgmeyers/unipdf/v3/model"
)

// Annotation type names, matching the subtype vocabulary of the PDF spec.
// The set is open ended: anything the decoder exposes that is not listed
// here comes back as Unknown.
const (
	Text           string = "Text"
	Highlight             = "Highlight"
	Underline             = "Underline"
	StrikeOut             = "StrikeOut"
	Squiggly              = "Squiggly"
	FreeText              = "FreeText"
	Popup                 = "Popup"
	Square                = "Square"
	Circle                = "Circle"
	LineAnnot             = "Line"
	Link                  = "Link"
	Ink                   = "Ink"
	Caret                 = "Caret"
	Stamp                 = "Stamp"
	FileAttachment        = "FileAttachment"
	Unknown               = "Unknown"
)

// AnnotationTypeName maps an annotation context to its subtype name.
func AnnotationTypeName(ctx interface{}) string {
	switch ctx.(type) {
	case *model.PdfAnnotationText:
		return Text
	case *model.PdfAnnotationHighlight:
		return Highlight
	case *model.PdfAnnotationUnderline:
		return Underline
	case *model.PdfAnnotationStrikeOut:
		return StrikeOut
	case *model.PdfAnnotationSquiggly:
		return Squiggly
	case *model.PdfAnnotationFreeText:
		return FreeText
	case *model.PdfAnnotationPopup:
		return Popup
	case *model.PdfAnnotationSquare:
		return Square
	case *model.PdfAnnotationCircle:
		return Circle
	case *model.PdfAnnotationLine:
		return LineAnnot
	case *model.PdfAnnotationLink:
		return Link
	case *model.PdfAnnotationInk:
		return Ink
	case *model.PdfAnnotationCaret:
		return Caret
	case *model.PdfAnnotationStamp:
		return Stamp
	case *model.PdfAnnotationFileAttachment:
		return FileAttachment
	default:
		return Unknown
	}
}

// IsMarkupType reports whether a type name belongs to the text markup set,
// the annotations that reference a span of existing page text.
func IsMarkupType(typeName string) bool {
	switch typeName {
	case Highlight, Underline, StrikeOut, Squiggly:
		return true
	}
	return false
}

// MarkupFields returns the markup dictionary shared by comment-style
// annotations (author, subject, creation date), or nil for subtypes that do
// not carry one.
func MarkupFields(annotation *model.PdfAnnotation) *model.PdfAnnotationMarkup {
	if annotation == nil {
		return nil
	}

	switch ctx := annotation.GetContext().(type) {
	case *model.PdfAnnotationText:
		return ctx.PdfAnnotationMarkup
	case *model.PdfAnnotationHighlight:
		return ctx.PdfAnnotationMarkup
	case *model.PdfAnnotationUnderline:
		return ctx.PdfAnnotationMarkup
	case *model.PdfAnnotationStrikeOut:
		return ctx.PdfAnnotationMarkup
	case *model.PdfAnnotationSquiggly:
		return ctx.PdfAnnotationMarkup
	case *model.PdfAnnotationFreeText:
		return ctx.PdfAnnotationMarkup
	case *model.PdfAnnotationSquare:
		return ctx.PdfAnnotationMarkup
	case *model.PdfAnnotationCircle:
		return ctx.PdfAnnotationMarkup
	case *model.PdfAnnotationLine:
		return ctx.PdfAnnotationMarkup
	case *model.PdfAnnotationInk:
		return ctx.PdfAnnotationMarkup
	case *model.PdfAnnotationCaret:
		return ctx.PdfAnnotationMarkup
	case *model.PdfAnnotationStamp:
		return ctx.PdfAnnotationMarkup
	case *model.PdfAnnotationFileAttachment:
		return ctx.PdfAnnotationMarkup
	default:
		return nil
	}
}

// ObjectString renders a PDF object as a cleaned string. Dates stay in
// their raw D:YYYYMMDD... form; they are passed through, not reparsed.
func ObjectString(obj core.PdfObject) string {
	if obj == nil {
		return ""
	}
	return RemoveNul(obj.String())
}

// RemoveNul strips control characters and replacement runes that broken
// encoders leave behind in annotation strings.
func RemoveNul(str string) string {
	return strings.Map(func(r rune) rune {
		if r == unicode.ReplacementChar {
			return -1
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, str)
}

var nlAndSpace = regexp.MustCompile(`[\n\s]+`)

// CondenseSpaces collapses whitespace runs into single spaces.
func CondenseSpaces(str string) string {
	return nlAndSpace.ReplaceAllString(str, " ")
}
