package annots

import (
	"math"
	"regexp"
	"strings"

	"github.com/cmorales/pdf-extract/pdfutils"
)

// PageIndex is the page content the title search needs.
type PageIndex interface {
	PlainText(pageIndex int) (string, error)
	Blocks(pageIndex int) ([]pdfutils.Block, error)
}

// knownTitles are the canonical document titles of the test-case PDFs,
// including dash and spelling variants seen in circulating copies. Matched
// verbatim against page text.
var knownTitles = []string{
	"Campus CEPU - Docente - Casos de Prueba",
	"Campus CEPU – Docente – Casos de Prueba",
	"Campus CEPU - Docente - Casos de Pruebas",
}

// titleMarkers flag section blocks that head a test case even when they are
// not set in a heading font.
var titleMarkers = []string{
	"Objetivo",
	"Pre-Requisitos",
	"Datos de Prueba",
}

const (
	// caseIDPrefix starts every "CP N° 12: ..." case header.
	caseIDPrefix = "CP N"

	// titleFontSizeFloor is the font size above which a block counts as a
	// heading in the structural scan.
	titleFontSizeFloor = 10.0

	// titleLookback caps how many pages before the annotation's own page
	// the search may visit.
	titleLookback = 2
)

var caseHeaderRe = regexp.MustCompile(`CP\s*N[°º ]\s*\d+[:.]?[^\n]*`)

// titleStrategy tries one heuristic against one page. annotTop is the top
// edge of the annotation in page coordinates (y up); blocks at or below it
// do not qualify for the structural scan.
type titleStrategy func(doc PageIndex, pageIndex int, annotTop float64) (string, bool)

// titleStrategies is the search order: cheapest and most confident first.
// The second case-ID scan repeats the first on purpose; the chain mirrors
// long-standing behavior and the extra pass costs nothing.
var titleStrategies = []titleStrategy{
	knownTitleMatch,
	caseIDScan,
	caseIDPattern,
	caseIDScan,
	structuralScan,
}

// LocateTitle finds the case title nearest above an annotation. When the
// annotation's own page yields nothing, up to titleLookback preceding pages
// are searched, nearest first, never before the document start. The second
// return is false when no strategy matched anywhere.
func LocateTitle(doc PageIndex, pageIndex int, annotTop float64) (string, bool) {
	floor := pageIndex - titleLookback
	if floor < 0 {
		floor = 0
	}

	for page := pageIndex; page >= floor; page-- {
		top := annotTop
		if page != pageIndex {
			// On an earlier page everything precedes the annotation.
			top = 0
		}

		for _, strategy := range titleStrategies {
			if title, ok := strategy(doc, page, top); ok {
				return title, true
			}
		}
	}

	return "", false
}

func knownTitleMatch(doc PageIndex, pageIndex int, _ float64) (string, bool) {
	text, err := doc.PlainText(pageIndex)
	if err != nil {
		return "", false
	}

	for _, title := range knownTitles {
		if strings.Contains(text, title) {
			return title, true
		}
	}

	return "", false
}

func caseIDScan(doc PageIndex, pageIndex int, _ float64) (string, bool) {
	text, err := doc.PlainText(pageIndex)
	if err != nil {
		return "", false
	}

	start := strings.Index(text, caseIDPrefix)
	if start < 0 {
		return "", false
	}

	line := text[start:]
	if end := strings.IndexByte(line, '\n'); end >= 0 {
		line = line[:end]
	}

	line = strings.TrimSpace(line)
	return line, line != ""
}

func caseIDPattern(doc PageIndex, pageIndex int, _ float64) (string, bool) {
	text, err := doc.PlainText(pageIndex)
	if err != nil {
		return "", false
	}

	match := strings.TrimSpace(caseHeaderRe.FindString(text))
	return match, match != ""
}

// structuralScan walks the page's blocks for the heading closest to the
// annotation. A block qualifies when it sits strictly above the annotation
// and is emphasized (large or bold), or when it carries one of the section
// markers.
func structuralScan(doc PageIndex, pageIndex int, annotTop float64) (string, bool) {
	blocks, err := doc.Blocks(pageIndex)
	if err != nil {
		return "", false
	}

	best := ""
	bestDist := math.Inf(1)

	for _, block := range blocks {
		text := strings.TrimSpace(block.Text())
		if text == "" {
			continue
		}

		above := block.Bounds.Y.Lo > annotTop
		emphasized := block.MaxFontSize() > titleFontSizeFloor || block.HasBold()

		if !(above && emphasized) && !containsTitleMarker(text) {
			continue
		}

		dist := math.Abs(block.Bounds.Y.Lo - annotTop)
		if dist < bestDist {
			bestDist = dist
			best = text
		}
	}

	return best, best != ""
}

func containsTitleMarker(text string) bool {
	for _, marker := range titleMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
