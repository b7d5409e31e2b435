// Package analysis aggregates a finished annotation collection into
// groupings, summary statistics and a report directory.
package analysis

import (
	"github.com/cmorales/pdf-extract/annots"
)

// Statistics summarizes one collection. The two "most" fields are nil when
// the collection is empty.
type Statistics struct {
	TotalAnnotations        int            `json:"total_annotations"`
	PagesWithAnnotations    int            `json:"pages_with_annotations"`
	AnnotationTypes         map[string]int `json:"annotation_types"`
	Authors                 map[string]int `json:"authors"`
	PageWithMostAnnotations *int           `json:"page_with_most_annotations"`
	MostCommonType          *string        `json:"most_common_type"`
}

// HighlightedText is one entry of the highlighted-text index.
type HighlightedText struct {
	Page    int    `json:"page"`
	Text    string `json:"text"`
	Author  string `json:"author"`
	Comment string `json:"comment"`
}

// Analyzer is a read-only view over a snapshot of a collection. All
// groupings and statistics are computed once at construction; analyzing
// updated data means building a new Analyzer.
//
// Group keys keep first-seen order. Ties on "page with most annotations"
// and "most common type" resolve to whichever key appeared first in the
// input, so insertion order is load-bearing, not incidental.
type Analyzer struct {
	annotations []annots.Annotation

	pageOrder []int
	byPage    map[int][]annots.Annotation

	typeOrder []string
	byType    map[string][]annots.Annotation

	authorOrder []string
	byAuthor    map[string][]annots.Annotation

	stats       Statistics
	highlighted []HighlightedText
}

// New builds an Analyzer over an immutable snapshot of the collection.
func New(collected annots.Collection) *Analyzer {
	a := &Analyzer{
		annotations: make([]annots.Annotation, len(collected)),
		byPage:      map[int][]annots.Annotation{},
		byType:      map[string][]annots.Annotation{},
		byAuthor:    map[string][]annots.Annotation{},
	}
	copy(a.annotations, collected)

	for _, annot := range a.annotations {
		if _, seen := a.byPage[annot.Page]; !seen {
			a.pageOrder = append(a.pageOrder, annot.Page)
		}
		a.byPage[annot.Page] = append(a.byPage[annot.Page], annot)

		if _, seen := a.byType[annot.Type]; !seen {
			a.typeOrder = append(a.typeOrder, annot.Type)
		}
		a.byType[annot.Type] = append(a.byType[annot.Type], annot)

		if _, seen := a.byAuthor[annot.Author]; !seen {
			a.authorOrder = append(a.authorOrder, annot.Author)
		}
		a.byAuthor[annot.Author] = append(a.byAuthor[annot.Author], annot)
	}

	a.stats = a.computeStatistics()
	a.highlighted = a.computeHighlightedTexts()

	return a
}

func (a *Analyzer) computeStatistics() Statistics {
	stats := Statistics{
		TotalAnnotations:     len(a.annotations),
		PagesWithAnnotations: len(a.byPage),
		AnnotationTypes:      map[string]int{},
		Authors:              map[string]int{},
	}

	for _, typeName := range a.typeOrder {
		stats.AnnotationTypes[typeName] = len(a.byType[typeName])
	}
	for _, author := range a.authorOrder {
		stats.Authors[author] = len(a.byAuthor[author])
	}

	bestCount := 0
	for _, page := range a.pageOrder {
		if len(a.byPage[page]) > bestCount {
			bestCount = len(a.byPage[page])
			p := page
			stats.PageWithMostAnnotations = &p
		}
	}

	bestCount = 0
	for _, typeName := range a.typeOrder {
		if len(a.byType[typeName]) > bestCount {
			bestCount = len(a.byType[typeName])
			t := typeName
			stats.MostCommonType = &t
		}
	}

	return stats
}

func (a *Analyzer) computeHighlightedTexts() []HighlightedText {
	results := []HighlightedText{}

	for _, annot := range a.byType[annots.Highlight] {
		if annot.HighlightedText == "" {
			continue
		}
		results = append(results, HighlightedText{
			Page:    annot.Page,
			Text:    annot.HighlightedText,
			Author:  annot.Author,
			Comment: annot.Content,
		})
	}

	return results
}

// Statistics returns a copy of the precomputed summary. Mutating the result
// does not affect the snapshot or later calls.
func (a *Analyzer) Statistics() Statistics {
	stats := a.stats

	stats.AnnotationTypes = make(map[string]int, len(a.stats.AnnotationTypes))
	for k, v := range a.stats.AnnotationTypes {
		stats.AnnotationTypes[k] = v
	}
	stats.Authors = make(map[string]int, len(a.stats.Authors))
	for k, v := range a.stats.Authors {
		stats.Authors[k] = v
	}

	if a.stats.PageWithMostAnnotations != nil {
		p := *a.stats.PageWithMostAnnotations
		stats.PageWithMostAnnotations = &p
	}
	if a.stats.MostCommonType != nil {
		t := *a.stats.MostCommonType
		stats.MostCommonType = &t
	}

	return stats
}

// HighlightedTexts returns the highlighted-text index, built from Highlight
// annotations that carry extracted text.
func (a *Analyzer) HighlightedTexts() []HighlightedText {
	return a.highlighted
}

// ByPage returns the page grouping. Callers must not mutate it.
func (a *Analyzer) ByPage() map[int][]annots.Annotation {
	return a.byPage
}

// ByType returns the type grouping. Callers must not mutate it.
func (a *Analyzer) ByType() map[string][]annots.Annotation {
	return a.byType
}

// ByAuthor returns the author grouping. Callers must not mutate it.
func (a *Analyzer) ByAuthor() map[string][]annots.Annotation {
	return a.byAuthor
}

// PageOrder returns page keys in first-seen order.
func (a *Analyzer) PageOrder() []int {
	return a.pageOrder
}

// TypeOrder returns type keys in first-seen order.
func (a *Analyzer) TypeOrder() []string {
	return a.typeOrder
}

// AuthorOrder returns author keys in first-seen order.
func (a *Analyzer) AuthorOrder() []string {
	return a.authorOrder
}
