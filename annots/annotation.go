// Package annots turns raw PDF annotations into normalized records: typed,
// page-stamped, enriched with the text they mark up and the nearest case
// title above them.
package annots

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cmorales/pdf-extract/pdfutils"
)

// Highlight is the type name the highlighted-text index filters on.
const Highlight = pdfutils.Highlight

// Annotation is one normalized annotation. Page and Type are always set;
// everything else is best effort and may be empty or absent.
type Annotation struct {
	Page             int                `json:"page"`
	Type             string             `json:"type"`
	Content          string             `json:"content"`
	Author           string             `json:"author"`
	Subject          string             `json:"subject"`
	CreationDate     string             `json:"creation_date"`
	ModificationDate string             `json:"modification_date"`
	Coordinates      map[string]float64 `json:"coordinates"`
	HighlightedText  string             `json:"highlighted_text,omitempty"`
	NearbyTitle      string             `json:"nearby_title,omitempty"`
	Color            string             `json:"color,omitempty"`
	ColorCategory    string             `json:"color_category,omitempty"`
}

// Collection is the ordered outcome of one document run: page ascending,
// then decoder order within the page. It is not mutated after building.
type Collection []Annotation

// Export is the persisted JSON envelope around a collection.
type Export struct {
	SourceFile       string       `json:"source_file"`
	ExtractionDate   string       `json:"extraction_date"`
	TotalAnnotations int          `json:"total_annotations"`
	Annotations      []Annotation `json:"annotations"`
}

// SaveJSON writes the collection to outputPath wrapped in the export
// envelope.
func SaveJSON(collected Collection, sourceFile, outputPath string) error {
	export := Export{
		SourceFile:       sourceFile,
		ExtractionDate:   time.Now().Format(time.RFC3339),
		TotalAnnotations: len(collected),
		Annotations:      collected,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(outputPath, append(data, '\n'), 0o644)
}

// LoadJSON reads a previously saved export.
func LoadJSON(path string) (*Export, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	export := &Export{}
	if err := json.Unmarshal(data, export); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return export, nil
}

// PrintSummary writes a human-readable rundown of the collection to w.
func PrintSummary(w io.Writer, collected Collection, sourceName string) {
	if len(collected) == 0 {
		fmt.Fprintln(w, "No annotations found in the PDF.")
		return
	}

	fmt.Fprintf(w, "Found %d annotations in %s\n", len(collected), sourceName)
	fmt.Fprintln(w, "--------------------------------------------------")

	typeOrder := []string{}
	typeCounts := map[string]int{}
	for _, annot := range collected {
		if _, seen := typeCounts[annot.Type]; !seen {
			typeOrder = append(typeOrder, annot.Type)
		}
		typeCounts[annot.Type]++
	}

	fmt.Fprintln(w, "Annotation types:")
	for _, typeName := range typeOrder {
		fmt.Fprintf(w, "  %s: %d\n", typeName, typeCounts[typeName])
	}

	fmt.Fprintln(w, "\nDetailed annotations:")
	for i, annot := range collected {
		fmt.Fprintf(w, "\n%d. Page %d - %s\n", i+1, annot.Page, annot.Type)
		if annot.Author != "Unknown" {
			fmt.Fprintf(w, "   Author: %s\n", annot.Author)
		}
		if annot.Subject != "" {
			fmt.Fprintf(w, "   Subject: %s\n", annot.Subject)
		}
		if annot.Content != "" {
			fmt.Fprintf(w, "   Content: %s\n", annot.Content)
		}
		if annot.NearbyTitle != "" {
			fmt.Fprintf(w, "   Title: %s\n", annot.NearbyTitle)
		}
		if annot.HighlightedText != "" {
			fmt.Fprintf(w, "   Highlighted text: %s\n", annot.HighlightedText)
		}
	}
}
