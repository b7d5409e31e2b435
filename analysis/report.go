package analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cmorales/pdf-extract/annots"
)

// Report artifact names within the output directory.
const (
	StatisticsFile       = "statistics.json"
	HighlightedTextsFile = "highlighted_texts.json"
	ByPageFile           = "annotations_by_page.json"
	ReportFile           = "report.txt"
)

// GenerateReport writes the four report artifacts into outputDir, creating
// the directory if needed. sourceFile names the PDF the collection came
// from and only appears in the report header. Returns the directory path.
func (a *Analyzer) GenerateReport(outputDir, sourceFile string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(outputDir, StatisticsFile), a.stats); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(outputDir, HighlightedTextsFile), a.highlighted); err != nil {
		return "", err
	}

	byPage := map[string][]annots.Annotation{}
	for page, pageAnnots := range a.byPage {
		byPage[strconv.Itoa(page)] = pageAnnots
	}
	if err := writeJSON(filepath.Join(outputDir, ByPageFile), byPage); err != nil {
		return "", err
	}

	report := a.renderTextReport(sourceFile, time.Now())
	if err := os.WriteFile(filepath.Join(outputDir, ReportFile), []byte(report), 0o644); err != nil {
		return "", err
	}

	return outputDir, nil
}

func (a *Analyzer) renderTextReport(sourceFile string, now time.Time) string {
	var sb strings.Builder

	name := "Unknown"
	if sourceFile != "" {
		name = filepath.Base(sourceFile)
	}

	sb.WriteString("ANNOTATION REPORT\n")
	fmt.Fprintf(&sb, "Date: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "File: %s\n\n", name)

	sb.WriteString("GENERAL STATISTICS\n")
	fmt.Fprintf(&sb, "Total annotations: %d\n", a.stats.TotalAnnotations)
	fmt.Fprintf(&sb, "Pages with annotations: %d\n", a.stats.PagesWithAnnotations)
	fmt.Fprintf(&sb, "Page with most annotations: %s\n", formatIntPtr(a.stats.PageWithMostAnnotations))
	fmt.Fprintf(&sb, "Most common annotation type: %s\n\n", formatStrPtr(a.stats.MostCommonType))

	sb.WriteString("ANNOTATION TYPES\n")
	for _, typeName := range a.typeOrder {
		fmt.Fprintf(&sb, "- %s: %d\n", typeName, len(a.byType[typeName]))
	}
	sb.WriteString("\n")

	sb.WriteString("AUTHORS\n")
	for _, author := range a.authorOrder {
		fmt.Fprintf(&sb, "- %s: %d annotations\n", author, len(a.byAuthor[author]))
	}
	sb.WriteString("\n")

	if len(a.highlighted) > 0 {
		fmt.Fprintf(&sb, "HIGHLIGHTED TEXTS (%d)\n", len(a.highlighted))
		for i, item := range a.highlighted {
			fmt.Fprintf(&sb, "%d. Page %d: %q\n", i+1, item.Page, item.Text)
			if item.Comment != "" {
				fmt.Fprintf(&sb, "   Comment: %s\n", item.Comment)
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func formatIntPtr(v *int) string {
	if v == nil {
		return "none"
	}
	return strconv.Itoa(*v)
}

func formatStrPtr(v *string) string {
	if v == nil {
		return "none"
	}
	return *v
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(data, '\n'), 0o644)
}
