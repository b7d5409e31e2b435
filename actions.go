package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cmorales/pdf-extract/analysis"
	"github.com/cmorales/pdf-extract/annots"
	"github.com/cmorales/pdf-extract/config"
	"github.com/cmorales/pdf-extract/pdfutils"
)

func pdfStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func runText(cfg *config.Config, path string, byPage, includeNumbers bool) error {
	if !fileExists(path) {
		return fmt.Errorf("%w: %s", annots.ErrNotFound, path)
	}

	doc, err := pdfutils.Open(path)
	if err != nil {
		return err
	}
	defer doc.Close()

	if err := os.MkdirAll(cfg.TextDir(), 0o755); err != nil {
		return err
	}
	outputPath := filepath.Join(cfg.TextDir(), pdfStem(path)+"_text.txt")

	if byPage {
		pages, err := pdfutils.ExtractTextByPage(doc, includeNumbers)
		if err != nil {
			return err
		}
		if err := pdfutils.SaveTextPages(pages, outputPath); err != nil {
			return err
		}
	} else {
		text, err := pdfutils.ExtractAllText(doc, includeNumbers)
		if err != nil {
			return err
		}
		if err := pdfutils.SaveText(text, outputPath); err != nil {
			return err
		}
	}

	fmt.Printf("Text extraction completed. Text saved to: %s\n", outputPath)
	return nil
}

// runAnnotations extracts, exports and summarizes one PDF's annotations.
// Returns the export path, or "" when the document had none.
func runAnnotations(cfg *config.Config, path string, summary bool) (string, error) {
	extractor, err := annots.NewExtractor(path)
	if err != nil {
		return "", err
	}

	fmt.Printf("Extracting annotations from %s...\n", path)
	collected := extractor.ExtractAnnotations()

	if len(collected) == 0 {
		fmt.Println("No annotations found in the PDF.")
		return "", nil
	}

	if err := os.MkdirAll(cfg.AnnotationsDir(), 0o755); err != nil {
		return "", err
	}
	outputPath := filepath.Join(cfg.AnnotationsDir(), pdfStem(path)+"_annotations.json")

	if err := annots.SaveJSON(collected, path, outputPath); err != nil {
		return "", err
	}

	fmt.Printf("Annotations saved to: %s\n", outputPath)

	if summary {
		fmt.Println("\nAnnotation Summary:")
		annots.PrintSummary(os.Stdout, collected, filepath.Base(path))
	}

	return outputPath, nil
}

func runAnalyze(cfg *config.Config, annotationsPath string) error {
	export, err := annots.LoadJSON(annotationsPath)
	if err != nil {
		return err
	}

	if len(export.Annotations) == 0 {
		fmt.Println("No annotations found in the file.")
		return nil
	}

	fmt.Printf("Loaded %d annotations.\n", len(export.Annotations))

	analyzer := analysis.New(export.Annotations)

	reportPath, err := analyzer.GenerateReport(cfg.ReportsDir(), export.SourceFile)
	if err != nil {
		return err
	}

	fmt.Printf("\nReport generated in directory: %s\n", reportPath)

	stats := analyzer.Statistics()
	fmt.Println("\nMain statistics:")
	fmt.Printf("- Total annotations: %d\n", stats.TotalAnnotations)
	fmt.Printf("- Pages with annotations: %d\n", stats.PagesWithAnnotations)
	if stats.MostCommonType != nil {
		fmt.Printf("- Most common annotation type: %s\n", *stats.MostCommonType)
	}

	highlighted := analyzer.HighlightedTexts()
	if len(highlighted) > 0 {
		fmt.Printf("\nFound %d highlighted texts.\n", len(highlighted))
		fmt.Println("First 3 highlighted texts:")
		for i, item := range highlighted {
			if i == 3 {
				break
			}
			fmt.Printf("%d. Page %d: %q\n", i+1, item.Page, item.Text)
		}
	}

	return nil
}

func runAll(cfg *config.Config, path string) error {
	fmt.Println("Step 1: Extracting text...")
	if err := runText(cfg, path, false, true); err != nil {
		return err
	}

	fmt.Println("\nStep 2: Extracting annotations...")
	annotationsPath, err := runAnnotations(cfg, path, true)
	if err != nil {
		return err
	}

	if annotationsPath != "" {
		fmt.Println("\nStep 3: Analyzing annotations...")
		if err := runAnalyze(cfg, annotationsPath); err != nil {
			return err
		}
	}

	fmt.Println("\nComplete processing finished.")
	return nil
}
