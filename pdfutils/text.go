package pdfutils

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// ExtractAllText returns the text of the whole document as one string.
// When includeNumbers is set, each page is preceded by a marker line.
func ExtractAllText(doc *Document, includeNumbers bool) (string, error) {
	var sb strings.Builder

	for i := 0; i < doc.NumPages(); i++ {
		text, err := doc.PlainText(i)
		if err != nil {
			return "", err
		}

		if includeNumbers {
			fmt.Fprintf(&sb, "=== PAGE %d ===\n\n", i+1)
		}

		sb.WriteString(text)
		sb.WriteString("\n\n")
	}

	return sb.String(), nil
}

// ExtractTextByPage returns the document text keyed by 1-based page number.
func ExtractTextByPage(doc *Document, includeNumbers bool) (map[int]string, error) {
	result := map[int]string{}

	for i := 0; i < doc.NumPages(); i++ {
		text, err := doc.PlainText(i)
		if err != nil {
			return nil, err
		}

		if includeNumbers {
			text = fmt.Sprintf("=== PAGE %d ===\n\n%s", i+1, text)
		}

		result[i+1] = text
	}

	return result, nil
}

// SaveText writes extracted text to a file.
func SaveText(text string, outputPath string) error {
	return os.WriteFile(outputPath, []byte(text), 0o644)
}

// SaveTextPages writes per-page text to a file in page order.
func SaveTextPages(pages map[int]string, outputPath string) error {
	nums := make([]int, 0, len(pages))
	for num := range pages {
		nums = append(nums, num)
	}
	sort.Ints(nums)

	var sb strings.Builder
	for _, num := range nums {
		sb.WriteString(pages[num])
		sb.WriteString("\n\n")
	}

	return os.WriteFile(outputPath, []byte(sb.String()), 0o644)
}
