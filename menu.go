package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cmorales/pdf-extract/config"
)

func printHeader() {
	line := strings.Repeat("=", 60)
	fmt.Println("\n" + line)
	fmt.Printf("%38s\n", "PDF EXTRACT TOOL")
	fmt.Println(line)
}

func printMenu() {
	fmt.Println("\nMAIN MENU:")
	fmt.Println("1. Extract text from PDF")
	fmt.Println("2. Extract annotations from PDF")
	fmt.Println("3. Analyze annotations")
	fmt.Println("4. Process all (extract text, annotations and analyze)")
	fmt.Println("5. Settings")
	fmt.Println("0. Exit")
	fmt.Println(strings.Repeat("-", 60))
}

func runMenu(cfg *config.Config, presetPDF string) {
	if presetPDF != "" {
		if !fileExists(presetPDF) {
			fmt.Printf("Error: the file %s does not exist\n", presetPDF)
			os.Exit(1)
		}
		cfg.InputDir = filepath.Dir(presetPDF)
	}

	menuLoop(cfg, bufio.NewReader(os.Stdin))
}

// menuLoop re-prompts until the user exits or stdin is exhausted. Treating a
// closed stdin as exit keeps a piped invocation from spinning on the menu.
func menuLoop(cfg *config.Config, in *bufio.Reader) {
	for {
		printHeader()
		printMenu()

		choice, ok := prompt(in, "Enter your choice (0-5): ")
		if !ok {
			fmt.Println("\nExiting PDF Extract Tool. Goodbye!")
			return
		}

		switch choice {
		case "1":
			path := pickPDF(cfg, in)
			byPage := strings.EqualFold(promptLine(in, "Extract text by page? (y/n, default: n): "), "y")
			numbers := !strings.EqualFold(promptLine(in, "Include page numbers? (y/n, default: y): "), "n")
			reportErr(runText(cfg, path, byPage, numbers))
		case "2":
			_, err := runAnnotations(cfg, pickPDF(cfg, in), true)
			reportErr(err)
		case "3":
			reportErr(runAnalyze(cfg, pickAnnotationsFile(cfg, in)))
		case "4":
			reportErr(runAll(cfg, pickPDF(cfg, in)))
		case "5":
			settings(cfg, in)
		case "0":
			fmt.Println("\nExiting PDF Extract Tool. Goodbye!")
			return
		default:
			fmt.Println("\nInvalid choice. Please try again.")
		}
	}
}

func settings(cfg *config.Config, in *bufio.Reader) {
	fmt.Println("\n--- SETTINGS ---")
	fmt.Printf("Current input directory: %s\n", cfg.InputDir)
	newDir := promptLine(in, fmt.Sprintf("Enter new input directory (or press Enter to keep %q): ", cfg.InputDir))
	if newDir != "" {
		cfg.InputDir = newDir
		fmt.Printf("Input directory updated to: %s\n", cfg.InputDir)
	}
}

// pickPDF offers the PDFs in the input directory, auto-selecting a lone one,
// and falls back to a free-form path prompt.
func pickPDF(cfg *config.Config, in *bufio.Reader) string {
	return pickFile(cfg.InputDir, ".pdf", "PDF", in)
}

func pickAnnotationsFile(cfg *config.Config, in *bufio.Reader) string {
	return pickFile(cfg.AnnotationsDir(), ".json", "annotation", in)
}

func pickFile(dir, ext, label string, in *bufio.Reader) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return promptLine(in, fmt.Sprintf("Enter the path to the %s file: ", label))
	}

	names := []string{}
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			names = append(names, entry.Name())
		}
	}

	if len(names) == 0 {
		return promptLine(in, fmt.Sprintf("Enter the path to the %s file: ", label))
	}

	if len(names) == 1 {
		fmt.Printf("Using the only available %s file: %s\n", label, names[0])
		return filepath.Join(dir, names[0])
	}

	fmt.Printf("Available %s files:\n", label)
	for i, name := range names {
		fmt.Printf("%d. %s\n", i+1, name)
	}

	choice, err := strconv.Atoi(promptLine(in, "\nSelect a file number (or 0 to enter a different path): "))
	if err == nil && choice >= 1 && choice <= len(names) {
		return filepath.Join(dir, names[choice-1])
	}

	return promptLine(in, fmt.Sprintf("Enter the path to the %s file: ", label))
}

// prompt reads one input line. ok is false once the input is exhausted, so
// the caller can stop re-prompting.
func prompt(in *bufio.Reader, msg string) (string, bool) {
	fmt.Print(msg)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

// promptLine is prompt for follow-up questions, where exhausted input reads
// as an empty answer.
func promptLine(in *bufio.Reader, msg string) string {
	line, _ := prompt(in, msg)
	return line
}

func reportErr(err error) {
	if err != nil {
		fmt.Printf("Error: %v\n", err)
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
