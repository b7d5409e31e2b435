package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/cmorales/pdf-extract/config"
)

var args struct {
	Text        string `help:"Extract plain text from the given PDF" type:"path"`
	Annotations string `help:"Extract annotations from the given PDF" type:"path"`
	Analyze     string `help:"Analyze a previously exported annotations JSON file" type:"path"`
	All         string `help:"Extract text and annotations from the given PDF, then analyze" type:"path"`

	Summary      bool `short:"s" help:"Print an annotation summary to the console"`
	ByPage       bool `help:"Split extracted text by page"`
	NoPageNumber bool `help:"Omit page markers from extracted text"`

	InputPDF string `arg:"" optional:"" name:"pdf" help:"PDF to process via the interactive menu" type:"path"`
}

func endIfErr(e error) {
	if e != nil {
		logrus.Fatalln(e)
	}
}

func main() {
	kong.Parse(&args)

	cfg, err := config.Load()
	endIfErr(err)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	endIfErr(err)
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)

	switch {
	case args.Text != "":
		endIfErr(runText(cfg, args.Text, args.ByPage, !args.NoPageNumber))
	case args.Annotations != "":
		_, err := runAnnotations(cfg, args.Annotations, args.Summary)
		endIfErr(err)
	case args.Analyze != "":
		endIfErr(runAnalyze(cfg, args.Analyze))
	case args.All != "":
		endIfErr(runAll(cfg, args.All))
	default:
		runMenu(cfg, args.InputPDF)
	}
}
