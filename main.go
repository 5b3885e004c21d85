package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"stockflow/export"
	"stockflow/tui"
)

func main() {
	var (
		interactive = flag.Bool("i", false, "Interactive TUI mode")
		format      = flag.String("format", "ascii", "Export format: ascii, png")
		outputFile  = flag.String("o", "", "Output file (default: stdout for ascii; required for png)")
		help        = flag.Bool("help", false, "Show help")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] project.json\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "A stock-and-flow diagram editor and renderer.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s model.json                    # Render to stdout\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -i model.json                 # Edit in the TUI\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -format png -o model.png model.json\n", os.Args[0])
	}

	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	filename := args[0]

	elements, err := loadProject(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		elements, err = tui.Run(elements)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		out := *outputFile
		if out == "" {
			out = filename
		}
		if err := saveProject(out, elements); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	switch *format {
	case "ascii":
		text := strings.Join(export.ASCII(elements), "\n") + "\n"
		if *outputFile == "" {
			fmt.Print(text)
		} else if err := os.WriteFile(*outputFile, []byte(text), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "png":
		if *outputFile == "" {
			fmt.Fprintln(os.Stderr, "Error: png export requires -o")
			os.Exit(1)
		}
		if err := export.PNG(*outputFile, elements); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (want ascii or png)\n", *format)
		os.Exit(1)
	}
}
