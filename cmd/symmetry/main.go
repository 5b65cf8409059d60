// Command symmetry renders the mirrored variant of an image file.
//
// Usage:
//
//	symmetry [-d direction] [-o output] <input>
//
// Animated GIF input produces an animated GIF; other inputs produce a PNG.
// Use "-" to read from stdin or write to stdout.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lilyknight39/symmetry"
	"github.com/lilyknight39/symmetry/mirror"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "symmetry: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("symmetry", flag.ContinueOnError)
	direction := fs.String("d", "left", "mirror direction: left/right/up/down/both")
	output := fs.String("o", "", `output path (default: <input>.mirror.<ext>, "-" for stdout)`)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("missing input file\nUsage: symmetry [-d direction] [-o output] <input>")
	}
	inputPath := fs.Arg(0)

	dir, err := mirror.ParseDirection(*direction)
	if err != nil {
		return err
	}

	data, err := readInput(inputPath)
	if err != nil {
		return err
	}

	result, err := symmetry.Render(data, dir)
	if err != nil {
		return err
	}

	outPath := *output
	if outPath == "" {
		outPath = defaultOutput(inputPath, symmetry.IsAnimated(data))
	}
	return writeOutput(outPath, result)
}

// readInput reads the whole input file, or stdin for "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// writeOutput writes the result to path, or stdout for "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// defaultOutput derives an output path next to the input, with the
// extension matching the produced container.
func defaultOutput(inputPath string, animated bool) string {
	ext := ".png"
	if animated {
		ext = ".gif"
	}
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return base + ".mirror" + ext
}
