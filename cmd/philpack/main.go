// philpack - trait artwork compression CLI
//
// Usage:
//
//	philpack compress [options] [src] [dst]    Encode a directory of .svg into .bin documents
//	philpack decompress [options] [src] [dst]  Rebuild .svg files from .bin documents
//	philpack inspect <file.bin>                Dump a document's header and records
//	philpack chart <summary.json> <out.svg>    Render compression ratios as a bar chart
//	philpack version                           Print version info
//
// Directories default to the batch layout: SVGs/ -> compressed/ ->
// decompressed/. Each trait family has its own profile (color
// dictionary, quantization scale, fallback artwork); pick one with
// --trait and extend the built-ins with --profiles.
package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tylerlengyel/compressedPhil/pipeline"
	"github.com/tylerlengyel/compressedPhil/pvg"
	"github.com/tylerlengyel/compressedPhil/trait"
)

const version = "1.2.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]

	traitName := "background"
	profilesPath := ""
	useZstd := false
	var args []string
	for _, arg := range os.Args[2:] {
		switch {
		case strings.HasPrefix(arg, "--trait="):
			traitName = strings.TrimPrefix(arg, "--trait=")
		case strings.HasPrefix(arg, "--profiles="):
			profilesPath = strings.TrimPrefix(arg, "--profiles=")
		case arg == "--zstd":
			useZstd = true
		default:
			if strings.HasPrefix(arg, "-") {
				fatal("unknown flag: %s", arg)
			}
			args = append(args, arg)
		}
	}

	registry := trait.NewRegistry()
	if profilesPath != "" {
		if err := registry.LoadFile(profilesPath); err != nil {
			fatal("%v", err)
		}
	}
	profile := registry.Lookup(traitName)

	switch cmd {
	case "compress":
		src, dst := pick(args, 0), pick(args, 1)
		opts := pipeline.Options{Profile: profile, Zstd: useZstd, Log: os.Stderr}
		results, err := pipeline.CompressDir(src, dst, opts)
		if err != nil {
			fatal("compress: %v", err)
		}
		var orig, comp int
		for _, r := range results {
			orig += r.OriginalSize
			comp += r.CompressedSize
		}
		fmt.Fprintf(os.Stderr, "--- %d files, %d -> %d bytes ---\n", len(results), orig, comp)

	case "decompress":
		src, dst := pick(args, 0), pick(args, 1)
		opts := pipeline.Options{Profile: profile, Log: os.Stderr}
		results, err := pipeline.DecompressDir(src, dst, opts)
		if err != nil {
			fatal("decompress: %v", err)
		}
		ok := 0
		for _, r := range results {
			if r.Decompressed {
				ok++
			}
		}
		fmt.Fprintf(os.Stderr, "--- %d/%d files decompressed ---\n", ok, len(results))

	case "inspect":
		if len(args) < 1 {
			fatal("inspect: missing file argument")
		}
		cmdInspect(args[0], profile)

	case "chart":
		if len(args) < 2 {
			fatal("chart: want <summary.json> <out.svg>")
		}
		cmdChart(args[0], args[1])

	case "version", "-v", "--version":
		fmt.Printf("philpack %s (format v%d)\n", version, pvg.Version)

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `philpack - trait artwork compression CLI

Usage:
  philpack compress [options] [src] [dst]    Encode a directory of .svg into .bin documents
  philpack decompress [options] [src] [dst]  Rebuild .svg files from .bin documents
  philpack inspect <file.bin>                Dump a document's header and records
  philpack chart <summary.json> <out.svg>    Render compression ratios as a bar chart
  philpack version                           Print version info

Options:
  --trait=NAME        Trait profile: background, nose, top, spikes (default: background)
  --profiles=FILE     Merge trait profiles from a YAML file
  --zstd              Compress the record stream with zstd before base64

Directories default to SVGs/ -> compressed/ -> decompressed/. Both
pipelines write a summary.json next to their output.

Examples:
  philpack compress --trait=spikes SVGs compressed
  philpack decompress --trait=spikes compressed decompressed
  philpack chart compressed/summary.json ratios.svg
`)
}

func cmdInspect(path string, profile *trait.Profile) {
	data, err := os.ReadFile(path)
	if err != nil {
		fatal("read file: %v", err)
	}
	stored := strings.TrimSpace(string(data))

	doc, decErr := pvg.Decode(stored, profile.DecodeOptions())

	if hdr, err := headerOf(stored); err == nil {
		fmt.Printf("version=%d count=%d scale=%d zstd=%v stored=%d bytes\n",
			hdr.Version, hdr.Count, hdr.Scale, hdr.Compressed, len(stored))
	}
	if doc != nil {
		fmt.Printf("viewBox=%q\n", doc.ViewBox.String())
		for i, rec := range doc.Records {
			fmt.Printf("  record %d: %s%s\n", i, rec.Tag(), describe(rec))
		}
	}
	if decErr != nil {
		fmt.Fprintf(os.Stderr, "decode: %v\n", decErr)
		os.Exit(1)
	}
}

func headerOf(stored string) (pvg.Header, error) {
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return pvg.Header{}, err
	}
	return pvg.ParseHeader(raw)
}

func describe(rec pvg.Record) string {
	switch r := rec.(type) {
	case *pvg.Path:
		return fmt.Sprintf(" commands=%d fill=%s", len(r.Commands), r.Fill)
	case *pvg.CircleGroup:
		return fmt.Sprintf(" circles=%d", len(r.Circles))
	case *pvg.Gradient:
		return fmt.Sprintf(" stops=%d", len(r.Stops))
	case *pvg.Text:
		return fmt.Sprintf(" %q", r.Content)
	default:
		return ""
	}
}

func cmdChart(summaryPath, outPath string) {
	data, err := os.ReadFile(summaryPath)
	if err != nil {
		fatal("read summary: %v", err)
	}
	var results map[string]pipeline.CompressResult
	if err := json.Unmarshal(data, &results); err != nil {
		fatal("parse summary: %v", err)
	}
	if err := pipeline.RatioChart(results, outPath); err != nil {
		fatal("render chart: %v", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%d files)\n", outPath, len(results))
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "philpack: "+format+"\n", args...)
	os.Exit(1)
}

func pick(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
