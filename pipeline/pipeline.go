// Package pipeline runs the flat-file content pipeline: a directory of
// hand-authored .svg sources in, a directory of .bin documents (base64
// text) plus a JSON summary out, and the reverse. Everything is
// single-threaded and one file at a time; a per-file failure degrades to
// the trait's fallback artwork and processing continues.
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tylerlengyel/compressedPhil/trait"
)

// Default directory layout of the artwork batches.
const (
	DefaultSourceDir       = "SVGs"
	DefaultCompressedDir   = "compressed"
	DefaultDecompressedDir = "decompressed"

	summaryName = "summary.json"
)

// Options configures a pipeline run.
type Options struct {
	Profile *trait.Profile
	Zstd    bool      // zstd the record stream inside each document
	Log     io.Writer // progress lines; nil keeps the run silent
}

func (o Options) logf(format string, args ...any) {
	if o.Log != nil {
		fmt.Fprintf(o.Log, format+"\n", args...)
	}
}

// CompressResult is one file's entry in the compression summary.
type CompressResult struct {
	OriginalSize   int     `json:"originalSize"`
	CompressedSize int     `json:"compressedSize"`
	Ratio          float64 `json:"ratio"`
	Error          string  `json:"error,omitempty"`
}

// DecompressResult is one file's entry in the decompression summary.
type DecompressResult struct {
	Decompressed bool   `json:"decompressed"`
	Size         int    `json:"size,omitempty"`
	Error        string `json:"error,omitempty"`
	Fallback     bool   `json:"fallback,omitempty"`
}

// CompressDir encodes every .svg in src into dst as .bin plus a JSON
// summary mapping filename to sizes and ratio. Files that fail to parse
// are recorded in the summary and skipped.
func CompressDir(src, dst string, opts Options) (map[string]CompressResult, error) {
	if src == "" {
		src = DefaultSourceDir
	}
	if dst == "" {
		dst = DefaultCompressedDir
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, fmt.Errorf("read source dir: %w", err)
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	results := make(map[string]CompressResult)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".svg") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(src, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}

		stored, err := trait.Compress(string(data), opts.Profile, opts.Zstd)
		if err != nil {
			opts.logf("%s: %v", e.Name(), err)
			results[e.Name()] = CompressResult{OriginalSize: len(data), Error: err.Error()}
			continue
		}

		outName := strings.TrimSuffix(e.Name(), ".svg") + ".bin"
		if err := os.WriteFile(filepath.Join(dst, outName), []byte(stored), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", outName, err)
		}

		r := CompressResult{
			OriginalSize:   len(data),
			CompressedSize: len(stored),
			Ratio:          ratio(len(stored), len(data)),
		}
		results[e.Name()] = r
		opts.logf("%s: %d -> %d bytes (%.1f%%)", e.Name(), r.OriginalSize, r.CompressedSize, r.Ratio*100)
	}

	if err := writeSummary(filepath.Join(dst, summaryName), results); err != nil {
		return nil, err
	}
	return results, nil
}

// DecompressDir decodes every .bin in src into dst as .svg plus a JSON
// summary. Decode failures substitute the trait's fallback artwork (or a
// partial document for unknown-tag corruption) and processing continues.
func DecompressDir(src, dst string, opts Options) (map[string]DecompressResult, error) {
	if src == "" {
		src = DefaultCompressedDir
	}
	if dst == "" {
		dst = DefaultDecompressedDir
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, fmt.Errorf("read source dir: %w", err)
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	results := make(map[string]DecompressResult)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".bin") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(src, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}

		svg, decErr := trait.Decompress(strings.TrimSpace(string(data)), opts.Profile)

		outName := strings.TrimSuffix(e.Name(), ".bin") + ".svg"
		if err := os.WriteFile(filepath.Join(dst, outName), []byte(svg), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", outName, err)
		}

		r := DecompressResult{Decompressed: decErr == nil, Size: len(svg)}
		if decErr != nil {
			r.Error = decErr.Error()
			r.Fallback = true
			opts.logf("%s: fallback (%v)", e.Name(), decErr)
		} else {
			opts.logf("%s: %d bytes", e.Name(), r.Size)
		}
		results[e.Name()] = r
	}

	if err := writeSummary(filepath.Join(dst, summaryName), results); err != nil {
		return nil, err
	}
	return results, nil
}

func writeSummary(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

func ratio(num, denom int) float64 {
	if denom == 0 {
		return 0
	}
	return float64(num) / float64(denom)
}
