package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"map2vmf/internal/mapdoc"
	"map2vmf/internal/parser"
	"map2vmf/internal/vmf"
)

// Converter turns .map text into VMF text. One Converter may serve many
// conversions; each call builds its own parser and document.
type Converter struct {
	defaultTexture string
}

// New creates a converter substituting defaultTexture for sentinel
// materials.
func New(defaultTexture string) *Converter {
	return &Converter{defaultTexture: defaultTexture}
}

// Report describes one completed file conversion.
type Report struct {
	InputPath      string
	OutputPath     string
	Stats          mapdoc.Stats
	OutputSize     int
	DefaultTexture string
}

// Convert runs the in-memory pipeline: parse, then serialize. Grammar
// mismatches never fail the conversion; anything unexpected inside the
// pipeline is recovered here and returned as an error instead of crashing
// the host.
func (c *Converter) Convert(content string) (out string, stats mapdoc.Stats, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	p := parser.NewMapParser(c.defaultTexture)
	doc, st := p.Parse(content)
	return vmf.Serialize(doc), st, nil
}

// ConvertFile reads the whole input file, converts it, and writes the whole
// output file. Either a complete output is written or none: serialization
// finishes before the destination is touched.
func (c *Converter) ConvertFile(inputPath, outputPath string) (*Report, error) {
	content, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("read map file: %w", err)
	}

	out, stats, err := c.Convert(string(content))
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", inputPath, err)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, []byte(out), 0644); err != nil {
		return nil, fmt.Errorf("write vmf file: %w", err)
	}

	return &Report{
		InputPath:      inputPath,
		OutputPath:     outputPath,
		Stats:          stats,
		OutputSize:     len(out),
		DefaultTexture: c.defaultTexture,
	}, nil
}
