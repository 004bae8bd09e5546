package filewalker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// SupportedExtensions lists source file types handled by the converter.
var SupportedExtensions = map[string]bool{
	".map": true,
}

// FileEntry is a discovered map file ready for conversion.
type FileEntry struct {
	// Path is the absolute path to the source file.
	Path string
	// Rel is the path relative to the walked root, used to mirror the
	// directory layout under the output root.
	Rel string
}

// Walker discovers convertible files under a directory tree.
type Walker struct{}

func NewWalker() *Walker { return &Walker{} }

// Walk discovers all supported files under the given root directory.
func (w *Walker) Walk(root string) ([]FileEntry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	var entries []FileEntry

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}

		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !SupportedExtensions[ext] {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Skipping file outside root")
			return nil
		}

		entries = append(entries, FileEntry{Path: path, Rel: rel})
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	log.Info().Int("count", len(entries)).Str("root", root).Msg("Discovered map files")
	return entries, nil
}

// OutputPath mirrors the entry's relative location under outRoot, swapping
// the extension for .vmf.
func (e FileEntry) OutputPath(outRoot string) string {
	rel := strings.TrimSuffix(e.Rel, filepath.Ext(e.Rel)) + ".vmf"
	return filepath.Join(outRoot, rel)
}
