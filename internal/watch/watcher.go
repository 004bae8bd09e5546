package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"map2vmf/internal/convert"
	"map2vmf/internal/textutil"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// DefaultDebounce coalesces the write bursts editors produce on save.
const DefaultDebounce = 250 * time.Millisecond

// Watcher re-runs a conversion every time the source map changes on disk.
type Watcher struct {
	converter *convert.Converter
	debounce  time.Duration
}

// New creates a watcher. A non-positive debounce falls back to
// DefaultDebounce.
func New(conv *convert.Converter, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{converter: conv, debounce: debounce}
}

// Run converts once, then watches inputPath until ctx is cancelled,
// reconverting after each change. The parent directory is watched rather
// than the file itself, since editors replace files via rename on save.
// Saves that leave the bytes untouched are skipped by content hash.
func (w *Watcher) Run(ctx context.Context, inputPath, outputPath string) error {
	abs, err := filepath.Abs(inputPath)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}

	var lastHash string

	convertIfChanged := func() {
		data, err := os.ReadFile(abs)
		if err != nil {
			log.Warn().Err(err).Str("input", abs).Msg("Input unreadable, waiting for next change")
			return
		}

		hash := textutil.Hash(data)
		if hash == lastHash {
			log.Debug().Str("input", abs).Msg("Contents unchanged, skipping")
			return
		}

		report, err := w.converter.ConvertFile(abs, outputPath)
		if err != nil {
			log.Error().Err(err).Str("input", abs).Msg("Conversion failed")
			return
		}
		lastHash = hash

		log.Info().
			Str("output", report.OutputPath).
			Int("brushes", report.Stats.BrushesProcessed).
			Int("faces", report.Stats.FacesProcessed).
			Msg("Reconverted")
	}

	convertIfChanged()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Chmod) == 0 {
				continue
			}
			if pending && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
			pending = true

		case <-timer.C:
			if pending {
				pending = false
				convertIfChanged()
			}

		case watchErr, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch events: %w", watchErr)
		}
	}
}
