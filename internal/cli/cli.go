package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"map2vmf/internal/config"
	"map2vmf/internal/convert"
	"map2vmf/internal/filewalker"
	"map2vmf/internal/textutil"
	"map2vmf/internal/watch"
	"map2vmf/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "map2vmf",
		Short: "Convert TrenchBroom .map files to Source engine .vmf files",
		Long: `map2vmf transcodes Quake-style .map level geometry into the VMF format
used by Source engine tools, rewriting empty-texture placeholders with a
configurable default texture.`,
	}

	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input.map> <output.vmf>",
		Short: "Convert a single map file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			texture, _ := cmd.Flags().GetString("texture")
			return runConvert(args[0], args[1], texture)
		},
	}

	cmd.Flags().String("texture", "", "Texture substituted for __TB_empty faces")

	return cmd
}

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <input-dir> <output-dir>",
		Short: "Convert every .map file under a directory tree",
		Long: `Discovers .map files under <input-dir> and converts them concurrently,
mirroring the directory layout under <output-dir> with a .vmf extension.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			texture, _ := cmd.Flags().GetString("texture")
			workers, _ := cmd.Flags().GetInt("workers")
			return runBatch(args[0], args[1], texture, workers)
		},
	}

	cmd.Flags().String("texture", "", "Texture substituted for __TB_empty faces")
	cmd.Flags().Int("workers", 0, "Concurrent conversions (0 = configured default)")

	return cmd
}

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <input.map> <output.vmf>",
		Short: "Reconvert whenever the map file changes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			texture, _ := cmd.Flags().GetString("texture")
			debounce, _ := cmd.Flags().GetDuration("debounce")
			return runWatch(args[0], args[1], texture, debounce)
		},
	}

	cmd.Flags().String("texture", "", "Texture substituted for __TB_empty faces")
	cmd.Flags().Duration("debounce", watch.DefaultDebounce, "Delay before reconverting after a change")

	return cmd
}

// runConvert handles the `convert` command.
func runConvert(inputPath, outputPath, texture string) error {
	cfg := config.Load()
	setupFileLogging(cfg)

	conv := convert.New(cfg.ResolveTexture(texture))

	report, err := conv.ConvertFile(inputPath, outputPath)
	if err != nil {
		return err
	}

	logReport(report)
	return nil
}

// runBatch handles the `batch` command.
func runBatch(inputDir, outputDir, texture string, workers int) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	setupFileLogging(cfg)

	if workers <= 0 {
		workers = cfg.WorkerCount
	}

	outAbs, err := filepath.Abs(outputDir)
	if err != nil {
		return fmt.Errorf("resolve output directory: %w", err)
	}
	if err := os.MkdirAll(outAbs, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	w := filewalker.NewWalker()
	entries, err := w.Walk(inputDir)
	if err != nil {
		return fmt.Errorf("walk input directory: %w", err)
	}

	log.Info().Int("files", len(entries)).Int("workers", workers).Msg("Starting batch conversion")

	conv := convert.New(cfg.ResolveTexture(texture))

	pool := worker.NewPool[filewalker.FileEntry, *convert.Report](workers,
		func(ctx context.Context, entry filewalker.FileEntry) (*convert.Report, error) {
			return conv.ConvertFile(entry.Path, entry.OutputPath(outAbs))
		},
	)

	results := pool.Execute(ctx, entries)

	converted := 0
	var totalBrushes, totalFaces, totalReplacements int
	for _, res := range results {
		if res.Err != nil || res.Output == nil {
			continue
		}
		converted++
		totalBrushes += res.Output.Stats.BrushesProcessed
		totalFaces += res.Output.Stats.FacesProcessed
		totalReplacements += res.Output.Stats.MaterialReplacements
		logReport(res.Output)
	}

	log.Info().
		Int("files", len(entries)).
		Int("converted", converted).
		Int("failed", len(entries)-converted).
		Int("brushes", totalBrushes).
		Int("faces", totalFaces).
		Int("material_replacements", totalReplacements).
		Str("output", outAbs).
		Msg("Batch conversion complete")

	if converted < len(entries) {
		return fmt.Errorf("converted %d of %d files", converted, len(entries))
	}
	return nil
}

// runWatch handles the `watch` command.
func runWatch(inputPath, outputPath, texture string, debounce time.Duration) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	setupFileLogging(cfg)

	conv := convert.New(cfg.ResolveTexture(texture))

	log.Info().Str("input", inputPath).Str("output", outputPath).Msg("Watching for changes")

	return watch.New(conv, debounce).Run(ctx, inputPath, outputPath)
}

// logPathLen caps path fields in log output; deep map trees produce paths
// that drown the statistics otherwise.
const logPathLen = 120

// logReport emits the per-file conversion statistics.
func logReport(r *convert.Report) {
	log.Info().
		Str("input", textutil.Truncate(r.InputPath, logPathLen)).
		Str("output", textutil.Truncate(r.OutputPath, logPathLen)).
		Int("brushes_found", r.Stats.BrushesFound).
		Int("brushes_processed", r.Stats.BrushesProcessed).
		Int("faces_processed", r.Stats.FacesProcessed).
		Int("material_replacements", r.Stats.MaterialReplacements).
		Str("default_texture", r.DefaultTexture).
		Int("output_size", r.OutputSize).
		Msg("Conversion complete")
}

// setupFileLogging routes logs through a rotating file in addition to the
// console when configured.
func setupFileLogging(cfg *config.Config) {
	if cfg.LogFile == "" {
		return
	}
	log.Logger = log.Output(zerolog.MultiLevelWriter(
		zerolog.ConsoleWriter{Out: os.Stderr},
		&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
		},
	))
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}
