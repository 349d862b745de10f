package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"mindverse/internal/adapter/cache"
	"mindverse/internal/adapter/chunker"
	"mindverse/internal/adapter/docstore"
	"mindverse/internal/adapter/extractor"
	"mindverse/internal/adapter/fs"
	"mindverse/internal/usecase"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Batch-ingest documents from a directory",
	Long: `Walk a directory for supported documents (PDF, TXT, MD), extract their
text, and run each through the full ingestion pipeline. Useful as a dry
run of chunking and embedding before serving.

Examples:
  mindverse ingest .
  mindverse ingest /path/to/docs`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	cfg := GetConfig()

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	store := docstore.New()
	answerCache := cache.NewAnswerCache(cfg.Retrieve.CacheSize, time.Duration(cfg.Retrieve.CacheTTLSeconds)*time.Second)
	ingestUC := usecase.NewIngestUseCase(chunker.NewWordChunker(cfg.Chunking.MaxWords), embedder, store, answerCache)
	extract := extractor.New()

	walker := fs.NewWalker(cfg.Ingest.Includes, cfg.Ingest.Excludes)

	fmt.Printf("Scanning %s...\n", path)
	files, err := walker.Walk(path)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	if len(files) == 0 {
		fmt.Println("No supported documents found.")
		return nil
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Ingesting[reset]"),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	var ingested, chunksTotal int
	var warnings []string

	for _, f := range files {
		bar.Add(1)

		text, err := extract.Extract(f.Path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", f.Path, err))
			continue
		}

		rel, rerr := filepath.Rel(path, f.Path)
		if rerr != nil {
			rel = filepath.Base(f.Path)
		}

		doc, err := ingestUC.Ingest(cmd.Context(), rel, text, f.Path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", f.Path, err))
			continue
		}

		ingested++
		chunksTotal += len(doc.Chunks)
	}

	fmt.Printf("\nIngestion complete:\n")
	fmt.Printf("  Documents ingested: %d\n", ingested)
	fmt.Printf("  Chunks created:     %d\n", chunksTotal)
	fmt.Printf("  Embedding model:    %s\n", embedder.ModelName())

	if len(warnings) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, w := range warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	return nil
}
