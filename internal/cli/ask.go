package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"mindverse/internal/adapter/cache"
	"mindverse/internal/adapter/chunker"
	"mindverse/internal/adapter/docstore"
	"mindverse/internal/adapter/extractor"
	"mindverse/internal/usecase"
)

var (
	askFile     string
	askQuestion string
	askTopK     int
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Answer a question from a single document",
	Long: `Ingest one document and answer a question from its content in a single
shot, without starting the server.

Examples:
  mindverse ask -f guide.pdf -q "What are the main findings?"
  mindverse ask -f notes.md -q "summarize the plan" -k 5`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askFile, "file", "f", "", "document to ingest (required)")
	askCmd.Flags().StringVarP(&askQuestion, "question", "q", "", "question to answer (required)")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of chunks to retrieve (default from config)")
	askCmd.MarkFlagRequired("file")
	askCmd.MarkFlagRequired("question")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	if !extractor.Supported(askFile) {
		return fmt.Errorf("unsupported file type: %s", askFile)
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	generator, err := newLLM(cfg)
	if err != nil {
		return fmt.Errorf("failed to create llm: %w", err)
	}

	text, err := extractor.New().Extract(askFile)
	if err != nil {
		return fmt.Errorf("failed to extract text: %w", err)
	}

	store := docstore.New()
	answerCache := cache.NewAnswerCache(cfg.Retrieve.CacheSize, time.Duration(cfg.Retrieve.CacheTTLSeconds)*time.Second)
	ingestUC := usecase.NewIngestUseCase(chunker.NewWordChunker(cfg.Chunking.MaxWords), embedder, store, answerCache)
	queryUC := usecase.NewQueryUseCase(store, embedder, generator, answerCache, cfg.Retrieve.TopK)

	docID := filepath.Base(askFile)
	doc, err := ingestUC.Ingest(cmd.Context(), docID, text, askFile)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}
	fmt.Printf("Ingested %s (%d chunks)\n\n", docID, len(doc.Chunks))

	answer, err := queryUC.Answer(cmd.Context(), docID, askQuestion, askTopK)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	fmt.Println(answer)
	return nil
}
