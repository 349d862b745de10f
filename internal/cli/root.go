package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"mindverse/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "mindverse",
	Short: "MindVerse - document Q&A and therapy session analysis",
	Long: `MindVerse serves a mental-wellness API backed by retrieval-augmented
generation: upload documents, ask questions answered from their content,
chat with a supportive assistant, and analyze therapy-session transcripts.

Example usage:
  mindverse serve                          # Start the HTTP API
  mindverse ingest ./docs                  # Batch-ingest a directory
  mindverse ask -f guide.pdf -q "summary"  # One-shot document Q&A`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env file is fine; environment variables win regardless.
		_ = godotenv.Load()

		var err error
		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			wd, werr := os.Getwd()
			if werr != nil {
				return fmt.Errorf("failed to get working directory: %w", werr)
			}
			cfg, err = config.LoadFromDir(wd)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./mindverse.yaml)")
}

func GetConfig() *config.Config {
	return cfg
}
