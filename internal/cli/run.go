package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/gsdmm/internal/corpus"
)

// runResult is the labeling output for one document.
type runResult struct {
	Text          string    `json:"text"`
	Cluster       int       `json:"cluster"`
	Probability   float64   `json:"probability"`
	Probabilities []float64 `json:"probabilities,omitempty"`
}

func (c *CLI) newRunCommand() *cobra.Command {
	var modelPath string
	var proba bool
	var flags trainFlags

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Label documents with a fitted model",
		Args:  cobra.MaximumNArgs(1),
		Example: `  # Label documents from a file, one per line
  gsdmm run tweets.txt

  # Pipe documents on stdin
  cat tweets.txt | gsdmm run

  # Label a CSV column
  gsdmm run titles.csv --text-column title

  # Show the full probability vector
  gsdmm run tweets.txt --proba

  # Use a custom model file
  gsdmm run tweets.txt --model custom.json

  # Silent mode (no banner)
  gsdmm run tweets.txt -s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			flags.applyCorpus(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			var texts []string
			if len(args) == 0 {
				if isStdinTerminal() {
					return cmd.Help()
				}
				texts, err = readStdinDocs()
			} else {
				texts, err = corpus.ReadFile(args[0], cfg.Corpus.ReadOptions())
			}
			if err != nil {
				return err
			}
			if len(texts) == 0 {
				fmt.Println("No documents found.")
				return nil
			}

			start := time.Now()
			model, err := loadModel(modelPath)
			if err != nil {
				return err
			}
			slog.Debug("Model loaded", "duration", time.Since(start))

			start = time.Now()
			results := make([]runResult, len(texts))
			for i, text := range texts {
				label, prob, err := model.BestLabel(text)
				if err != nil {
					return err
				}
				results[i] = runResult{Text: text, Cluster: label, Probability: prob}
				if proba {
					probs, err := model.Probabilities(text)
					if err != nil {
						return err
					}
					results[i].Probabilities = probs
				}
			}
			slog.Debug("Labeling completed", "docs", len(results), "duration", time.Since(start))

			output, _ := json.MarshalIndent(results, "", "  ")
			fmt.Println(string(output))
			return nil
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "Path to model file (default: auto-detect)")
	cmd.Flags().BoolVar(&proba, "proba", false, "Show probabilities for all clusters")
	flags.registerCorpus(cmd)
	return cmd
}

func isStdinTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func readStdinDocs() ([]string, error) {
	slog.Debug("Reading documents from stdin")
	texts, err := corpus.ReadLines(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("stdin is empty")
	}
	return texts, nil
}
