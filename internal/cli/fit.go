package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/gsdmm"
	"github.com/happyhackingspace/gsdmm/internal/corpus"
)

func (c *CLI) newFitCommand() *cobra.Command {
	var inputs []string
	var flags trainFlags

	cmd := &cobra.Command{
		Use:   "fit <modelfile>",
		Short: "Cluster a corpus and save the fitted model",
		Args:  cobra.ExactArgs(1),
		Example: `  gsdmm fit model.json --input tweets.txt
  gsdmm fit model.json -i titles.csv --text-column title -k 20 --seed 42
  cat tweets.txt | gsdmm fit model.json
  gsdmm fit model.json -i corpus.jsonl --config gsdmm.yaml -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			modelPath := args[0]

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			flags.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			var texts []string
			if len(inputs) == 0 && !isStdinTerminal() {
				texts, err = readStdinDocs()
			} else {
				texts, err = readInputs(inputs, cfg.Corpus.ReadOptions())
			}
			if err != nil {
				return err
			}
			slog.Info("Fitting model", "docs", len(texts), "k", cfg.Sampler.K, "output", modelPath)

			start := time.Now()
			model, _, err := gsdmm.Train(texts, trainConfig(cfg))
			if err != nil {
				return err
			}
			slog.Debug("Fit completed", "duration", time.Since(start))

			if err := model.Save(modelPath); err != nil {
				return err
			}
			slog.Info("Model saved", "path", modelPath, "clusters", model.Populated())

			printTopics(model, cfg.Report.TopWords, cfg.Report.Separator, false)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&inputs, "input", "i", nil, "Corpus file (.txt, .csv, .jsonl, .html); repeatable")
	flags.register(cmd)
	return cmd
}

// readInputs loads and concatenates the documents of all input files.
func readInputs(paths []string, opts corpus.ReadOptions) ([]string, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no input files; use --input")
	}
	var texts []string
	for _, path := range paths {
		docs, err := corpus.ReadFile(path, opts)
		if err != nil {
			return nil, err
		}
		slog.Debug("Input loaded", "path", path, "docs", len(docs))
		texts = append(texts, docs...)
	}
	return texts, nil
}
