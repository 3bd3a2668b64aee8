package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/gsdmm"
)

func (c *CLI) newTopicsCommand() *cobra.Command {
	var modelPath string
	var words int
	var showEmpty bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "topics",
		Short: "Show the top words of each cluster in a fitted model",
		Example: `  gsdmm topics
  gsdmm topics --model custom.json --words 10
  gsdmm topics --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			n := cfg.Report.TopWords
			if cmd.Flags().Changed("words") {
				n = words
			}

			model, err := loadModel(modelPath)
			if err != nil {
				return err
			}

			if asJSON {
				output, _ := json.MarshalIndent(model.Summaries(n), "", "  ")
				fmt.Println(string(output))
				return nil
			}

			fmt.Printf("%d documents, %d word vocabulary, %d of %d clusters populated\n\n",
				model.NumDocs(), model.VocabSize(), model.Populated(), model.K())
			printTopics(model, n, cfg.Report.Separator, showEmpty)
			return nil
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "Path to model file (default: auto-detect)")
	cmd.Flags().IntVarP(&words, "words", "w", 0, "Number of top words per cluster")
	cmd.Flags().BoolVar(&showEmpty, "all", false, "Include empty clusters")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

// printTopics writes a per-cluster table ordered by document count.
func printTopics(model *gsdmm.Model, n int, sep string, showEmpty bool) {
	fmt.Printf("%8s  %6s  %6s  top words\n", "cluster", "docs", "words")
	for _, s := range model.Summaries(n) {
		if s.DocCount == 0 && !showEmpty {
			continue
		}
		words := make([]string, len(s.TopWords))
		for i, w := range s.TopWords {
			words[i] = w.Word
		}
		fmt.Printf("%8d  %6d  %6d  %s\n", s.Cluster, s.DocCount, s.WordCount, strings.Join(words, sep))
	}
}
