package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/gsdmm/internal/corpus"
	"github.com/happyhackingspace/gsdmm/internal/htmlutil"
)

func (c *CLI) newDataCommand() *cobra.Command {
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Inspect corpus files",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
	dataCmd.AddCommand(c.newDataStatsCommand())
	return dataCmd
}

func (c *CLI) newDataStatsCommand() *cobra.Command {
	var inputs []string
	var top int
	var flags trainFlags

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show corpus statistics after tokenization",
		Example: `  gsdmm data stats --input tweets.txt
  gsdmm data stats -i titles.csv --text-column title --top 20
  cat tweets.txt | gsdmm data stats`,
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
			if len(inputs) == 0 && !isStdinTerminal() {
				texts, err = readStdinDocs()
			} else {
				texts, err = readInputs(inputs, cfg.Corpus.ReadOptions())
			}
			if err != nil {
				return err
			}

			corp := corpus.Build(texts, cfg.Tokenizer.Options())
			stats := corp.Stats()

			for _, title := range htmlTitles(inputs, cfg.Corpus.Format) {
				fmt.Printf("Title:      %s\n", title)
			}
			fmt.Printf("Documents:  %d (%d empty after tokenization)\n", stats.Documents, stats.EmptyDocs)
			fmt.Printf("Tokens:     %d (%.1f avg, %d max per document)\n", stats.Tokens, stats.AvgTokens, stats.MaxTokens)
			fmt.Printf("Vocabulary: %d distinct tokens\n", stats.Vocabulary)

			if top > 0 && stats.Vocabulary > 0 {
				fmt.Printf("\nTop tokens:\n")
				for _, tc := range corp.TopTokens(top) {
					fmt.Printf("%8d  %s\n", tc.Count, tc.Token)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&inputs, "input", "i", nil, "Corpus file (.txt, .csv, .jsonl, .html); repeatable")
	cmd.Flags().IntVar(&top, "top", 10, "Number of top tokens to show (0 disables)")
	flags.registerCorpus(cmd)
	return cmd
}

// htmlTitles returns the page titles of the HTML files among paths. Files
// that cannot be reopened or parsed were already reported by the read
// pass and are skipped here.
func htmlTitles(paths []string, override string) []string {
	var titles []string
	for _, path := range paths {
		if corpus.Format(path, override) != "html" {
			continue
		}
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		doc, err := htmlutil.LoadHTML(f)
		f.Close()
		if err != nil {
			continue
		}
		if title := htmlutil.Title(doc); title != "" {
			titles = append(titles, title)
		}
	}
	return titles
}
