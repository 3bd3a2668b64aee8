package cli

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/gsdmm"
	"github.com/happyhackingspace/gsdmm/internal/corpus"
)

func (c *CLI) newEvaluateCommand() *cobra.Command {
	var inputs []string
	var labeled bool
	var labelColumn string
	var flags trainFlags

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Fit a model and report clustering quality",
		Example: `  gsdmm evaluate --input tweets.txt
  gsdmm evaluate -i titles.csv --labeled --label-column category
  gsdmm evaluate -i corpus.jsonl --labeled -k 20 --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			flags.apply(cmd, cfg)
			if cmd.Flags().Changed("label-column") {
				cfg.Corpus.LabelColumn = labelColumn
				labeled = true
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			var texts, labels []string
			if labeled {
				texts, labels, err = readLabeledInputs(inputs, cfg.Corpus.ReadOptions())
			} else if len(inputs) == 0 && !isStdinTerminal() {
				texts, err = readStdinDocs()
			} else {
				texts, err = readInputs(inputs, cfg.Corpus.ReadOptions())
			}
			if err != nil {
				return err
			}

			slog.Info("Evaluating", "docs", len(texts), "k", cfg.Sampler.K, "labeled", labeled)
			start := time.Now()
			result, err := gsdmm.Evaluate(texts, labels, trainConfig(cfg))
			if err != nil {
				return err
			}
			slog.Debug("Evaluation completed", "duration", time.Since(start))

			fmt.Printf("Documents: %d\n", result.Docs)
			fmt.Printf("Populated clusters: %d\n", result.Clusters)
			fmt.Printf("Cluster size entropy: %.3f\n", result.SizeEntropy)
			if result.Classes > 0 {
				fmt.Printf("Reference classes: %d\n", result.Classes)
				fmt.Printf("Purity: %.1f%%\n", result.Purity*100)
				fmt.Printf("NMI: %.3f\n", result.NMI)
				printContingency(result)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&inputs, "input", "i", nil, "Corpus file (.txt, .csv, .jsonl, .html); repeatable")
	cmd.Flags().BoolVar(&labeled, "labeled", false, "Input carries reference labels")
	cmd.Flags().StringVar(&labelColumn, "label-column", "", "CSV column or JSON field holding the reference label (implies --labeled)")
	flags.register(cmd)
	return cmd
}

func readLabeledInputs(paths []string, opts corpus.ReadOptions) ([]string, []string, error) {
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("no input files; use --input")
	}
	var texts, labels []string
	for _, path := range paths {
		t, l, err := corpus.ReadLabeled(path, opts)
		if err != nil {
			return nil, nil, err
		}
		slog.Debug("Labeled input loaded", "path", path, "docs", len(t))
		texts = append(texts, t...)
		labels = append(labels, l...)
	}
	return texts, labels, nil
}

// printContingency writes the cluster by class table, largest clusters
// first.
func printContingency(result *gsdmm.EvalResult) {
	if len(result.Contingency) == 0 {
		return
	}

	clusters := make([]int, 0, len(result.Contingency))
	for z := range result.Contingency {
		clusters = append(clusters, z)
	}
	sort.Slice(clusters, func(i, j int) bool {
		ti, tj := result.Sizes[clusters[i]], result.Sizes[clusters[j]]
		if ti != tj {
			return ti > tj
		}
		return clusters[i] < clusters[j]
	})

	classTotals := make(map[string]int)
	for _, counts := range result.Contingency {
		for label, n := range counts {
			classTotals[label] += n
		}
	}
	classes := make([]string, 0, len(classTotals))
	for label := range classTotals {
		classes = append(classes, label)
	}
	sort.Slice(classes, func(i, j int) bool {
		ti, tj := classTotals[classes[i]], classTotals[classes[j]]
		if ti != tj {
			return ti > tj
		}
		return classes[i] < classes[j]
	})

	fmt.Printf("\nContingency (rows=clusters, cols=classes):\n")
	fmt.Printf("%8s", "")
	for _, label := range classes {
		fmt.Printf(" %8s", label)
	}
	fmt.Printf("  total  purity%%\n")

	for _, z := range clusters {
		fmt.Printf("%8d", z)
		total := 0
		best := 0
		for _, label := range classes {
			count := result.Contingency[z][label]
			total += count
			if count > best {
				best = count
			}
			if count == 0 {
				fmt.Printf(" %8s", ".")
			} else {
				fmt.Printf(" %8d", count)
			}
		}
		purity := 0.0
		if total > 0 {
			purity = float64(best) / float64(total) * 100
		}
		fmt.Printf("  %5d  %6.1f\n", total, purity)
	}
}
