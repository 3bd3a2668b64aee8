package cli

import (
	"github.com/spf13/cobra"

	"github.com/happyhackingspace/gsdmm/internal/config"
)

// trainFlags holds the per-command overrides for the sampler and corpus
// sections of the config file.
type trainFlags struct {
	k          int
	alpha      float64
	beta       float64
	iters      int
	seed       int64
	format     string
	textColumn string
	selector   string
}

func (f *trainFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.k, "clusters", "k", 0, "Upper bound on the number of clusters")
	cmd.Flags().Float64Var(&f.alpha, "alpha", 0, "Dirichlet prior on cluster choice")
	cmd.Flags().Float64Var(&f.beta, "beta", 0, "Dirichlet prior on word choice")
	cmd.Flags().IntVar(&f.iters, "iters", 0, "Maximum number of sampling sweeps")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "Random seed for reproducible runs")
	f.registerCorpus(cmd)
}

func (f *trainFlags) registerCorpus(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", "", "Input format: auto, text, csv, jsonl, html")
	cmd.Flags().StringVar(&f.textColumn, "text-column", "", "CSV column or JSON field holding the text")
	cmd.Flags().StringVar(&f.selector, "selector", "", "CSS selector for extracting texts from HTML input")
}

// apply copies the flags the user actually set over the file values.
func (f *trainFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("clusters") {
		cfg.Sampler.K = f.k
	}
	if cmd.Flags().Changed("alpha") {
		cfg.Sampler.Alpha = f.alpha
	}
	if cmd.Flags().Changed("beta") {
		cfg.Sampler.Beta = f.beta
	}
	if cmd.Flags().Changed("iters") {
		cfg.Sampler.MaxIters = f.iters
	}
	if cmd.Flags().Changed("seed") {
		cfg.Sampler.Seed = f.seed
	}
	f.applyCorpus(cmd, cfg)
}

func (f *trainFlags) applyCorpus(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("format") {
		cfg.Corpus.Format = f.format
	}
	if cmd.Flags().Changed("text-column") {
		cfg.Corpus.TextColumn = f.textColumn
	}
	if cmd.Flags().Changed("selector") {
		cfg.Corpus.Selector = f.selector
	}
}
