// Package cli implements the gsdmm command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/gsdmm"
	"github.com/happyhackingspace/gsdmm/internal/banner"
	"github.com/happyhackingspace/gsdmm/internal/config"
)

// CLI encapsulates the command-line interface with its dependencies.
type CLI struct {
	version     string
	verbose     bool
	silent      bool
	configPath  string
	initialized bool
	rootCmd     *cobra.Command
}

// New creates a new CLI instance with the given version string.
func New(version string) *CLI {
	c := &CLI{version: version}
	c.setupCommands()
	return c
}

// setupCommands initializes all CLI commands and their configurations.
func (c *CLI) setupCommands() {
	c.rootCmd = &cobra.Command{
		Use:     "gsdmm",
		Short:   "Short text clustering with a Dirichlet multinomial mixture model",
		Version: c.version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.initApp()
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	c.rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose/debug output")
	c.rootCmd.PersistentFlags().BoolVarP(&c.silent, "silent", "s", false, "Suppress all logging and banner")
	c.rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to YAML config file (default: gsdmm.yaml if present)")

	defaultHelp := c.rootCmd.HelpFunc()
	c.rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		c.initApp()
		defaultHelp(cmd, args)
	})

	c.rootCmd.AddCommand(c.newFitCommand())
	c.rootCmd.AddCommand(c.newRunCommand())
	c.rootCmd.AddCommand(c.newTopicsCommand())
	c.rootCmd.AddCommand(c.newEvaluateCommand())
	c.rootCmd.AddCommand(c.newDataCommand())
	c.rootCmd.AddCommand(c.newConfigCommand())
	c.rootCmd.AddCommand(c.newUpCommand())
}

// Run executes the CLI and returns any error.
func (c *CLI) Run() error {
	return c.rootCmd.Execute()
}

// initApp initializes logging and prints the banner.
func (c *CLI) initApp() {
	if c.initialized {
		return
	}
	c.initialized = true

	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	if c.silent {
		level = slog.Level(100)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
	if !c.silent {
		fmt.Fprint(os.Stderr, banner.Banner(c.version))
	}
}

// loadConfig resolves the run configuration from the --config flag or the
// default file.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.Discover(c.configPath)
}

// trainConfig maps a run configuration onto the facade's training config.
func trainConfig(cfg *config.Config) *gsdmm.TrainConfig {
	return &gsdmm.TrainConfig{
		K:              cfg.Sampler.K,
		Alpha:          cfg.Sampler.Alpha,
		Beta:           cfg.Sampler.Beta,
		MaxIters:       cfg.Sampler.MaxIters,
		Seed:           cfg.Sampler.Seed,
		KeepCase:       !cfg.Tokenizer.Lowercase,
		MinTokenLength: cfg.Tokenizer.MinTokenLength,
		StopWords:      cfg.Tokenizer.StopWords,
		ExtraStopWords: cfg.Tokenizer.ExtraStopWords,
		MaxNgram:       cfg.Tokenizer.MaxNgram,
	}
}

// loadModel loads an explicitly given model file, or falls back to the
// model.json search.
func loadModel(path string) (*gsdmm.Model, error) {
	if path != "" {
		slog.Debug("Loading model", "path", path)
		return gsdmm.Load(path)
	}
	return gsdmm.New()
}
