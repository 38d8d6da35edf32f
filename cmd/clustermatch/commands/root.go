package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/TrevorS/clustermatch/internal/config"
)

// rootOptions holds global flags and the state built from them before a
// subcommand runs.
type rootOptions struct {
	configFile string
	output     string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "clustermatch",
		Short: "Map clusters onto class labels",
		Long: `clustermatch - score a clustering against known labels.

Each cluster is paired with exactly one label so that the number of items
whose label equals their cluster's label is as large as possible. Every
item then gets a predicted label and per-label confidences.

Examples:
  # Items already carry cluster names
  clustermatch match -f items.yaml

  # Cluster first, then match
  clustermatch kmeans -f items.yaml -k 3 --match
  clustermatch hierarchy -f items.yaml -k 3 --match -o json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file (YAML or JSON)")
	flags.StringVarP(&opts.output, "output", "o", "", "output format: yaml or json")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose (debug) logging")

	cmd.AddCommand(
		newMatchCmd(opts),
		newKMeansCmd(opts),
		newHierarchyCmd(opts),
	)
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return err
	}
	if o.output != "" {
		cfg.Output = o.output
	}
	if o.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg

	logger, err := buildLogger(cfg.LogLevel, o.verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	o.logger = logger.With(zap.String("command", cmd.Name()))
	return nil
}

func buildLogger(level string, development bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	if development {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build()
}
