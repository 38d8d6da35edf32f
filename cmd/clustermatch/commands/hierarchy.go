package commands

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TrevorS/clustermatch"
	"github.com/TrevorS/clustermatch/internal/config"
	"github.com/TrevorS/clustermatch/internal/dataset"
)

func newHierarchyCmd(opts *rootOptions) *cobra.Command {
	var (
		file      string
		k         int
		threshold float64
		match     bool
	)

	cmd := &cobra.Command{
		Use:   "hierarchy",
		Short: "Cluster item features with single linkage",
		Long: `Build a single-linkage cluster tree over the feature vectors of a
dataset and cut it into flat clusters, either into exactly K clusters
(-k) or at a merge distance (--threshold).

Examples:
  clustermatch hierarchy -f items.yaml -k 3
  clustermatch hierarchy -f items.yaml --threshold 2.5 --match`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if k < 1 && !cmd.Flags().Changed("threshold") {
				return errors.New("either -k or --threshold is required")
			}
			ds, err := dataset.Load(file)
			if err != nil {
				return err
			}
			data, ids, err := ds.Features()
			if err != nil {
				return err
			}
			metric, err := config.ParseMetric(opts.cfg.Hierarchy.Metric)
			if err != nil {
				return err
			}

			hc, err := clustermatch.SingleLinkage(data, ids, clustermatch.HierarchyConfig{
				Metric:  metric,
				Workers: opts.cfg.Hierarchy.Workers,
				Logger:  opts.logger,
			})
			if err != nil {
				return err
			}

			var flat *clustermatch.FlatClustering
			if k > 0 {
				flat, err = hc.Flatten(k)
			} else {
				flat, err = hc.FlattenDistance(threshold)
			}
			if err != nil {
				return err
			}
			if err := flat.Apply(ds.Items); err != nil {
				return err
			}
			opts.logger.Info("tree cut", zap.Int("clusters", flat.K()))

			report := &clusterReport{K: flat.K(), Sizes: flat.Sizes(), Items: ds.Items}
			if match {
				res, err := clustermatch.Match(ds.Items, flat.K(), clustermatch.Config{Logger: opts.logger})
				if err != nil {
					return err
				}
				report.Match = newMatchSummary(res)
			}
			return writeOutput(cmd.OutOrStdout(), opts.cfg.Output, report)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "dataset file (YAML or JSON)")
	cmd.Flags().IntVarP(&k, "clusters", "k", 0, "number of clusters")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "cut the tree at this merge distance")
	cmd.Flags().BoolVar(&match, "match", false, "match clusters against item labels")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
