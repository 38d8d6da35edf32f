package commands

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TrevorS/clustermatch"
	"github.com/TrevorS/clustermatch/internal/config"
	"github.com/TrevorS/clustermatch/internal/dataset"
)

func newKMeansCmd(opts *rootOptions) *cobra.Command {
	var (
		file  string
		k     int
		seed  int64
		match bool
	)

	cmd := &cobra.Command{
		Use:   "kmeans",
		Short: "Cluster item features with k-means",
		Long: `Cluster the feature vectors of a dataset with k-means (k-means++
seeding) and write the cluster names onto the items.

With kmeans.fuzziness > 1 in the config file, soft memberships are
computed from centroid distances and used as confidences by --match.

Examples:
  clustermatch kmeans -f items.yaml -k 3
  clustermatch kmeans -f items.yaml -k 3 --seed 7 --match`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if k < 1 {
				return errors.New("number of clusters is required, use -k")
			}
			ds, err := dataset.Load(file)
			if err != nil {
				return err
			}
			data, ids, err := ds.Features()
			if err != nil {
				return err
			}
			metric, err := config.ParseMetric(opts.cfg.KMeans.Metric)
			if err != nil {
				return err
			}

			kcfg := clustermatch.KMeansConfig{
				K:             k,
				MaxIterations: opts.cfg.KMeans.MaxIterations,
				Metric:        metric,
				Seed:          opts.cfg.KMeans.Seed,
				Logger:        opts.logger,
			}
			if cmd.Flags().Changed("seed") {
				kcfg.Seed = seed
			}
			km, err := clustermatch.KMeans(data, ids, kcfg)
			if err != nil {
				return err
			}
			if err := km.Apply(ds.Items); err != nil {
				return err
			}

			fuzzy := opts.cfg.KMeans.Fuzziness > 1
			if fuzzy {
				u, err := km.Memberships(data, opts.cfg.KMeans.Fuzziness)
				if err != nil {
					return err
				}
				for i := range ds.Items {
					ds.Items[i].Membership = u[i]
				}
			}

			report := &clusterReport{
				K:          k,
				Sizes:      km.Sizes(),
				Iterations: km.Iterations,
				Converged:  km.Converged,
				Items:      ds.Items,
			}
			for _, c := range km.Centroids {
				report.Centroids = append(report.Centroids, c.Mean())
			}
			opts.logger.Info("k-means finished",
				zap.Int("iterations", km.Iterations), zap.Bool("converged", km.Converged))

			if match {
				res, err := clustermatch.Match(ds.Items, k, clustermatch.Config{Fuzzy: fuzzy, Logger: opts.logger})
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
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (overrides kmeans.seed)")
	cmd.Flags().BoolVar(&match, "match", false, "match clusters against item labels")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
