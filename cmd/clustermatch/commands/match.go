package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TrevorS/clustermatch"
	"github.com/TrevorS/clustermatch/internal/dataset"
)

func newMatchCmd(opts *rootOptions) *cobra.Command {
	var (
		file  string
		k     int
		fuzzy bool
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Map clusters to labels for clustered items",
		Long: `Map every cluster to the label it agrees with most, under the
constraint that no two clusters share a label, and write predictions.

Every item needs a label and a cluster name such as "cluster_2". With
--fuzzy every item also needs a membership list of length K.

Example dataset (items.yaml):

  items:
    - {id: a1, label: A, cluster: cluster_0}
    - {id: b1, label: B, cluster: cluster_1}

Examples:
  clustermatch match -f items.yaml
  clustermatch match -f items.yaml -k 3 --fuzzy -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := dataset.Load(file)
			if err != nil {
				return err
			}
			if k == 0 {
				if k, err = ds.InferK(); err != nil {
					return err
				}
			}

			res, err := clustermatch.Match(ds.Items, k, clustermatch.Config{
				Fuzzy:  fuzzy || opts.cfg.Match.Fuzzy,
				Logger: opts.logger,
			})
			if err != nil {
				return err
			}
			opts.logger.Info("matched", zap.Int("k", k), zap.Float64("accuracy", res.Accuracy))

			return writeOutput(cmd.OutOrStdout(), opts.cfg.Output, &matchReport{
				K:     k,
				Match: newMatchSummary(res),
				Items: ds.Items,
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "dataset file (YAML or JSON)")
	cmd.Flags().IntVarP(&k, "clusters", "k", 0, "number of clusters (0 infers it from the items)")
	cmd.Flags().BoolVar(&fuzzy, "fuzzy", false, "use item memberships as confidences")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
