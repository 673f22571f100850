// SPDX-License-Identifier: MIT

package commands

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/aquanet/dataset"
)

// DefaultDatasetFile is where generate writes when --out is not given.
const DefaultDatasetFile = "sogamoso_gcn_dataset.csv"

func newGenerateCommand(a *app) *cobra.Command {
	var (
		samples int
		out     string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Draw synthetic samples over the network and write them as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("samples") {
				a.cfg.Samples = samples
			}
			p, err := a.newPipeline()
			if err != nil {
				return err
			}
			topo, err := p.BuildTopology()
			if err != nil {
				return err
			}
			ds, err := p.Synthesize(topo)
			if err != nil {
				return err
			}
			if err = dataset.WriteFile(out, ds); err != nil {
				return err
			}
			good.Fprintf(cmd.OutOrStdout(), "wrote %d samples over %d nodes to %s\n", ds.Len(), topo.Len(), out)

			return nil
		},
	}
	cmd.Flags().IntVarP(&samples, "samples", "n", 0, "Number of samples (default: config samples)")
	cmd.Flags().StringVarP(&out, "out", "o", DefaultDatasetFile, "Output CSV path")

	return cmd
}
