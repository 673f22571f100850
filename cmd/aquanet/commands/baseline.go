// SPDX-License-Identifier: MIT

package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func newBaselineCommand(a *app) *cobra.Command {
	var epochs int
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Fit the feed-forward baseline on the configured single pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("epochs") {
				a.cfg.BaselineEpochs = epochs
			}
			p, err := a.newPipeline()
			if err != nil {
				return err
			}
			topo, err := p.BuildTopology()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			rep, err := p.RunBaseline(ctx, topo)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), "baseline", rep)

			return nil
		},
	}
	cmd.Flags().IntVar(&epochs, "epochs", 0, "Training epochs (default: config baseline_epochs)")

	return cmd
}
