// SPDX-License-Identifier: MIT

package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func newTrainCommand(a *app) *cobra.Command {
	var (
		datasetPath string
		epochs      int
		samples     int
		scope       string
		target      string
	)
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the graph model and report train and test loss",
		Long: `The train command reads --dataset (or generates config samples when no
dataset is given), splits it in order into train and test parts, scales the
node flows and fits the message-passing model. Interrupting the command stops
training after the current epoch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("dataset") {
				a.cfg.Data.Dataset = datasetPath
			}
			if flags.Changed("epochs") {
				a.cfg.Epochs = epochs
			}
			if flags.Changed("samples") {
				a.cfg.Samples = samples
			}
			if flags.Changed("scope") {
				a.cfg.Normalize.Scope = scope
			}
			if flags.Changed("target") {
				a.cfg.Target = target
			}
			p, err := a.newPipeline()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			res, err := p.Run(ctx)
			if res != nil {
				printReport(cmd.OutOrStdout(), "gcn", res.Report)
			}

			return err
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&datasetPath, "dataset", "", "CSV dataset to train on (default: generate samples)")
	flags.IntVar(&epochs, "epochs", 0, "Training epochs (default: config epochs)")
	flags.IntVarP(&samples, "samples", "n", 0, "Samples to generate when no dataset is given")
	flags.StringVar(&scope, "scope", "", "Normalization reference: train or full")
	flags.StringVar(&target, "target", "", "Prediction target: total_distribution, sink_flow or total_inflow")

	return cmd
}
