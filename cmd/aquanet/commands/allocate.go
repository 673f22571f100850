// SPDX-License-Identifier: MIT

package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/aquanet/equity"
)

func newAllocateCommand(a *app) *cobra.Command {
	var (
		scenario string
		epochs   int
		hours    []int
		day      bool
	)
	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Split the available supply among the distribution sectors and score its equity",
		Long: `The allocate command trains the sector allocator on the mean demands,
then for each requested hour draws a demand profile, applies the scenario
to the capture sources and compares the proportional split with the
learned one. A single hour prints the per-sector table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("scenario") {
				a.cfg.Equity.Scenario = scenario
			}
			if cmd.Flags().Changed("epochs") {
				a.cfg.Equity.Epochs = epochs
			}
			if day {
				hours = make([]int, 24)
				for h := range hours {
					hours[h] = h
				}
			}
			p, err := a.newPipeline()
			if err != nil {
				return err
			}
			topo, err := p.BuildTopology()
			if err != nil {
				return err
			}
			alloc, snaps, err := p.Allocate(topo, hours...)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(snaps) == 1 {
				printSectors(w, alloc.Sectors(), snaps[0])
			}
			printEquity(w, snaps)

			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&scenario, "scenario", "", "Source scenario: normal, drought, peak, failure (default: config equity.scenario)")
	flags.IntVar(&epochs, "epochs", 0, "Allocator training epochs (default: config equity.epochs)")
	flags.IntSliceVar(&hours, "hour", []int{7}, "Hours of day to allocate")
	flags.BoolVar(&day, "day", false, "Allocate every hour 0-23")

	return cmd
}

func printSectors(w io.Writer, sectors []equity.Sector, s equity.Snapshot) {
	heading.Fprintf(w, "hour %02d, %s, supply %.1f L/s\n", s.Hour, s.Supply.Scenario, s.Supply.Total)
	fmt.Fprintf(w, "  %-26s %8s %8s %8s %7s %7s\n", "sector", "demand", "prop", "learned", "prop%", "learn%")
	for i, sec := range sectors {
		fmt.Fprintf(w, "  %-26s %8.1f %8.1f %8.1f %7.1f %7.1f\n", sec.Name, s.Demands[i],
			s.Proportional[i], s.Optimized[i], s.Before.Satisfaction[i], s.After.Satisfaction[i])
	}
}

func printEquity(w io.Writer, snaps []equity.Snapshot) {
	heading.Fprintln(w, "equity index (gini)")
	for _, s := range snaps {
		line := fmt.Sprintf("  %02d:00 proportional %6.1f (%.3f)  learned %6.1f (%.3f)\n",
			s.Hour, s.Before.Index, s.Before.Gini, s.After.Index, s.After.Gini)
		if s.After.Index >= s.Before.Index {
			good.Fprint(w, line)
		} else {
			warn.Fprint(w, line)
		}
	}
}
