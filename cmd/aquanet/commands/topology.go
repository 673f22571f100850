// SPDX-License-Identifier: MIT

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/aquanet/network"
)

func newTopologyCommand(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "topology",
		Short: "Print the network nodes, edges and reachability findings",
		Long: `The topology command builds the configured network (the Sogamoso
network unless data.topology points to a YAML file), prints its nodes in
index order, its edges and every Lint finding. With --out the network is
also written as a topology file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.newPipeline()
			if err != nil {
				return err
			}
			topo, err := p.BuildTopology()
			if err != nil {
				return err
			}
			printTopology(cmd, topo)
			if out == "" {
				return nil
			}

			return writeTopology(out, topo)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the topology as YAML to this path")

	return cmd
}

func printTopology(cmd *cobra.Command, topo *network.Topology) {
	w := cmd.OutOrStdout()
	heading.Fprintf(w, "nodes (%d)\n", topo.Len())
	for i, n := range topo.Nodes() {
		fmt.Fprintf(w, "  %2d %-16s %-8s flow [%g, %g]\n", i, n.ID, n.Category, n.Flow.Lo, n.Flow.Hi)
	}
	heading.Fprintf(w, "edges (%d)\n", topo.EdgeCount())
	for _, e := range topo.Edges() {
		fmt.Fprintf(w, "  %s\n", e)
	}
	issues := topo.Lint()
	if len(issues) == 0 {
		good.Fprintln(w, "no reachability issues")
		return
	}
	warn.Fprintf(w, "issues (%d)\n", len(issues))
	for _, is := range issues {
		warn.Fprintf(w, "  %s\n", is)
	}
}

func writeTopology(path string, topo *network.Topology) (err error) {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write topology: %w", err)
	}
	defer func() {
		if cerr := fh.Close(); err == nil {
			err = cerr
		}
	}()

	return network.WriteYAML(fh, topo)
}
