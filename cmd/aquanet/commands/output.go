// SPDX-License-Identifier: MIT

package commands

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/fatih/color"

	"github.com/katalvlaran/aquanet/train"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	good    = color.New(color.FgGreen)
	warn    = color.New(color.FgYellow)
	label   = color.New(color.Faint).SprintFunc()
)

// printReport writes the summary of a training run.
func printReport(w io.Writer, title string, rep train.Report) {
	heading.Fprintf(w, "%s run %s\n", title, rep.RunID)
	fmt.Fprintf(w, "  %s %s\n", label("optimizer:"), rep.Optimizer)
	fmt.Fprintf(w, "  %s %d in %s\n", label("epochs:"), rep.Epochs, rep.Duration.Round(time.Millisecond))
	if len(rep.TrainLoss) > 0 {
		fmt.Fprintf(w, "  %s %.4f -> %.4f\n", label("train loss:"), rep.TrainLoss[0], rep.FinalTrainLoss)
	}
	if math.IsNaN(rep.TestLoss) {
		warn.Fprintf(w, "  test loss: n/a (no test samples)\n")
	} else {
		fmt.Fprintf(w, "  %s %.4f over %d samples\n", label("test loss:"), rep.TestLoss, rep.TestSamples)
	}
	good.Fprintf(w, "  sample %d: predicted %.2f, actual %.2f\n",
		rep.Example.SampleID, rep.Example.Predicted, rep.Example.Actual)
}
