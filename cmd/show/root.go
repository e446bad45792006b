package main

import (
	"context"
	"fmt"
	"io"

	"cribbage-show/internal/game/common"
	"cribbage-show/internal/game/cribbage"
	"cribbage-show/internal/tracing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var (
		noColor       bool
		trace         bool
		shutdownTrace func(context.Context) error
	)
	root := &cobra.Command{
		Use:   "show",
		Short: "Deal and score cribbage show hands",
		Long: `show scores cribbage hands for fifteens, pairs and runs.

Cards are written rank then suit: A, 2-10, J, Q, K followed by S, H, D or C.

Examples:
  show score 5H 5S 10H
  show deal --players 2 --strategy best`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true
			}
			if !trace {
				return nil
			}
			shutdown, err := tracing.InitTracer(cmd.Context(), tracing.Config{
				ServiceName:  tracing.DefaultServiceName,
				TracesExport: "stdout",
				Writer:       cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			shutdownTrace = shutdown
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if shutdownTrace == nil {
				return nil
			}
			return shutdownTrace(context.Background())
		},
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVar(&trace, "trace", false, "Write scoring spans to stderr")

	root.AddCommand(newScoreCmd(), newDealCmd())
	return root
}

var (
	handColor  = color.New(color.FgCyan, color.Bold)
	pointColor = color.New(color.FgGreen)
	totalColor = color.New(color.FgYellow, color.Bold)
)

func printHand(w io.Writer, label string, hand []common.Card) {
	fmt.Fprintf(w, "%s %s\n", label, handColor.Sprint(common.FormatHand(hand)))
}

func printBreakdown(w io.Writer, sb cribbage.ScoreBreakdown) {
	for _, l := range sb.Lines {
		fmt.Fprintf(w, "Score from %ss: %s\n", l.Name, pointColor.Sprint(l.Points))
	}
	fmt.Fprintf(w, "Total: %s\n", totalColor.Sprint(sb.Total))
}
