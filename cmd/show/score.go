package main

import (
	"cribbage-show/internal/game/common"
	"cribbage-show/internal/game/cribbage"

	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score CARD...",
		Short: "Score the given cards as a show hand",
		Args:  cobra.MaximumNArgs(cribbage.MaxHandSize),
		RunE: func(cmd *cobra.Command, args []string) error {
			hand, err := common.ParseHand(args)
			if err != nil {
				return err
			}
			sb, err := cribbage.ScoreShowParallel(cmd.Context(), cribbage.RulesForShow(), hand)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printHand(w, "Hand:", hand)
			printBreakdown(w, sb)
			return nil
		},
	}
}
