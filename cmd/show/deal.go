package main

import (
	"fmt"

	"cribbage-show/internal/game/common"
	"cribbage-show/internal/game/cribbage"

	"github.com/spf13/cobra"
)

func newDealCmd() *cobra.Command {
	var (
		players  int
		strategy string
	)
	cmd := &cobra.Command{
		Use:   "deal",
		Short: "Deal a hand from a shuffled deck, discard, and score what is kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if players < 2 || players > 4 {
				return fmt.Errorf("--players must be between 2 and 4, got %d", players)
			}
			s, err := cribbage.ParseDiscardStrategy(strategy)
			if err != nil {
				return err
			}
			rules := cribbage.DefaultRules(players)

			deck := common.NewStandardDeck()
			common.Shuffle(deck)
			dealt, _, err := common.Deal(deck, rules.HandSize())
			if err != nil {
				return err
			}
			keep, discarded, err := cribbage.ChooseDiscard(dealt, rules.DiscardCount(), s)
			if err != nil {
				return err
			}
			sb, err := cribbage.ScoreShowParallel(cmd.Context(), cribbage.RulesForShow(), keep)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printHand(w, "Dealt:", dealt)
			printHand(w, "Discarded:", discarded)
			printHand(w, "Kept:", keep)
			printBreakdown(w, sb)
			return nil
		},
	}
	cmd.Flags().IntVarP(&players, "players", "p", 2, "Number of players (2-4), sets the deal size")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", string(cribbage.DiscardBest), "Discard strategy: random, low or best")
	return cmd
}
