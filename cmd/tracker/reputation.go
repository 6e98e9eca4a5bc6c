package main

import (
	"github.com/spf13/cobra"

	"github.com/feral-file/token-tracker/internal/store/schema"
)

// reputationView is the printed form of a ledger row
type reputationView struct {
	*schema.CreatorReputation
	ScamRatio   float64 `json:"scam_ratio"`
	RuggedRatio float64 `json:"rugged_ratio"`
	HasHistory  bool    `json:"has_history"`
}

var reputationCmd = &cobra.Command{
	Use:   "reputation <creator>",
	Short: "Show the reputation ledger of a creator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		rep, err := a.service.Reputation(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), reputationView{
			CreatorReputation: rep,
			ScamRatio:         rep.ScamRatio(),
			RuggedRatio:       rep.RuggedRatio(),
			HasHistory:        rep.HasHistory(),
		})
	},
}

func init() {
	rootCmd.AddCommand(reputationCmd)
}
