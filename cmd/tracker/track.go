package main

import (
	"github.com/spf13/cobra"

	"github.com/feral-file/token-tracker/internal/domain"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Record a newly launched token",
	Args:  cobra.NoArgs,
	RunE:  runTrack,
}

func init() {
	rootCmd.AddCommand(trackCmd)

	trackCmd.Flags().String("name", "", "Token display name")
	trackCmd.Flags().String("mint", "", "Token mint address")
	trackCmd.Flags().String("creator", "", "Creator wallet address")
	trackCmd.Flags().Int64("time", 0, "Observation time in epoch milliseconds (defaults to now)")

	_ = trackCmd.MarkFlagRequired("name")
	_ = trackCmd.MarkFlagRequired("mint")
	_ = trackCmd.MarkFlagRequired("creator")
}

func runTrack(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	mint, _ := cmd.Flags().GetString("mint")
	creator, _ := cmd.Flags().GetString("creator")
	observed, _ := cmd.Flags().GetInt64("time")

	ctx := cmd.Context()
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.service.Track(ctx, domain.Candidate{
		Time:    observed,
		Name:    name,
		Mint:    mint,
		Creator: creator,
	})
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), result)
}
