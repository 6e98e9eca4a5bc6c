package main

import (
	"github.com/spf13/cobra"

	"github.com/feral-file/token-tracker/internal/domain"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <mint>",
	Short: "Apply a scam/rug verdict to every record of a mint",
	Long:  "Flags the token records of a mint as scam and/or rugged. At least one of --scam or --rugged is required. Flags are never cleared and creator counters only move on a new flag.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scam, _ := cmd.Flags().GetBool("scam")
		rugged, _ := cmd.Flags().GetBool("rugged")

		ctx := cmd.Context()
		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.service.Report(ctx, args[0], domain.Verdict{Scam: scam, Rugged: rugged})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().Bool("scam", false, "Flag the token as scam")
	classifyCmd.Flags().Bool("rugged", false, "Flag the token as rugged")
}
