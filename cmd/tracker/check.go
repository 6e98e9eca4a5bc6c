package main

import (
	"github.com/spf13/cobra"

	"github.com/feral-file/token-tracker/internal/tracker"
)

var checkCmd = &cobra.Command{
	Use:   "check <mint>",
	Short: "Inspect the mint and freeze authorities of a token",
	Long:  "Reads the mint account from the Solana RPC node. With --flag, an insecure token is also classified as scam.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flagInsecure, _ := cmd.Flags().GetBool("flag")

		ctx := cmd.Context()
		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		if a.checker == nil {
			return tracker.ErrCheckerUnavailable
		}

		if flagInsecure {
			result, err := a.service.Assess(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		}

		status, err := a.checker.GetTokenAuthorities(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), status)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().Bool("flag", false, "Classify the token as scam when it is not secure")
}
