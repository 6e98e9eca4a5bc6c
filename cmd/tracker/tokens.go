package main

import (
	"github.com/spf13/cobra"

	"github.com/feral-file/token-tracker/internal/store/schema"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "List tracked token records",
	Long:  "Lists token records by mint, by name and/or creator, or all of them when no filter is given",
	Args:  cobra.NoArgs,
	RunE:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().String("mint", "", "Only records of this mint")
	tokensCmd.Flags().String("name", "", "Records with this name")
	tokensCmd.Flags().String("creator", "", "Records launched by this creator")
	tokensCmd.MarkFlagsMutuallyExclusive("mint", "name")
	tokensCmd.MarkFlagsMutuallyExclusive("mint", "creator")
}

func runTokens(cmd *cobra.Command, args []string) error {
	mint, _ := cmd.Flags().GetString("mint")
	name, _ := cmd.Flags().GetString("name")
	creator, _ := cmd.Flags().GetString("creator")

	ctx := cmd.Context()
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	var tokens []schema.Token
	switch {
	case mint != "":
		tokens, err = a.store.FindByMint(ctx, mint)
	case name != "" || creator != "":
		tokens, err = a.store.FindByNameOrCreator(ctx, name, creator)
	default:
		tokens, err = a.store.ListAll(ctx)
	}
	if err != nil {
		return err
	}
	if tokens == nil {
		tokens = []schema.Token{}
	}
	return printJSON(cmd.OutOrStdout(), tokens)
}
