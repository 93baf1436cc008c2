package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/stellar/portfolio-backend/internal/assets"
)

type assetsCmd struct {
	resolver *assets.Resolver
}

func (c *assetsCmd) Command() *cobra.Command {
	assetsCmd := &cobra.Command{
		Use:   "assets",
		Short: "Inspect the bundled asset catalog",
	}

	infoCmd := &cobra.Command{
		Use:   "info [identifier]",
		Short: "Prints the catalog data of an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assetData, err := c.getResolver().GetAssetData(args[0])
			if err != nil {
				return fmt.Errorf("getting asset data: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), assetData)
		},
	}

	ethTokensCmd := &cobra.Command{
		Use:   "eth-tokens",
		Short: "Prints every ethereum token of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tokens, err := c.getResolver().GetAllEthTokenInfo()
			if err != nil {
				return fmt.Errorf("getting ethereum tokens: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), tokens)
		},
	}

	assetsCmd.AddCommand(infoCmd)
	assetsCmd.AddCommand(ethTokensCmd)
	return assetsCmd
}

func (c *assetsCmd) getResolver() *assets.Resolver {
	if c.resolver == nil {
		return assets.Default()
	}
	return c.resolver
}

func printJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
