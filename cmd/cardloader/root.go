package main

import (
	"github.com/spf13/cobra"

	config "github.com/avvvet/deckbuilder-services/configs"
)

const SERVICE_NAME = "cardloader"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "cardloader",
	Short: "Load card data tables into the catalog",
	Long: `cardloader reads the Markdown card tables, one card type per file,
and upserts them into the cards table or writes the equivalent SQL.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadEnv(SERVICE_NAME)
	},
}

func init() {
	RootCmd.AddCommand(loadCmd)
}
