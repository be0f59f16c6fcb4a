package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/avvvet/deckbuilder-services/internal/cardloader"
	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
)

var (
	loadType    string
	loadFile    string
	loadMapping string
	loadSQL     string
	loadDryRun  bool
)

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load one card table",
	Long: `Load parses the first Markdown table in --file as cards of --type.
With --sql the upserts are written to a file instead of the database.
With --dry-run nothing is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !models.IsCardType(loadType) {
			return fmt.Errorf("unknown card type %q (one of %s)", loadType, strings.Join(models.CardTypes, ", "))
		}

		if loadMapping == "" {
			loadMapping = os.Getenv("CARD_MAPPING_FILE")
		}
		mapping, err := cardloader.LoadMapping(loadMapping)
		if err != nil {
			return err
		}

		f, err := os.Open(loadFile)
		if err != nil {
			return fmt.Errorf("card table not found: %s", loadFile)
		}
		defer f.Close()

		table, err := cardloader.ParseTable(f)
		if err != nil {
			return fmt.Errorf("%s: %v", loadFile, err)
		}

		cards, unmapped, rowErrs := cardloader.BuildCards(loadType, table, mapping)
		cardloader.PrintSummary(cmd.OutOrStdout(), loadType, cards, unmapped, rowErrs)

		switch {
		case loadDryRun:
			return nil
		case loadSQL != "":
			out, err := os.Create(loadSQL)
			if err != nil {
				return fmt.Errorf("failed to create %s: %v", loadSQL, err)
			}
			defer out.Close()
			if err := cardloader.WriteSQL(out, cards); err != nil {
				return fmt.Errorf("failed to write %s: %v", loadSQL, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", colorize.GreenString("wrote"), loadSQL)
			return nil
		}

		url := os.Getenv("POSTGRES_URL")
		if url == "" {
			return fmt.Errorf("POSTGRES_URL is not set")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		n, err := cardloader.Load(ctx, url, cards)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d cards\n", colorize.GreenString("upserted"), n)
		return nil
	},
}

func init() {
	loadCmd.Flags().StringVarP(&loadType, "type", "t", "", "card type of the table")
	loadCmd.Flags().StringVarP(&loadFile, "file", "f", "", "Markdown file holding the table")
	loadCmd.Flags().StringVar(&loadMapping, "mapping", "", "TOML header mapping (default $CARD_MAPPING_FILE)")
	loadCmd.Flags().StringVar(&loadSQL, "sql", "", "write SQL to this file instead of the database")
	loadCmd.Flags().BoolVar(&loadDryRun, "dry-run", false, "parse and report only")
	_ = loadCmd.MarkFlagRequired("type")
	_ = loadCmd.MarkFlagRequired("file")
}
