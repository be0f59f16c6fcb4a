package cardloader

import (
	"fmt"
	"io"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
	colorize "github.com/fatih/color"
)

// PrintSummary reports what a table produced.
func PrintSummary(w io.Writer, cardType string, cards []*models.Card, unmapped []string, rowErrs []RowError) {
	fmt.Fprintf(w, "%s %s\n", colorize.CyanString("card type:"), colorize.HiWhiteString(cardType))
	fmt.Fprintf(w, "%s %s\n", colorize.CyanString("cards:"), colorize.HiWhiteString("%d", len(cards)))

	for _, h := range unmapped {
		fmt.Fprintf(w, "%s column %q ignored\n", colorize.YellowString("warning:"), h)
	}
	for _, e := range rowErrs {
		fmt.Fprintf(w, "%s %s\n", colorize.RedString("skipped:"), e.Error())
	}
}
