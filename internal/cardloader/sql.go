package cardloader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
)

const insertColumns = `id, card_type, name, character_name, universe, image_path, one_per_deck, threat_level, ` +
	`energy, combat, brute_force, intelligence, icons, power_type, value, to_use, stat_to_use, ` +
	`stat_type_to_use, type_1, type_2, value_to_use, bonus, card_effect`

var updateColumns = []string{
	"card_type", "name", "character_name", "universe", "image_path", "one_per_deck", "threat_level",
	"energy", "combat", "brute_force", "intelligence", "icons", "power_type", "value", "to_use",
	"stat_to_use", "stat_type_to_use", "type_1", "type_2", "value_to_use", "bonus", "card_effect",
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func textArray(items []string) string {
	if len(items) == 0 {
		return "'{}'::text[]"
	}
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = quote(it)
	}
	return "ARRAY[" + strings.Join(quoted, ", ") + "]::text[]"
}

func values(c *models.Card) string {
	parts := []string{
		quote(c.ID), quote(c.CardType), quote(c.Name), quote(c.CharacterName), quote(c.Universe),
		quote(c.ImagePath), strconv.FormatBool(c.OnePerDeck), strconv.Itoa(c.ThreatLevel),
		strconv.Itoa(c.Energy), strconv.Itoa(c.Combat), strconv.Itoa(c.BruteForce), strconv.Itoa(c.Intelligence),
		textArray(c.Icons), quote(c.PowerType), strconv.Itoa(c.Value), quote(c.ToUse), quote(c.StatToUse),
		quote(c.StatTypeToUse), quote(c.Type1), quote(c.Type2), quote(c.ValueToUse), quote(c.Bonus),
		quote(c.CardEffect),
	}
	return strings.Join(parts, ", ")
}

// WriteSQL writes one idempotent upsert statement per card, wrapped in a transaction.
func WriteSQL(w io.Writer, cards []*models.Card) error {
	bw := bufio.NewWriter(w)

	set := make([]string, len(updateColumns))
	for i, col := range updateColumns {
		set[i] = fmt.Sprintf("%s = EXCLUDED.%s", col, col)
	}
	onConflict := "ON CONFLICT (id) DO UPDATE SET " + strings.Join(set, ", ") + ", updated_at = now()"

	fmt.Fprintln(bw, "BEGIN;")
	for _, c := range cards {
		fmt.Fprintf(bw, "INSERT INTO cards (%s)\nVALUES (%s)\n%s;\n", insertColumns, values(c), onConflict)
	}
	fmt.Fprintln(bw, "COMMIT;")
	return bw.Flush()
}
