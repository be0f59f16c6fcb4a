package store

import (
	"context"
	"fmt"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
)

type CardStore struct {
	db DBTX
}

func NewCardStore(db DBTX) *CardStore {
	return &CardStore{db: db}
}

const cardColumns = `id, card_type, name, character_name, universe, image_path, one_per_deck,
	threat_level, energy, combat, brute_force, intelligence, icons, power_type, value,
	to_use, stat_to_use, stat_type_to_use, type_1, type_2, value_to_use, bonus, card_effect`

// ListCards returns the whole catalog.
func (s *CardStore) ListCards(ctx context.Context) ([]*models.Card, error) {
	rows, err := s.db.Query(ctx, `SELECT `+cardColumns+` FROM cards ORDER BY card_type, name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	var cards []*models.Card
	for rows.Next() {
		c := &models.Card{}
		if err := rows.Scan(
			&c.ID, &c.CardType, &c.Name, &c.CharacterName, &c.Universe, &c.ImagePath, &c.OnePerDeck,
			&c.ThreatLevel, &c.Energy, &c.Combat, &c.BruteForce, &c.Intelligence, &c.Icons, &c.PowerType, &c.Value,
			&c.ToUse, &c.StatToUse, &c.StatTypeToUse, &c.Type1, &c.Type2, &c.ValueToUse, &c.Bonus, &c.CardEffect,
		); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, c)
	}

	return cards, rows.Err()
}

// UpsertCard inserts a card or refreshes every column of an existing one.
func (s *CardStore) UpsertCard(ctx context.Context, c *models.Card) error {
	icons := c.Icons
	if icons == nil {
		icons = []string{}
	}

	query := `
		INSERT INTO cards (` + cardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23)
		ON CONFLICT (id) DO UPDATE SET
			card_type = EXCLUDED.card_type, name = EXCLUDED.name,
			character_name = EXCLUDED.character_name, universe = EXCLUDED.universe,
			image_path = EXCLUDED.image_path, one_per_deck = EXCLUDED.one_per_deck,
			threat_level = EXCLUDED.threat_level, energy = EXCLUDED.energy,
			combat = EXCLUDED.combat, brute_force = EXCLUDED.brute_force,
			intelligence = EXCLUDED.intelligence, icons = EXCLUDED.icons,
			power_type = EXCLUDED.power_type, value = EXCLUDED.value,
			to_use = EXCLUDED.to_use, stat_to_use = EXCLUDED.stat_to_use,
			stat_type_to_use = EXCLUDED.stat_type_to_use, type_1 = EXCLUDED.type_1,
			type_2 = EXCLUDED.type_2, value_to_use = EXCLUDED.value_to_use,
			bonus = EXCLUDED.bonus, card_effect = EXCLUDED.card_effect,
			updated_at = now()`

	_, err := s.db.Exec(ctx, query,
		c.ID, c.CardType, c.Name, c.CharacterName, c.Universe, c.ImagePath, c.OnePerDeck,
		c.ThreatLevel, c.Energy, c.Combat, c.BruteForce, c.Intelligence, icons, c.PowerType, c.Value,
		c.ToUse, c.StatToUse, c.StatTypeToUse, c.Type1, c.Type2, c.ValueToUse, c.Bonus, c.CardEffect,
	)
	if err != nil {
		return fmt.Errorf("could not upsert card %s: %w", c.ID, err)
	}
	return nil
}
