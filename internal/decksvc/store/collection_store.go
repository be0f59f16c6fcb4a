package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CollectionStore struct {
	db *pgxpool.Pool
}

func NewCollectionStore(db *pgxpool.Pool) *CollectionStore {
	return &CollectionStore{db: db}
}

// ListByUser returns the user's owned cards joined with their catalog names.
func (s *CollectionStore) ListByUser(ctx context.Context, userID int64) ([]*models.CollectionCardEntry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT cc.user_id, cc.card_id, cc.card_type, cc.quantity, cc.image_path, c.name, cc.updated_at
		FROM collection_cards cc
		JOIN cards c ON c.id = cc.card_id
		WHERE cc.user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection: %w", err)
	}
	defer rows.Close()

	entries := []*models.CollectionCardEntry{}
	for rows.Next() {
		e := &models.CollectionCardEntry{}
		if err := rows.Scan(&e.UserID, &e.CardID, &e.CardType, &e.Quantity, &e.ImagePath, &e.Name, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan collection entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AddQuantity adds e.Quantity to the owned count in a single statement and
// stores the new total in e. ErrLimit means the total would exceed max.
func (s *CollectionStore) AddQuantity(ctx context.Context, e *models.CollectionCardEntry, max int) error {
	query := `
		INSERT INTO collection_cards (user_id, card_id, card_type, quantity, image_path)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, card_id) DO UPDATE SET
			quantity = collection_cards.quantity + EXCLUDED.quantity, image_path = EXCLUDED.image_path, updated_at = now()
		WHERE collection_cards.quantity + EXCLUDED.quantity <= $6
		RETURNING quantity, updated_at`

	err := s.db.QueryRow(ctx, query, e.UserID, e.CardID, e.CardType, e.Quantity, e.ImagePath, max).
		Scan(&e.Quantity, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrLimit
	}
	if err != nil {
		return fmt.Errorf("could not save collection entry: %w", mapErr(err))
	}
	return nil
}

// Upsert writes the entry's quantity as the new owned count.
func (s *CollectionStore) Upsert(ctx context.Context, e *models.CollectionCardEntry) error {
	query := `
		INSERT INTO collection_cards (user_id, card_id, card_type, quantity, image_path)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, card_id) DO UPDATE SET
			quantity = EXCLUDED.quantity, image_path = EXCLUDED.image_path, updated_at = now()
		RETURNING updated_at`

	err := s.db.QueryRow(ctx, query, e.UserID, e.CardID, e.CardType, e.Quantity, e.ImagePath).Scan(&e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("could not save collection entry: %w", mapErr(err))
	}
	return nil
}

func (s *CollectionStore) Delete(ctx context.Context, userID int64, cardID string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM collection_cards WHERE user_id = $1 AND card_id = $2`, userID, cardID)
	if err != nil {
		return fmt.Errorf("could not delete collection entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
