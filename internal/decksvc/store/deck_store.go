package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DeckStore struct {
	db *pgxpool.Pool
}

func NewDeckStore(db *pgxpool.Pool) *DeckStore {
	return &DeckStore{db: db}
}

const deckColumns = `id::text, user_id, name, description, is_limited, cards, created_at, updated_at`

func scanDeck(row pgx.Row) (*models.Deck, error) {
	d := &models.Deck{}
	var cards []byte
	err := row.Scan(&d.ID, &d.UserID, &d.Name, &d.Description, &d.IsLimited, &cards, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cards, &d.Cards); err != nil {
		return nil, fmt.Errorf("corrupt cards for deck %s: %w", d.ID, err)
	}
	if d.Cards == nil {
		d.Cards = []models.DeckCardEntry{}
	}
	return d, nil
}

func marshalCards(cards []models.DeckCardEntry) ([]byte, error) {
	if cards == nil {
		cards = []models.DeckCardEntry{}
	}
	return json.Marshal(cards)
}

// ListByUser returns a user's decks, most recently updated first.
func (s *DeckStore) ListByUser(ctx context.Context, userID int64) ([]*models.Deck, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+deckColumns+`
		FROM decks
		WHERE user_id = $1
		ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer rows.Close()

	decks := []*models.Deck{}
	for rows.Next() {
		d, err := scanDeck(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deck: %w", err)
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

func (s *DeckStore) GetByID(ctx context.Context, id string) (*models.Deck, error) {
	deckID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	d, err := scanDeck(s.db.QueryRow(ctx, `SELECT `+deckColumns+` FROM decks WHERE id = $1`, deckID))
	if err != nil {
		return nil, mapErr(err)
	}
	return d, nil
}

// Create assigns a fresh id and timestamps to d.
func (s *DeckStore) Create(ctx context.Context, d *models.Deck) error {
	cards, err := marshalCards(d.Cards)
	if err != nil {
		return err
	}

	id := uuid.New()
	query := `
		INSERT INTO decks (id, user_id, name, description, is_limited, cards)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err = s.db.QueryRow(ctx, query, id, d.UserID, d.Name, d.Description, d.IsLimited, cards).
		Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("could not create deck: %w", mapErr(err))
	}
	d.ID = id.String()
	return nil
}

// Update writes d only if the stored row still has d.UpdatedAt, so concurrent
// edits of one deck cannot silently overwrite each other.
func (s *DeckStore) Update(ctx context.Context, d *models.Deck) error {
	deckID, err := uuid.Parse(d.ID)
	if err != nil {
		return ErrNotFound
	}
	cards, err := marshalCards(d.Cards)
	if err != nil {
		return err
	}

	query := `
		UPDATE decks
		SET name = $2, description = $3, is_limited = $4, cards = $5, updated_at = now()
		WHERE id = $1 AND updated_at = $6
		RETURNING updated_at`

	err = s.db.QueryRow(ctx, query, deckID, d.Name, d.Description, d.IsLimited, cards, d.UpdatedAt).Scan(&d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM decks WHERE id = $1)`, deckID).Scan(&exists); err != nil {
			return fmt.Errorf("could not update deck: %w", err)
		}
		if exists {
			return ErrStale
		}
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("could not update deck: %w", mapErr(err))
	}
	return nil
}

func (s *DeckStore) Delete(ctx context.Context, id string) error {
	deckID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}

	tag, err := s.db.Exec(ctx, `DELETE FROM decks WHERE id = $1`, deckID)
	if err != nil {
		return fmt.Errorf("could not delete deck: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
