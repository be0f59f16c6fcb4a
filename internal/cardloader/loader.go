package cardloader

import (
	"context"
	"errors"
	"fmt"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
	"github.com/avvvet/deckbuilder-services/internal/decksvc/store"
	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// Upserter writes one card.
type Upserter interface {
	UpsertCard(ctx context.Context, c *models.Card) error
}

// UpsertAll writes cards through u and stops at the first failure.
func UpsertAll(ctx context.Context, u Upserter, cards []*models.Card) (int, error) {
	for i, c := range cards {
		if err := u.UpsertCard(ctx, c); err != nil {
			return i, fmt.Errorf("card %s: %w", c.ID, err)
		}
	}
	return len(cards), nil
}

// Load upserts cards into the database at url inside a single transaction.
func Load(ctx context.Context, url string, cards []*models.Card) (int, error) {
	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer conn.Close(ctx)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			log.Warnf("rollback failed: %v", err)
		}
	}()

	n, err := UpsertAll(ctx, store.NewCardStore(tx), cards)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return n, nil
}
