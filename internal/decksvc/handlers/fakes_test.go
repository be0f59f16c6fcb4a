package handlers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
	"github.com/avvvet/deckbuilder-services/internal/decksvc/store"
)

type memCards []*models.Card

func (m memCards) ListCards(ctx context.Context) ([]*models.Card, error) {
	return m, nil
}

type memDecks struct {
	mu    sync.Mutex
	seq   int
	decks map[string]models.Deck
}

func (m *memDecks) ListByUser(ctx context.Context, userID int64) ([]*models.Deck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Deck{}
	for _, d := range m.decks {
		if d.UserID == userID {
			c := d
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *memDecks) GetByID(ctx context.Context, id string) (*models.Deck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.decks[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	d.Cards = append([]models.DeckCardEntry{}, d.Cards...)
	return &d, nil
}

func (m *memDecks) Create(ctx context.Context, d *models.Deck) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	d.ID = fmt.Sprintf("deck-%d", m.seq)
	d.CreatedAt, d.UpdatedAt = time.Now(), time.Now()
	m.decks[d.ID] = *d
	return nil
}

func (m *memDecks) Update(ctx context.Context, d *models.Deck) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.decks[d.ID]; !ok {
		return store.ErrNotFound
	}
	c := *d
	c.Cards = append([]models.DeckCardEntry{}, d.Cards...)
	m.decks[d.ID] = c
	return nil
}

func (m *memDecks) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.decks[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.decks, id)
	return nil
}

type memCollection struct {
	mu      sync.Mutex
	entries map[string]models.CollectionCardEntry
}

func (m *memCollection) key(userID int64, cardID string) string {
	return fmt.Sprintf("%d/%s", userID, cardID)
}

func (m *memCollection) ListByUser(ctx context.Context, userID int64) ([]*models.CollectionCardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.CollectionCardEntry{}
	for _, e := range m.entries {
		if e.UserID == userID {
			c := e
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *memCollection) AddQuantity(ctx context.Context, e *models.CollectionCardEntry, max int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := m.key(e.UserID, e.CardID)
	total := m.entries[k].Quantity + e.Quantity
	if total > max {
		return store.ErrLimit
	}
	e.Quantity = total
	m.entries[k] = *e
	return nil
}

func (m *memCollection) Upsert(ctx context.Context, e *models.CollectionCardEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[m.key(e.UserID, e.CardID)] = *e
	return nil
}

func (m *memCollection) Delete(ctx context.Context, userID int64, cardID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := m.key(userID, cardID)
	if _, ok := m.entries[k]; !ok {
		return store.ErrNotFound
	}
	delete(m.entries, k)
	return nil
}

type memUsers struct {
	mu    sync.Mutex
	users []models.User
}

func (m *memUsers) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return nil, store.ErrConflict
		}
	}
	user.UserId = int64(len(m.users) + 1)
	m.users = append(m.users, user)
	return &user, nil
}

func (m *memUsers) GetByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.UserId == id {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

type nopPublisher struct{}

func (nopPublisher) PublishEvent(string, int64, any) {}
