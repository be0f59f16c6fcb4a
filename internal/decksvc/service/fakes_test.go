package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
	"github.com/avvvet/deckbuilder-services/internal/decksvc/store"
)

func fixtureCards() []*models.Card {
	return []*models.Card{
		{ID: "char-robin", CardType: models.TypeCharacter, Name: "Robin Hood", Universe: "ERB", ImagePath: "characters/robin.webp", ThreatLevel: 18, Energy: 5, Combat: 6, BruteForce: 4, Intelligence: 5},
		{ID: "char-robin-alt", CardType: models.TypeCharacter, Name: "Robin Hood", Universe: "ERB", ImagePath: "characters/alternate/robin.webp", ThreatLevel: 18, Energy: 5, Combat: 6, BruteForce: 4, Intelligence: 5},
		{ID: "char-leonidas", CardType: models.TypeCharacter, Name: "Leonidas", ImagePath: "characters/leonidas.webp", ThreatLevel: 20, Energy: 3, Combat: 8, BruteForce: 7, Intelligence: 3},
		{ID: "loc-sherwood", CardType: models.TypeLocation, Name: "Sherwood Forest", ImagePath: "locations/sherwood.webp", ThreatLevel: 2},
		{ID: "special-merry-men", CardType: models.TypeSpecial, Name: "Merry Men", CharacterName: "Robin Hood", ImagePath: "specials/merry.webp", OnePerDeck: true, Icons: []string{"Combat"}},
		{ID: "power-5-energy", CardType: models.TypePower, Name: "5 - Energy", ImagePath: "power/5e.webp", Value: 5, PowerType: "Energy"},
		{ID: "event-storm", CardType: models.TypeEvent, Name: "Storm", ImagePath: "events/storm.webp"},
	}
}

type fakeCardStore struct {
	cards []*models.Card
	err   error
}

func (f *fakeCardStore) ListCards(ctx context.Context) ([]*models.Card, error) {
	return f.cards, f.err
}

func loadedCatalog() *CatalogService {
	cs := NewCatalogService(&fakeCardStore{cards: fixtureCards()})
	if err := cs.Load(context.Background()); err != nil {
		panic(err)
	}
	return cs
}

type publishedEvent struct {
	Type   string
	UserID int64
	Data   any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (f *fakePublisher) PublishEvent(eventType string, userID int64, data any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{Type: eventType, UserID: userID, Data: data})
}

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []string{}
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeDeckStore struct {
	mu    sync.Mutex
	seq   int
	decks map[string]*models.Deck
}

func newFakeDeckStore() *fakeDeckStore {
	return &fakeDeckStore{decks: map[string]*models.Deck{}}
}

func cloneDeck(d *models.Deck) *models.Deck {
	c := *d
	c.Cards = append([]models.DeckCardEntry{}, d.Cards...)
	return &c
}

func (f *fakeDeckStore) ListByUser(ctx context.Context, userID int64) ([]*models.Deck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Deck{}
	for _, d := range f.decks {
		if d.UserID == userID {
			out = append(out, cloneDeck(d))
		}
	}
	return out, nil
}

func (f *fakeDeckStore) GetByID(ctx context.Context, id string) (*models.Deck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.decks[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneDeck(d), nil
}

func (f *fakeDeckStore) Create(ctx context.Context, d *models.Deck) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	d.ID = fmt.Sprintf("deck-%d", f.seq)
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	f.decks[d.ID] = cloneDeck(d)
	return nil
}

func (f *fakeDeckStore) Update(ctx context.Context, d *models.Deck) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.decks[d.ID]
	if !ok {
		return store.ErrNotFound
	}
	if !cur.UpdatedAt.Equal(d.UpdatedAt) {
		return store.ErrStale
	}
	d.UpdatedAt = time.Now()
	f.decks[d.ID] = cloneDeck(d)
	return nil
}

func (f *fakeDeckStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.decks[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.decks, id)
	return nil
}

type fakeCollectionStore struct {
	mu      sync.Mutex
	entries map[string]*models.CollectionCardEntry
}

func newFakeCollectionStore() *fakeCollectionStore {
	return &fakeCollectionStore{entries: map[string]*models.CollectionCardEntry{}}
}

func collectionKey(userID int64, cardID string) string {
	return fmt.Sprintf("%d/%s", userID, cardID)
}

func (f *fakeCollectionStore) ListByUser(ctx context.Context, userID int64) ([]*models.CollectionCardEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.CollectionCardEntry{}
	for _, e := range f.entries {
		if e.UserID == userID {
			c := *e
			out = append(out, &c)
		}
	}
	return out, nil
}

// AddQuantity increments under the lock, matching the single-statement SQL upsert.
func (f *fakeCollectionStore) AddQuantity(ctx context.Context, e *models.CollectionCardEntry, max int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := collectionKey(e.UserID, e.CardID)
	total := e.Quantity
	if cur, ok := f.entries[key]; ok {
		total += cur.Quantity
	}
	if total > max {
		return store.ErrLimit
	}
	e.Quantity = total
	e.UpdatedAt = time.Now()
	c := *e
	f.entries[key] = &c
	return nil
}

func (f *fakeCollectionStore) Upsert(ctx context.Context, e *models.CollectionCardEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.UpdatedAt = time.Now()
	c := *e
	f.entries[collectionKey(e.UserID, e.CardID)] = &c
	return nil
}

func (f *fakeCollectionStore) Delete(ctx context.Context, userID int64, cardID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := collectionKey(userID, cardID)
	if _, ok := f.entries[key]; !ok {
		return store.ErrNotFound
	}
	delete(f.entries, key)
	return nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	seq   int64
	users map[int64]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username {
			return nil, fmt.Errorf("could not create user: %w", store.ErrConflict)
		}
	}
	f.seq++
	user.UserId = f.seq
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	c := user
	f.users[user.UserId] = &c
	return &user, nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}
