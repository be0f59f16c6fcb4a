package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/deck"
	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
)

type CardRepository interface {
	ListCards(ctx context.Context) ([]*models.Card, error)
}

// CatalogService keeps the card catalog in memory.
type CatalogService struct {
	cardStore CardRepository

	mu  sync.RWMutex
	cat *deck.Catalog
}

func NewCatalogService(cardStore CardRepository) *CatalogService {
	return &CatalogService{cardStore: cardStore, cat: deck.NewCatalog(nil)}
}

// Load replaces the in-memory catalog with the store's contents.
func (s *CatalogService) Load(ctx context.Context) error {
	cards, err := s.cardStore.ListCards(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	cat := deck.NewCatalog(cards)

	s.mu.Lock()
	s.cat = cat
	s.mu.Unlock()
	return nil
}

func (s *CatalogService) Catalog() *deck.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cat
}

func (s *CatalogService) All() []*models.Card {
	return s.Catalog().All()
}

func (s *CatalogService) ByType(cardType string) ([]*models.Card, error) {
	if !models.IsCardType(cardType) {
		return nil, fmt.Errorf("%w: unknown card type %q", ErrInvalidInput, cardType)
	}
	cards := s.Catalog().ByType(cardType)
	if cards == nil {
		cards = []*models.Card{}
	}
	return cards, nil
}

func (s *CatalogService) Get(id string) (*models.Card, error) {
	card, ok := s.Catalog().Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return card, nil
}

// Variants returns every art of the card, base first.
func (s *CatalogService) Variants(id string) ([]*models.Card, error) {
	variants := s.Catalog().VariantsOf(id)
	if len(variants) == 0 {
		return nil, ErrNotFound
	}
	return variants, nil
}
