package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
)

// MaxCollectionQuantity bounds the owned count of one printing.
const MaxCollectionQuantity = 9999

type CollectionRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]*models.CollectionCardEntry, error)
	AddQuantity(ctx context.Context, e *models.CollectionCardEntry, max int) error
	Upsert(ctx context.Context, e *models.CollectionCardEntry) error
	Delete(ctx context.Context, userID int64, cardID string) error
}

// CollectionChange is the payload of collection-updated events. Quantity 0 means removed.
type CollectionChange struct {
	CardID   string `json:"card_id"`
	Quantity int    `json:"quantity"`
}

type CollectionService struct {
	collectionStore CollectionRepository
	catalog         *CatalogService
	publisher       EventPublisher
}

func NewCollectionService(collectionStore CollectionRepository, catalog *CatalogService, publisher EventPublisher) *CollectionService {
	return &CollectionService{
		collectionStore: collectionStore,
		catalog:         catalog,
		publisher:       publisher,
	}
}

func typeRank(cardType string) int {
	for i, t := range models.CardTypes {
		if t == cardType {
			return i
		}
	}
	return len(models.CardTypes)
}

func collectionCompare(sortBy string) (func(a, b *models.CollectionCardEntry) int, error) {
	byName := func(a, b *models.CollectionCardEntry) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	}
	switch sortBy {
	case "", "name":
		return byName, nil
	case "type":
		return func(a, b *models.CollectionCardEntry) int {
			if d := typeRank(a.CardType) - typeRank(b.CardType); d != 0 {
				return d
			}
			return byName(a, b)
		}, nil
	case "quantity":
		return func(a, b *models.CollectionCardEntry) int {
			return a.Quantity - b.Quantity
		}, nil
	}
	return nil, fmt.Errorf("%w: unknown sort %q", ErrInvalidInput, sortBy)
}

// List returns the user's collection sorted by name, type or quantity.
func (s *CollectionService) List(ctx context.Context, user *models.User, sortBy, dir string) ([]*models.CollectionCardEntry, error) {
	cmp, err := collectionCompare(sortBy)
	if err != nil {
		return nil, err
	}
	desc := false
	switch dir {
	case "", "asc":
	case "desc":
		desc = true
	default:
		return nil, fmt.Errorf("%w: unknown direction %q", ErrInvalidInput, dir)
	}

	entries, err := s.collectionStore.ListByUser(ctx, user.UserId)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		c := cmp(entries[i], entries[j])
		if c == 0 {
			return entries[i].CardID < entries[j].CardID
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
	return entries, nil
}

func (s *CollectionService) writable(user *models.User) error {
	if user.IsGuest() {
		return ErrReadOnly
	}
	return nil
}

// Add records quantity more copies of a printing. Quantity 0 adds one.
// The increment happens in the store so concurrent adds are not lost.
func (s *CollectionService) Add(ctx context.Context, user *models.User, cardID string, quantity int) (*models.CollectionCardEntry, error) {
	if err := s.writable(user); err != nil {
		return nil, err
	}
	if quantity < 0 || quantity > MaxCollectionQuantity {
		return nil, fmt.Errorf("%w: quantity %d (max %d)", ErrInvalidInput, quantity, MaxCollectionQuantity)
	}
	if quantity == 0 {
		quantity = 1
	}
	card, err := s.catalog.Get(cardID)
	if err != nil {
		return nil, err
	}

	entry := &models.CollectionCardEntry{
		UserID:    user.UserId,
		CardID:    card.ID,
		CardType:  card.CardType,
		Quantity:  quantity,
		ImagePath: card.ImagePath,
		Name:      card.Name,
	}
	if err := s.collectionStore.AddQuantity(ctx, entry, MaxCollectionQuantity); err != nil {
		return nil, storeErr(err)
	}
	s.publisher.PublishEvent(EventCollectionUpdated, user.UserId, CollectionChange{CardID: entry.CardID, Quantity: entry.Quantity})
	return entry, nil
}

// SetQuantity sets the owned count. Zero removes the entry and returns nil.
func (s *CollectionService) SetQuantity(ctx context.Context, user *models.User, cardID string, quantity int) (*models.CollectionCardEntry, error) {
	if err := s.writable(user); err != nil {
		return nil, err
	}
	if quantity < 0 || quantity > MaxCollectionQuantity {
		return nil, fmt.Errorf("%w: quantity %d (max %d)", ErrInvalidInput, quantity, MaxCollectionQuantity)
	}
	if quantity == 0 {
		return nil, s.Remove(ctx, user, cardID)
	}
	card, err := s.catalog.Get(cardID)
	if err != nil {
		return nil, err
	}

	entry := &models.CollectionCardEntry{
		UserID:    user.UserId,
		CardID:    card.ID,
		CardType:  card.CardType,
		Quantity:  quantity,
		ImagePath: card.ImagePath,
		Name:      card.Name,
	}
	if err := s.collectionStore.Upsert(ctx, entry); err != nil {
		return nil, storeErr(err)
	}
	s.publisher.PublishEvent(EventCollectionUpdated, user.UserId, CollectionChange{CardID: entry.CardID, Quantity: entry.Quantity})
	return entry, nil
}

func (s *CollectionService) Remove(ctx context.Context, user *models.User, cardID string) error {
	if err := s.writable(user); err != nil {
		return err
	}
	if err := s.collectionStore.Delete(ctx, user.UserId, cardID); err != nil {
		return storeErr(err)
	}
	s.publisher.PublishEvent(EventCollectionUpdated, user.UserId, CollectionChange{CardID: cardID})
	return nil
}
