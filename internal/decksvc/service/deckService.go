package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/deck"
	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
)

// Event types published on the deck event subject.
const (
	EventDeckSaved         = "deck-saved"
	EventDeckDeleted       = "deck-deleted"
	EventCollectionUpdated = "collection-updated"
)

type DeckRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]*models.Deck, error)
	GetByID(ctx context.Context, id string) (*models.Deck, error)
	Create(ctx context.Context, d *models.Deck) error
	Update(ctx context.Context, d *models.Deck) error
	Delete(ctx context.Context, id string) error
}

// EventPublisher delivers change events. Implementations log their own failures.
type EventPublisher interface {
	PublishEvent(eventType string, userID int64, data any)
}

// DeckSummary is the list view of a deck and the payload of deck events.
type DeckSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsLimited   bool      `json:"is_limited"`
	TotalCards  int       `json:"total_cards"`
	Legal       bool      `json:"legal"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DeckView is a deck together with everything the editor shows about it.
type DeckView struct {
	*models.Deck
	ReadOnly    bool                   `json:"read_only"`
	Validation  deck.ValidationResults `json:"validation"`
	Icons       deck.IconTotals        `json:"icons"`
	MaxStats    deck.IconTotals        `json:"max_stats"`
	TotalThreat int                    `json:"total_threat"`
	TotalCards  int                    `json:"total_cards"`
	DrawPile    int                    `json:"draw_pile"`
}

type DeckInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsLimited   bool   `json:"is_limited"`
}

// DeckUpdate carries a partial deck update. Nil fields are left unchanged.
type DeckUpdate struct {
	Name        *string                `json:"name"`
	Description *string                `json:"description"`
	IsLimited   *bool                  `json:"is_limited"`
	Cards       []models.DeckCardEntry `json:"cards"`
}

// CardUpdate edits one deck entry. Unit selects which copy AlternateCardID applies to.
type CardUpdate struct {
	Quantity        *int    `json:"quantity"`
	Unit            *int    `json:"unit"`
	AlternateCardID *string `json:"alternate_card_id"`
	ExcludeFromDraw *bool   `json:"exclude_from_draw"`
}

type DeckService struct {
	deckStore DeckRepository
	catalog   *CatalogService
	rules     deck.Rules
	publisher EventPublisher
	now       func() time.Time
}

func NewDeckService(deckStore DeckRepository, catalog *CatalogService, rules deck.Rules, publisher EventPublisher) *DeckService {
	return &DeckService{
		deckStore: deckStore,
		catalog:   catalog,
		rules:     rules,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *DeckService) summary(cat *deck.Catalog, d *models.Deck) DeckSummary {
	return DeckSummary{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		IsLimited:   d.IsLimited,
		TotalCards:  deck.TotalCards(cat, d.Cards),
		Legal:       deck.Validate(cat, s.rules, d).Legal,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (s *DeckService) view(d *models.Deck, readOnly bool) *DeckView {
	cat := s.catalog.Catalog()
	return &DeckView{
		Deck:        d,
		ReadOnly:    readOnly,
		Validation:  deck.Validate(cat, s.rules, d),
		Icons:       deck.TotalIcons(cat, d.Cards),
		MaxStats:    deck.MaxStats(cat, d.Cards),
		TotalThreat: deck.TotalThreat(cat, d.Cards),
		TotalCards:  deck.TotalCards(cat, d.Cards),
		DrawPile:    deck.DrawPileSize(cat, d.Cards),
	}
}

func (s *DeckService) load(ctx context.Context, id string) (*models.Deck, error) {
	d, err := s.deckStore.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return d, nil
}

// owned loads a deck the user may modify.
func (s *DeckService) owned(ctx context.Context, user *models.User, id string) (*models.Deck, error) {
	if user.IsGuest() {
		return nil, ErrReadOnly
	}
	d, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.UserID != user.UserId {
		return nil, ErrForbidden
	}
	return d, nil
}

func (s *DeckService) save(ctx context.Context, d *models.Deck) error {
	if err := s.deckStore.Update(ctx, d); err != nil {
		return storeErr(err)
	}
	s.publisher.PublishEvent(EventDeckSaved, d.UserID, s.summary(s.catalog.Catalog(), d))
	return nil
}

func (s *DeckService) List(ctx context.Context, user *models.User) ([]DeckSummary, error) {
	decks, err := s.deckStore.ListByUser(ctx, user.UserId)
	if err != nil {
		return nil, err
	}

	cat := s.catalog.Catalog()
	out := make([]DeckSummary, 0, len(decks))
	for _, d := range decks {
		out = append(out, s.summary(cat, d))
	}
	return out, nil
}

// Get returns any deck. It is read only unless the caller owns it.
func (s *DeckService) Get(ctx context.Context, user *models.User, id string) (*DeckView, error) {
	d, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(d, user.IsGuest() || d.UserID != user.UserId), nil
}

// GetUserDeck returns ownerID's deck. It is read only when ownerID is not the caller.
func (s *DeckService) GetUserDeck(ctx context.Context, user *models.User, ownerID int64, id string) (*DeckView, error) {
	d, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.UserID != ownerID {
		return nil, ErrNotFound
	}
	return s.view(d, user.IsGuest() || ownerID != user.UserId), nil
}

func (s *DeckService) Create(ctx context.Context, user *models.User, in DeckInput) (*DeckView, error) {
	if user.IsGuest() {
		return nil, ErrReadOnly
	}
	name, err := sanitizeName(in.Name)
	if err != nil {
		return nil, err
	}

	d := &models.Deck{
		UserID:      user.UserId,
		Name:        name,
		Description: sanitizeText(in.Description),
		IsLimited:   in.IsLimited,
		Cards:       []models.DeckCardEntry{},
	}
	if err := s.deckStore.Create(ctx, d); err != nil {
		return nil, storeErr(err)
	}
	s.publisher.PublishEvent(EventDeckSaved, d.UserID, s.summary(s.catalog.Catalog(), d))
	return s.view(d, false), nil
}

// normalizeCards checks a replacement card list and points every entry at its base card.
func (s *DeckService) normalizeCards(entries []models.DeckCardEntry) ([]models.DeckCardEntry, error) {
	cat := s.catalog.Catalog()
	out := make([]models.DeckCardEntry, 0, len(entries))
	seen := map[string]bool{}

	for _, entry := range entries {
		if entry.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity %d for %s", ErrInvalidInput, entry.Quantity, entry.CardID)
		}
		if entry.Quantity > s.rules.MaxQuantity {
			return nil, fmt.Errorf("%w: %d copies of %s (max %d)", deck.ErrInvalidQuantity, entry.Quantity, entry.CardID, s.rules.MaxQuantity)
		}
		base, ok := cat.BaseOf(entry.CardID)
		if !ok {
			return nil, fmt.Errorf("%w: unknown card %s", ErrInvalidInput, entry.CardID)
		}
		if seen[base.ID] {
			return nil, fmt.Errorf("%w: duplicate entry for %s", ErrInvalidInput, base.ID)
		}
		seen[base.ID] = true

		sel := deck.Selections(entry)
		if entry.CardID != base.ID && sel[0] == "" {
			sel[0] = entry.CardID
		}
		for _, alt := range sel {
			if alt != "" && !cat.SameCard(base.ID, alt) {
				return nil, fmt.Errorf("%w: %s is not an art of %s", ErrInvalidInput, alt, base.ID)
			}
		}

		entry.CardID = base.ID
		entry.Type = base.CardType
		entry.SelectedAlternateCardID = ""
		entry.SelectedAlternateCardIDs = nil
		if entry.Quantity == 1 {
			entry.SelectedAlternateCardID = sel[0]
		} else {
			for _, alt := range sel {
				if alt != "" {
					entry.SelectedAlternateCardIDs = sel
					break
				}
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *DeckService) Update(ctx context.Context, user *models.User, id string, in DeckUpdate) (*DeckView, error) {
	d, err := s.owned(ctx, user, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name, err := sanitizeName(*in.Name)
		if err != nil {
			return nil, err
		}
		d.Name = name
	}
	if in.Description != nil {
		d.Description = sanitizeText(*in.Description)
	}
	if in.IsLimited != nil {
		d.IsLimited = *in.IsLimited
	}
	if in.Cards != nil {
		cards, err := s.normalizeCards(in.Cards)
		if err != nil {
			return nil, err
		}
		d.Cards = cards
	}

	if err := s.save(ctx, d); err != nil {
		return nil, err
	}
	return s.view(d, false), nil
}

func (s *DeckService) Delete(ctx context.Context, user *models.User, id string) error {
	d, err := s.owned(ctx, user, id)
	if err != nil {
		return err
	}
	if err := s.deckStore.Delete(ctx, d.ID); err != nil {
		return storeErr(err)
	}
	s.publisher.PublishEvent(EventDeckDeleted, d.UserID, DeckSummary{ID: d.ID, Name: d.Name})
	return nil
}

// edit applies fn to an owned deck and saves the result.
func (s *DeckService) edit(ctx context.Context, user *models.User, id string, fn func(ed *deck.Editor) error) (*DeckView, error) {
	d, err := s.owned(ctx, user, id)
	if err != nil {
		return nil, err
	}
	if err := fn(deck.NewEditor(s.catalog.Catalog(), d).WithMaxQuantity(s.rules.MaxQuantity)); err != nil {
		return nil, err
	}
	if err := s.save(ctx, d); err != nil {
		return nil, err
	}
	return s.view(d, false), nil
}

func (s *DeckService) AddCard(ctx context.Context, user *models.User, id, cardID, alternateID string) (*DeckView, error) {
	return s.edit(ctx, user, id, func(ed *deck.Editor) error {
		return ed.AddCard(cardID, alternateID)
	})
}

func (s *DeckService) RemoveCard(ctx context.Context, user *models.User, id, cardID string) (*DeckView, error) {
	return s.edit(ctx, user, id, func(ed *deck.Editor) error {
		return ed.RemoveCard(cardID)
	})
}

// UpdateCard applies quantity first, then the art choice, then the draw flag.
func (s *DeckService) UpdateCard(ctx context.Context, user *models.User, id, cardID string, in CardUpdate) (*DeckView, error) {
	return s.edit(ctx, user, id, func(ed *deck.Editor) error {
		if in.Quantity != nil {
			if err := ed.SetQuantity(cardID, *in.Quantity); err != nil {
				return err
			}
		}
		if in.AlternateCardID != nil {
			unit := 0
			if in.Unit != nil {
				unit = *in.Unit
			}
			if err := ed.SelectAlternate(cardID, unit, *in.AlternateCardID); err != nil {
				return err
			}
		}
		if in.ExcludeFromDraw != nil {
			if err := ed.SetExcludeFromDraw(cardID, *in.ExcludeFromDraw); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *DeckService) Validate(ctx context.Context, user *models.User, id string) (deck.ValidationResults, error) {
	d, err := s.load(ctx, id)
	if err != nil {
		return deck.ValidationResults{}, err
	}
	return deck.Validate(s.catalog.Catalog(), s.rules, d), nil
}

func (s *DeckService) Export(ctx context.Context, user *models.User, id string) (deck.Export, error) {
	d, err := s.load(ctx, id)
	if err != nil {
		return deck.Export{}, err
	}
	return deck.ExportDeck(s.catalog.Catalog(), s.rules, d, user.Username, s.now().UTC()), nil
}

// Import merges an export document into an existing deck, keeping its name.
func (s *DeckService) Import(ctx context.Context, user *models.User, id string, data []byte) (*DeckView, deck.ImportResult, error) {
	exp, err := deck.ParseExport(data)
	if err != nil {
		return nil, deck.ImportResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	d, err := s.owned(ctx, user, id)
	if err != nil {
		return nil, deck.ImportResult{}, err
	}

	res := deck.Import(s.catalog.Catalog(), s.rules, d, exp)
	if err := s.save(ctx, d); err != nil {
		return nil, res, err
	}
	return s.view(d, false), res, nil
}

// CreateFromImport builds a new deck from an export document and stores it once.
func (s *DeckService) CreateFromImport(ctx context.Context, user *models.User, data []byte) (*DeckView, deck.ImportResult, error) {
	if user.IsGuest() {
		return nil, deck.ImportResult{}, ErrReadOnly
	}
	exp, err := deck.ParseExport(data)
	if err != nil {
		return nil, deck.ImportResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	name := sanitizeText(exp.Name)
	if name == "" {
		name = "Imported Deck"
	}
	d := &models.Deck{
		UserID:      user.UserId,
		Name:        name,
		Description: sanitizeText(exp.Description),
		IsLimited:   exp.Limited,
		Cards:       []models.DeckCardEntry{},
	}

	cat := s.catalog.Catalog()
	res := deck.Import(cat, s.rules, d, exp)
	if err := s.deckStore.Create(ctx, d); err != nil {
		return nil, res, storeErr(err)
	}
	s.publisher.PublishEvent(EventDeckSaved, d.UserID, s.summary(cat, d))
	return s.view(d, false), res, nil
}

// IsEditError reports whether err is a rejected deck edit rather than a failure.
func IsEditError(err error) bool {
	for _, target := range []error{
		deck.ErrUnknownCard, deck.ErrNotInDeck, deck.ErrOnePerDeck, deck.ErrDuplicateCharacter,
		deck.ErrNotAVariant, deck.ErrInvalidQuantity, deck.ErrInvalidUnit,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
