package handlers

import (
	"net/http"

	"github.com/go-chi/chi"
)

// ListCards returns the catalog, optionally filtered by ?type=.
func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	if cardType := r.URL.Query().Get("type"); cardType != "" {
		h.ListCardsOfType(cardType)(w, r)
		return
	}
	h.ok(w, "cards", h.catalog.All())
}

func (h *Handler) ListCardsOfType(cardType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cards, err := h.catalog.ByType(cardType)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.ok(w, cardType+" cards", cards)
	}
}

func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
	card, err := h.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, "card", card)
}

func (h *Handler) GetVariants(w http.ResponseWriter, r *http.Request) {
	variants, err := h.catalog.Variants(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, "card variants", variants)
}
