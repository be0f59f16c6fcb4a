package handlers

import (
	"net/http"

	"github.com/go-chi/chi"
)

type collectionRequest struct {
	CardID   string `json:"card_id"`
	Quantity int    `json:"quantity"`
}

func (h *Handler) ListCollection(w http.ResponseWriter, r *http.Request) {
	user := h.caller(w, r)
	if user == nil {
		return
	}
	q := r.URL.Query()
	entries, err := h.collection.List(r.Context(), user, q.Get("sort"), q.Get("dir"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, "collection", entries)
}

func (h *Handler) AddCollectionCard(w http.ResponseWriter, r *http.Request) {
	user := h.caller(w, r)
	if user == nil {
		return
	}
	var in collectionRequest
	if err := decode(r, &in); err != nil || in.CardID == "" {
		h.badRequest(w, "card_id is required")
		return
	}
	entry, err := h.collection.Add(r.Context(), user, in.CardID, in.Quantity)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "card added to collection", Code: http.StatusCreated, Data: entry})
}

func (h *Handler) UpdateCollectionCard(w http.ResponseWriter, r *http.Request) {
	user := h.caller(w, r)
	if user == nil {
		return
	}
	var in collectionRequest
	if err := decode(r, &in); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}
	entry, err := h.collection.SetQuantity(r.Context(), user, chi.URLParam(r, "cardId"), in.Quantity)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if entry == nil {
		h.ok(w, "card removed from collection", nil)
		return
	}
	h.ok(w, "collection updated", entry)
}

func (h *Handler) RemoveCollectionCard(w http.ResponseWriter, r *http.Request) {
	user := h.caller(w, r)
	if user == nil {
		return
	}
	if err := h.collection.Remove(r.Context(), user, chi.URLParam(r, "cardId")); err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, "card removed from collection", nil)
}
