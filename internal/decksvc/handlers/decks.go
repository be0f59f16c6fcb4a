package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/deck"
	"github.com/avvvet/deckbuilder-services/internal/decksvc/service"
	"github.com/go-chi/chi"
)

type addCardRequest struct {
	CardID                  string `json:"cardId"`
	SelectedAlternateCardID string `json:"selectedAlternateCardId"`
}

type importResponse struct {
	Deck   *service.DeckView `json:"deck"`
	Result deck.ImportResult `json:"result"`
}

func (h *Handler) ListDecks(w http.ResponseWriter, r *http.Request) {
	user := h.caller(w, r)
	if user == nil {
		return
	}
	decks, err := h.decks.List(r.Context(), user)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, "decks", decks)
}

func (h *Handler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	user := h.caller(w, r)
	if user == nil {
		return
	}
	var in service.DeckInput
	if err := decode(r, &in); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}
	view, err := h.decks.Create(r.Context(), user, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "deck created", Code: http.StatusCreated, Data: view})
}

func (h *Handler) GetDeck(w http.ResponseWriter, r *http.Request) {
	user := h.caller(w, r)
	if user == nil {
		return
	}
	view, err := h.decks.Get(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, "deck", view)
}

func (h *Handler) GetUserDeck(w http.ResponseWriter, r *http.Request) {
	user := h.caller(w, r)
	if user == nil {
		return
	}
	ownerID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		h.badRequest(w, "invalid user id")
		return
	}
	view, err := h.decks.GetUserDeck(r.Context(), user, ownerID, chi.URLParam(r, "deckId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, "deck", view)
}

func (h *Handler) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	user := h.caller(w, r)
	if user == nil {
		return
	}
	var in service.DeckUpdate
	if err := decode(r, &in); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}
	view, err := h.decks.Update(r.Context(), user, chi.URLParam(r, "id"), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, "deck saved", view)
}

func (h *Handler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	user := h.caller(w, r)
	if user == nil {
		return
	}
	if err := h.decks.Delete(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, "deck deleted", nil)
}

func (h *Handler) AddDeckCard(w http.ResponseWriter, r *http.Request) {
	user := h.caller(w, r)
	if user == nil {
		return
	}
	var in addCardRequest
	if err := decode(r, &in); err != nil || in.CardID == "" {
		h.badRequest(w, "cardId is required")
		return
	}
	view, err := h.decks.AddCard(r.Context(), user, chi.URLParam(r, "id"), in.CardID, in.SelectedAlternateCardID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, "card added", view)
}

func (h *Handler) UpdateDeckCard(w http.ResponseWriter, r *http.Request) {
	user := h.caller(w, r)
	if user == nil {
		return
	}
	var in service.CardUpdate
	if err := decode(r, &in); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}
	view, err := h.decks.UpdateCard(r.Context(), user, chi.URLParam(r, "id"), chi.URLParam(r, "cardId"), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, "card updated", view)
}

func (h *Handler) RemoveDeckCard(w http.ResponseWriter, r *http.Request) {
	user := h.caller(w, r)
	if user == nil {
		return
	}
	view, err := h.decks.RemoveCard(r.Context(), user, chi.URLParam(r, "id"), chi.URLParam(r, "cardId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, "card removed", view)
}

func (h *Handler) ValidateDeck(w http.ResponseWriter, r *http.Request) {
	user := h.caller(w, r)
	if user == nil {
		return
	}
	res, err := h.decks.Validate(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, "deck validation", res)
}

func (h *Handler) ExportDeck(w http.ResponseWriter, r *http.Request) {
	user := h.caller(w, r)
	if user == nil {
		return
	}
	exp, err := h.decks.Export(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, "deck export", exp)
}

func readImport(r *http.Request) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
}

func (h *Handler) ImportDeck(w http.ResponseWriter, r *http.Request) {
	user := h.caller(w, r)
	if user == nil {
		return
	}
	data, err := readImport(r)
	if err != nil {
		h.badRequest(w, "unreadable body")
		return
	}
	view, res, err := h.decks.Import(r.Context(), user, chi.URLParam(r, "id"), data)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, "deck imported", importResponse{Deck: view, Result: res})
}

func (h *Handler) ImportNewDeck(w http.ResponseWriter, r *http.Request) {
	user := h.caller(w, r)
	if user == nil {
		return
	}
	data, err := readImport(r)
	if err != nil {
		h.badRequest(w, "unreadable body")
		return
	}
	view, res, err := h.decks.CreateFromImport(r.Context(), user, data)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "deck imported", Code: http.StatusCreated, Data: importResponse{Deck: view, Result: res}})
}
