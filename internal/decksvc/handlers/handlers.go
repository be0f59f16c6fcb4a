package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/deck"
	"github.com/avvvet/deckbuilder-services/internal/decksvc/notify"
	"github.com/avvvet/deckbuilder-services/internal/decksvc/service"
	"github.com/go-chi/jwtauth"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	tokenAuth  *jwtauth.JWTAuth
	upgrader   websocket.Upgrader
	catalog    *service.CatalogService
	decks      *service.DeckService
	collection *service.CollectionService
	users      *service.UserService
	hub        *notify.Hub
}

func NewHandler(tokenAuth *jwtauth.JWTAuth, catalog *service.CatalogService, decks *service.DeckService,
	collection *service.CollectionService, users *service.UserService, hub *notify.Hub) *Handler {
	return &Handler{
		tokenAuth: tokenAuth,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		catalog:    catalog,
		decks:      decks,
		collection: collection,
		users:      users,
		hub:        hub,
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)
	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) ok(w http.ResponseWriter, message string, data interface{}) {
	h.CreateResponse(w, Response{Message: message, Code: http.StatusOK, Data: data})
}

// statusFor maps service and deck errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrReadOnly):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrStale),
		errors.Is(err, deck.ErrOnePerDeck),
		errors.Is(err, deck.ErrDuplicateCharacter):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidInput), service.IsEditError(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		log.Errorf("%s %s: %s", r.Method, r.URL.Path, err)
		msg = "internal error"
	}
	h.CreateResponse(w, Response{Message: http.StatusText(code), Code: code, Error: msg})
}

func (h *Handler) badRequest(w http.ResponseWriter, msg string) {
	h.CreateResponse(w, Response{Message: http.StatusText(http.StatusBadRequest), Code: http.StatusBadRequest, Error: msg})
}

// decode reads a JSON body into v.
func decode(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.ok(w, "deck service is running at port "+os.Getenv("DECK_SERVICE_PORT"), map[string]int{
		"cards": h.catalog.Catalog().Len(),
	})
}
