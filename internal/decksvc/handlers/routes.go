package handlers

import (
	"os"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

// typeRoutes maps catalog paths to card types.
var typeRoutes = map[string]string{
	"/characters":        models.TypeCharacter,
	"/special-cards":     models.TypeSpecial,
	"/power-cards":       models.TypePower,
	"/locations":         models.TypeLocation,
	"/missions":          models.TypeMission,
	"/events":            models.TypeEvent,
	"/aspects":           models.TypeAspect,
	"/advanced-universe": models.TypeAdvancedUniverse,
	"/teamwork":          models.TypeTeamwork,
	"/ally-universe":     models.TypeAllyUniverse,
	"/training":          models.TypeTraining,
	"/basic-universe":    models.TypeBasicUniverse,
}

func (h *Handler) SetRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.HealthHandler)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/ws", h.HandleWebSocket)
		})
	})

	r.Route("/api", func(r chi.Router) {

		// public routes here
		r.Post("/auth/login", h.Login)
		r.Post("/auth/guest-login", h.GuestLogin)
		r.Post("/auth/register", h.Register)
		r.Post("/auth/logout", h.Logout)

		r.Get("/cards", h.ListCards)
		r.Get("/cards/{id}", h.GetCard)
		r.Get("/cards/{id}/variants", h.GetVariants)
		for path, cardType := range typeRoutes {
			r.Get(path, h.ListCardsOfType(cardType))
		}

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/auth/me", h.Me)

			r.Get("/decks", h.ListDecks)
			r.Post("/decks", h.CreateDeck)
			r.Post("/decks/import", h.ImportNewDeck)
			r.Get("/decks/{id}", h.GetDeck)
			r.Put("/decks/{id}", h.UpdateDeck)
			r.Delete("/decks/{id}", h.DeleteDeck)
			r.Post("/decks/{id}/cards", h.AddDeckCard)
			r.Put("/decks/{id}/cards/{cardId}", h.UpdateDeckCard)
			r.Delete("/decks/{id}/cards/{cardId}", h.RemoveDeckCard)
			r.Get("/decks/{id}/validate", h.ValidateDeck)
			r.Get("/decks/{id}/export", h.ExportDeck)
			r.Post("/decks/{id}/import", h.ImportDeck)
			r.Get("/users/{userId}/decks/{deckId}", h.GetUserDeck)

			r.Get("/collections/me/cards", h.ListCollection)
			r.Post("/collections/me/cards", h.AddCollectionCard)
			r.Put("/collections/me/cards/{cardId}", h.UpdateCollectionCard)
			r.Delete("/collections/me/cards/{cardId}", h.RemoveCollectionCard)
		})
	})
}

// InitAuth builds the HS256 token signer from JWT_SECRET_KEY.
func InitAuth() *jwtauth.JWTAuth {
	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		log.Warn("JWT_SECRET_KEY is empty, tokens are signed with an empty key")
	}
	return jwtauth.New("HS256", []byte(jwtKey), nil)
}
