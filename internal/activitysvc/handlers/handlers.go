package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	"github.com/avvvet/deckbuilder-services/internal/activitysvc/store"
	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// ActivityReader lists stored activity.
type ActivityReader interface {
	Recent(ctx context.Context, userID int64, limit int64) ([]*store.Activity, error)
}

type Handler struct {
	tokenAuth *jwtauth.JWTAuth
	activity  ActivityReader
}

func NewHandler(tokenAuth *jwtauth.JWTAuth, activity ActivityReader) *Handler {
	return &Handler{tokenAuth: tokenAuth, activity: activity}
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

func (h *Handler) SetRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.HealthHandler)

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/activity", h.RecentActivity)
		})
	})
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, Response{
		Message: "activity service is running at port " + os.Getenv("ACTIVITY_SERVICE_PORT"),
		Code:    http.StatusOK,
	})
}

func userID(r *http.Request) (int64, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return 0, false
	}
	switch v := claims["user_id"].(type) {
	case float64:
		return int64(v), v != 0
	case json.Number:
		id, err := v.Int64()
		return id, err == nil && id != 0
	}
	return 0, false
}

// RecentActivity lists the caller's latest events, newest first.
func (h *Handler) RecentActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		h.CreateResponse(w, Response{Message: "Unauthorized", Code: http.StatusUnauthorized, Error: "missing user claim"})
		return
	}

	limit := int64(defaultLimit)
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 1 {
			h.CreateResponse(w, Response{Message: "Bad Request", Code: http.StatusBadRequest, Error: "invalid limit"})
			return
		}
		limit = min(n, maxLimit)
	}

	items, err := h.activity.Recent(r.Context(), id, limit)
	if err != nil {
		log.Errorf("Error [ActivityStore.Recent] %s", err)
		h.CreateResponse(w, Response{Message: "Internal Server Error", Code: http.StatusInternalServerError, Error: "internal error"})
		return
	}
	h.CreateResponse(w, Response{Message: "recent activity", Code: http.StatusOK, Data: items})
}
