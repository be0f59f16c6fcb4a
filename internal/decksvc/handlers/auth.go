package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
	"github.com/go-chi/jwtauth"
)

const (
	tokenCookie = "jwt"
	tokenTTL    = 7 * 24 * time.Hour
)

var errNoClaims = errors.New("missing token claims")

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// issueToken signs a token for user and sets it as the jwt cookie.
func (h *Handler) issueToken(w http.ResponseWriter, user *models.User) (string, error) {
	expires := time.Now().Add(tokenTTL)
	claims := map[string]interface{}{
		"user_id":  user.UserId,
		"username": user.Username,
		"role":     user.Role,
	}
	jwtauth.SetExpiry(claims, expires)

	_, tokenString, err := h.tokenAuth.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    tokenString,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return tokenString, nil
}

func claimInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	}
	return 0, false
}

// currentUser rebuilds the caller from the verified token claims.
func currentUser(r *http.Request) (*models.User, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return nil, err
	}
	id, ok := claimInt64(claims["user_id"])
	if !ok || id == 0 {
		return nil, errNoClaims
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	return &models.User{UserId: id, Username: username, Role: role}, nil
}

// caller writes a 401 and returns nil when the token carries no user.
func (h *Handler) caller(w http.ResponseWriter, r *http.Request) *models.User {
	user, err := currentUser(r)
	if err != nil {
		h.CreateResponse(w, Response{Message: http.StatusText(http.StatusUnauthorized), Code: http.StatusUnauthorized, Error: err.Error()})
		return nil
	}
	return user
}

func (h *Handler) respondAuth(w http.ResponseWriter, r *http.Request, code int, user *models.User) {
	token, err := h.issueToken(w, user)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "authenticated", Code: code, Data: authResponse{User: user, Token: token}})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := decode(r, &in); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}
	user, err := h.users.Register(r.Context(), in.Username, in.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondAuth(w, r, http.StatusCreated, user)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := decode(r, &in); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}
	user, err := h.users.Login(r.Context(), in.Username, in.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondAuth(w, r, http.StatusOK, user)
}

func (h *Handler) GuestLogin(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GuestLogin(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondAuth(w, r, http.StatusOK, user)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	h.ok(w, "logged out", nil)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claimed := h.caller(w, r)
	if claimed == nil {
		return
	}
	user, err := h.users.GetByID(r.Context(), claimed.UserId)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, "current user", user)
}
