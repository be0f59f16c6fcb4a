package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/deck"
	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
	"github.com/avvvet/deckbuilder-services/internal/decksvc/notify"
	"github.com/avvvet/deckbuilder-services/internal/decksvc/service"
	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	cards := memCards{
		{ID: "char-robin", CardType: models.TypeCharacter, Name: "Robin Hood", ImagePath: "characters/robin.webp", ThreatLevel: 18, Energy: 5},
		{ID: "char-robin-alt", CardType: models.TypeCharacter, Name: "Robin Hood", ImagePath: "characters/alternate/robin.webp", ThreatLevel: 18, Energy: 5},
		{ID: "special-merry-men", CardType: models.TypeSpecial, Name: "Merry Men", CharacterName: "Robin Hood", ImagePath: "specials/merry.webp", OnePerDeck: true},
		{ID: "event-storm", CardType: models.TypeEvent, Name: "Storm", ImagePath: "events/storm.webp"},
	}
	catalog := service.NewCatalogService(cards)
	require.NoError(t, catalog.Load(context.Background()))

	pub := nopPublisher{}
	decks := service.NewDeckService(&memDecks{decks: map[string]models.Deck{}}, catalog, deck.DefaultRules(), pub)
	collection := service.NewCollectionService(&memCollection{entries: map[string]models.CollectionCardEntry{}}, catalog, pub)
	users := service.NewUserService(&memUsers{})

	h := NewHandler(jwtauth.New("HS256", []byte("test-secret"), nil), catalog, decks, collection, users, notify.NewHub())
	r := chi.NewRouter()
	h.SetRoutes(r)
	return r
}

type envelope struct {
	Message string          `json:"message"`
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type client struct {
	t      *testing.T
	router http.Handler
	token  string
}

func (c *client) do(method, path string, body interface{}) (int, envelope) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec.Code, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func register(t *testing.T, router http.Handler, username string) (*client, models.User) {
	t.Helper()
	c := &client{t: t, router: router}
	code, env := c.do(http.MethodPost, "/api/auth/register", credentials{Username: username, Password: "long-password"})
	require.Equal(t, http.StatusCreated, code, env.Error)

	var auth struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	decodeData(t, env, &auth)
	require.NotEmpty(t, auth.Token)
	c.token = auth.Token
	return c, auth.User
}

func TestAuthFlow(t *testing.T) {
	router := testRouter(t)

	t.Run("register sets the jwt cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(`{"username":"robin","password":"long-password"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		var jwtCookie *http.Cookie
		for _, c := range rec.Result().Cookies() {
			if c.Name == "jwt" {
				jwtCookie = c
			}
		}
		require.NotNil(t, jwtCookie)
		assert.True(t, jwtCookie.HttpOnly)

		me := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		me.AddCookie(jwtCookie)
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, me)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"username":"robin"`)
	})

	t.Run("wrong password", func(t *testing.T) {
		c := &client{t: t, router: router}
		code, env := c.do(http.MethodPost, "/api/auth/login", credentials{Username: "robin", Password: "nope-nope"})
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, service.ErrInvalidCredentials.Error(), env.Error)
	})

	t.Run("login", func(t *testing.T) {
		c := &client{t: t, router: router}
		code, _ := c.do(http.MethodPost, "/api/auth/login", credentials{Username: "robin", Password: "long-password"})
		assert.Equal(t, http.StatusOK, code)
	})

	t.Run("secure routes need a token", func(t *testing.T) {
		c := &client{t: t, router: router}
		code, _ := c.do(http.MethodGet, "/api/decks", nil)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("logout clears the cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "jwt", cookies[0].Name)
		assert.Negative(t, cookies[0].MaxAge)
	})
}

func TestCatalogRoutes(t *testing.T) {
	c := &client{t: t, router: testRouter(t)}

	code, env := c.do(http.MethodGet, "/api/characters", nil)
	require.Equal(t, http.StatusOK, code)
	var chars []models.Card
	decodeData(t, env, &chars)
	assert.Len(t, chars, 2)

	code, env = c.do(http.MethodGet, "/api/missions", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(env.Data))

	code, env = c.do(http.MethodGet, "/api/cards/char-robin-alt/variants", nil)
	require.Equal(t, http.StatusOK, code)
	var variants []models.Card
	decodeData(t, env, &variants)
	require.Len(t, variants, 2)
	assert.Equal(t, "char-robin", variants[0].ID)

	code, _ = c.do(http.MethodGet, "/api/cards/ghost", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = c.do(http.MethodGet, "/api/cards?type=sideboard", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = c.do(http.MethodGet, "/v1/health", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestDeckRoutes(t *testing.T) {
	router := testRouter(t)
	robin, robinUser := register(t, router, "robin")
	marian, _ := register(t, router, "marian")

	code, env := robin.do(http.MethodPost, "/api/decks", service.DeckInput{Name: "Outlaws"})
	require.Equal(t, http.StatusCreated, code, env.Error)
	var created service.DeckView
	decodeData(t, env, &created)
	deckPath := "/api/decks/" + created.ID

	code, env = robin.do(http.MethodPost, deckPath+"/cards", addCardRequest{CardID: "char-robin-alt"})
	require.Equal(t, http.StatusOK, code, env.Error)
	var view service.DeckView
	decodeData(t, env, &view)
	require.Len(t, view.Cards, 1)
	assert.Equal(t, "char-robin", view.Cards[0].CardID)
	assert.Equal(t, "char-robin-alt", view.Cards[0].SelectedAlternateCardID)

	code, _ = robin.do(http.MethodPost, deckPath+"/cards", addCardRequest{CardID: "special-merry-men"})
	require.Equal(t, http.StatusOK, code)
	code, env = robin.do(http.MethodPost, deckPath+"/cards", addCardRequest{CardID: "special-merry-men"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, env.Error, "one per deck")

	code, env = robin.do(http.MethodGet, deckPath+"/validate", nil)
	require.Equal(t, http.StatusOK, code)
	var res deck.ValidationResults
	decodeData(t, env, &res)
	assert.False(t, res.Legal)
	assert.Contains(t, res.Errors, "draw pile has 1 cards (min 51)")

	t.Run("other users read only", func(t *testing.T) {
		code, env := marian.do(http.MethodGet, "/api/users/"+jsonID(robinUser.UserId)+"/decks/"+created.ID, nil)
		require.Equal(t, http.StatusOK, code)
		var v service.DeckView
		decodeData(t, env, &v)
		assert.True(t, v.ReadOnly)

		code, _ = marian.do(http.MethodPut, deckPath, map[string]string{"name": "Mine now"})
		assert.Equal(t, http.StatusForbidden, code)
	})

	t.Run("export then import as a new deck", func(t *testing.T) {
		code, env := marian.do(http.MethodGet, deckPath+"/export", nil)
		require.Equal(t, http.StatusOK, code)

		req := httptest.NewRequest(http.MethodPost, "/api/decks/import", bytes.NewReader(env.Data))
		req.Header.Set("Authorization", "Bearer "+marian.token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var out envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		var imported importResponse
		decodeData(t, out, &imported)
		assert.Equal(t, 2, imported.Result.Imported)
		assert.Equal(t, "Outlaws", imported.Deck.Name)
		assert.False(t, imported.Deck.ReadOnly)
	})

	t.Run("update card and remove", func(t *testing.T) {
		code, env := robin.do(http.MethodPut, deckPath+"/cards/event-storm", map[string]int{"quantity": 3})
		require.Equal(t, http.StatusOK, code, env.Error)
		var v service.DeckView
		decodeData(t, env, &v)
		assert.Equal(t, 4, v.DrawPile)

		code, env = robin.do(http.MethodPut, deckPath+"/cards/event-storm", map[string]int{"quantity": 1 << 50})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Contains(t, env.Error, "quantity")

		code, _ = robin.do(http.MethodPut, deckPath, map[string]interface{}{
			"cards": []map[string]interface{}{{"cardId": "event-storm", "quantity": 1 << 50}},
		})
		assert.Equal(t, http.StatusBadRequest, code)

		code, _ = robin.do(http.MethodDelete, deckPath+"/cards/event-storm", nil)
		assert.Equal(t, http.StatusOK, code)
		code, _ = robin.do(http.MethodDelete, deckPath+"/cards/ghost", nil)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("delete", func(t *testing.T) {
		code, _ := robin.do(http.MethodDelete, deckPath, nil)
		assert.Equal(t, http.StatusOK, code)
		code, _ = robin.do(http.MethodGet, deckPath, nil)
		assert.Equal(t, http.StatusNotFound, code)
	})
}

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestGuestIsReadOnly(t *testing.T) {
	router := testRouter(t)
	c := &client{t: t, router: router}

	code, env := c.do(http.MethodPost, "/api/auth/guest-login", nil)
	require.Equal(t, http.StatusOK, code)
	var auth authResponse
	decodeData(t, env, &auth)
	assert.Equal(t, models.RoleGuest, auth.User.Role)
	c.token = auth.Token

	code, env = c.do(http.MethodPost, "/api/decks", service.DeckInput{Name: "Nope"})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, service.ErrReadOnly.Error(), env.Error)

	code, _ = c.do(http.MethodPost, "/api/collections/me/cards", collectionRequest{CardID: "event-storm"})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = c.do(http.MethodGet, "/api/decks", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestCollectionRoutes(t *testing.T) {
	c, _ := register(t, testRouter(t), "robin")

	code, env := c.do(http.MethodPost, "/api/collections/me/cards", collectionRequest{CardID: "event-storm", Quantity: 2})
	require.Equal(t, http.StatusCreated, code, env.Error)
	code, _ = c.do(http.MethodPost, "/api/collections/me/cards", collectionRequest{CardID: "char-robin-alt"})
	require.Equal(t, http.StatusCreated, code)

	code, env = c.do(http.MethodGet, "/api/collections/me/cards?sort=quantity&dir=desc", nil)
	require.Equal(t, http.StatusOK, code)
	var entries []models.CollectionCardEntry
	decodeData(t, env, &entries)
	require.Len(t, entries, 2)
	assert.Equal(t, "event-storm", entries[0].CardID)
	assert.Equal(t, 2, entries[0].Quantity)

	code, _ = c.do(http.MethodGet, "/api/collections/me/cards?sort=price", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = c.do(http.MethodPost, "/api/collections/me/cards", collectionRequest{CardID: "event-storm", Quantity: 1 << 40})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = c.do(http.MethodPut, "/api/collections/me/cards/event-storm", collectionRequest{Quantity: service.MaxCollectionQuantity + 1})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = c.do(http.MethodPut, "/api/collections/me/cards/event-storm", collectionRequest{Quantity: 0})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "card removed from collection", env.Message)

	code, _ = c.do(http.MethodDelete, "/api/collections/me/cards/event-storm", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestClaimInt64(t *testing.T) {
	for _, v := range []interface{}{float64(7), int64(7), 7, json.Number("7"), "7"} {
		got, ok := claimInt64(v)
		assert.True(t, ok)
		assert.Equal(t, int64(7), got)
	}
	_, ok := claimInt64(nil)
	assert.False(t, ok)
}
