package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/rps-backend/internal/apperror"
	"github.com/rocketscienceinc/rps-backend/internal/entity"
	"github.com/rocketscienceinc/rps-backend/internal/predictor"
	"github.com/rocketscienceinc/rps-backend/internal/service"
	"github.com/rocketscienceinc/rps-backend/internal/usecase"
)

// memoryRepo keeps games as JSON, like the redis repository does.
type memoryRepo struct {
	mu    sync.Mutex
	games map[string][]byte
}

func (that *memoryRepo) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()
	that.games[game.ID] = data

	return nil
}

func (that *memoryRepo) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	data, ok := that.games[id]
	if !ok {
		return &entity.Game{}, apperror.ErrGameNotFound
	}

	var game entity.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return &entity.Game{}, err
	}

	return &game, nil
}

func (that *memoryRepo) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[id]; !ok {
		return apperror.ErrGameNotFound
	}
	delete(that.games, id)

	return nil
}

type gameStateBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Result  string `json:"result"`
	Player  string `json:"player_move"`
	Bot     string `json:"opponent_move"`
	Game    struct {
		History     []string `json:"opponent_history"`
		PlayerScore int      `json:"player_score"`
		BotScore    int      `json:"opponent_score"`
		TieScore    int      `json:"tie_score"`
		IsPaused    bool     `json:"is_paused"`
	} `json:"game_state"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	repo := &memoryRepo{games: make(map[string][]byte)}
	bot := service.NewBotService(predictor.New())
	manager := usecase.NewGameManager(logger, service.NewGameService(repo), bot)

	srv := httptest.NewServer(New(logger, manager).Handler())
	t.Cleanup(srv.Close)

	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string, cookie *http.Cookie) (*http.Response, gameStateBody) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)

	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed gameStateBody
	if path != "/ping" {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	}

	return resp, parsed
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()

	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookieName {
			return cookie
		}
	}

	t.Fatalf("session cookie not set")
	return nil
}

func TestServer_Ping(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := do(t, srv, http.MethodGet, "/ping", "", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Play(t *testing.T) {
	t.Run("First round is answered with Paper and starts a session", func(t *testing.T) {
		// Given: a fresh server
		srv := newTestServer(t)

		// When: the player opens with Scissors
		resp, body := do(t, srv, http.MethodPost, "/play", `{"choice":"S"}`, nil)

		// Then: the bot plays Paper and the player wins
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "P", body.Bot)
		assert.Equal(t, "S", body.Player)
		assert.Equal(t, entity.ResultWin, body.Result)
		assert.Equal(t, []string{"S"}, body.Game.History)
		assert.Equal(t, 1, body.Game.PlayerScore)
		assert.NotEmpty(t, sessionCookie(t, resp).Value)
	})

	t.Run("History accumulates within a session", func(t *testing.T) {
		srv := newTestServer(t)

		resp, _ := do(t, srv, http.MethodPost, "/play", `{"choice":"R"}`, nil)
		cookie := sessionCookie(t, resp)

		_, body := do(t, srv, http.MethodPost, "/play", `{"choice":"P"}`, cookie)

		assert.Equal(t, []string{"R", "P"}, body.Game.History)
	})

	t.Run("Invalid choice is rejected", func(t *testing.T) {
		srv := newTestServer(t)

		resp, body := do(t, srv, http.MethodPost, "/play", `{"choice":"X"}`, nil)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid choice", body.Error)
	})

	t.Run("Malformed body is rejected", func(t *testing.T) {
		srv := newTestServer(t)

		resp, _ := do(t, srv, http.MethodPost, "/play", `{`, nil)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestServer_PauseResumeReset(t *testing.T) {
	// Given: a session with one round played
	srv := newTestServer(t)

	resp, _ := do(t, srv, http.MethodPost, "/play", `{"choice":"R"}`, nil)
	cookie := sessionCookie(t, resp)

	// When: the game is paused
	resp, body := do(t, srv, http.MethodPost, "/pause", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Game paused", body.Message)
	assert.True(t, body.Game.IsPaused)

	// Then: playing is refused
	resp, body = do(t, srv, http.MethodPost, "/play", `{"choice":"R"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Game is paused", body.Error)
	assert.Len(t, body.Game.History, 1)

	// And: resuming allows play again
	_, body = do(t, srv, http.MethodPost, "/resume", "", cookie)
	assert.False(t, body.Game.IsPaused)

	resp, _ = do(t, srv, http.MethodPost, "/play", `{"choice":"R"}`, cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// And: reset clears everything
	_, body = do(t, srv, http.MethodPost, "/reset", "", cookie)
	assert.Equal(t, "Game reset", body.Message)
	assert.Empty(t, body.Game.History)

	_, body = do(t, srv, http.MethodGet, "/status", "", cookie)
	assert.Empty(t, body.Game.History)
	assert.Zero(t, body.Game.PlayerScore+body.Game.BotScore+body.Game.TieScore)
}
