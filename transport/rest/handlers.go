package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rocketscienceinc/rps-backend/internal/apperror"
	"github.com/rocketscienceinc/rps-backend/internal/entity"
	"github.com/rocketscienceinc/rps-backend/internal/pkg"
)

const sessionCookieName = "user_session"

type playRequest struct {
	Choice string `json:"choice"`
}

type stateResponse struct {
	Message string       `json:"message,omitempty"`
	Game    *entity.Game `json:"game_state"`
}

type errorResponse struct {
	Error string       `json:"error"`
	Game  *entity.Game `json:"game_state,omitempty"`
}

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write pong", "error", err)
	}
}

func (that *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handlePlay")
	sessionID := that.session(w, r)

	var req playRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	round, err := that.uGame.Play(r.Context(), sessionID, req.Choice)
	switch {
	case errors.Is(err, apperror.ErrInvalidMove):
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid choice"})
	case errors.Is(err, apperror.ErrGamePaused):
		game, _ := that.uGame.Status(r.Context(), sessionID)
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Game is paused", Game: game})
	case err != nil:
		log.Error("failed to play round", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	default:
		that.writeJSON(w, http.StatusOK, round)
	}
}

func (that *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.Pause(r.Context(), that.session(w, r))
	that.writeState(w, "Game paused", game, err)
}

func (that *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.Resume(r.Context(), that.session(w, r))
	that.writeState(w, "Game resumed", game, err)
}

func (that *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.Reset(r.Context(), that.session(w, r))
	that.writeState(w, "Game reset", game, err)
}

func (that *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.Status(r.Context(), that.session(w, r))
	that.writeState(w, "", game, err)
}

func (that *Server) writeState(w http.ResponseWriter, message string, game *entity.Game, err error) {
	if err != nil {
		that.logger.Error("failed to handle request", "message", message, "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}

	that.writeJSON(w, http.StatusOK, stateResponse{Message: message, Game: game})
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

// session - returns the user_session cookie value, issuing a new one when absent.
func (that *Server) session(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	cookie = &http.Cookie{
		Name:     sessionCookieName,
		Value:    pkg.GenerateNewSessionID(),
		Expires:  time.Now().Add(24 * time.Hour),
		Path:     "/",
		HttpOnly: true,
	}
	http.SetCookie(w, cookie)

	that.logger.Debug("session cookie not found, new one created", "cookie", cookie.Value)

	return cookie.Value
}
