// NetraGPT - conversational chatbot backend
// License: MIT
//
// Copyright (c) 2026 NetraGPT contributors

// Package gateway exposes the chat surface over HTTP. The session token rides
// an opaque cookie; the server only ever looks it up, it never authenticates
// anyone with it.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/DMWllc/netragpt/pkg/agent"
	"github.com/DMWllc/netragpt/pkg/logger"
	"github.com/DMWllc/netragpt/pkg/utils"
)

const (
	sessionCookie   = "netragpt_session"
	emptyInputReply = "Please type a message so I can help."
)

type Server struct {
	orch *agent.Orchestrator
	http *http.Server
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply          string `json:"reply"`
	SessionExpired bool   `json:"session_expired,omitempty"`
	EngineUsed     string `json:"engine_used,omitempty"`
	SessionWarning string `json:"session_warning,omitempty"`
	TimeRemaining  int    `json:"time_remaining,omitempty"`
}

type statusResponse struct {
	Active        bool   `json:"active"`
	TimeRemaining int    `json:"time_remaining"`
	Message       string `json:"message"`
}

type actionResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Reply   string `json:"reply,omitempty"`
}

func NewServer(addr string, orch *agent.Orchestrator) *Server {
	s := &Server{orch: orch}

	mux := http.NewServeMux()
	mux.HandleFunc("/chat", s.handleChat)
	mux.HandleFunc("/session_status", s.handleSessionStatus)
	mux.HandleFunc("/start_new_session", s.handleStartNewSession)
	mux.HandleFunc("/clear_history", s.handleClearHistory)
	mux.HandleFunc("/health", s.handleHealth)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           chainMiddlewares(mux, withCORS, withLogging),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the full middleware-wrapped handler. Test hook.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) Start() error {
	logger.InfoCF("gateway", "HTTP server listening", map[string]interface{}{"addr": s.http.Addr})
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, chatResponse{Reply: emptyInputReply})
		return
	}

	reply, err := s.orch.HandleMessage(r.Context(), sessionToken(r), req.Message)
	if err != nil {
		if errors.Is(err, agent.ErrEmptyMessage) {
			writeJSON(w, http.StatusBadRequest, chatResponse{Reply: emptyInputReply})
			return
		}
		logger.ErrorCF("gateway", "Chat turn failed", map[string]interface{}{"error": err.Error()})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if !reply.SessionExpired {
		setSessionToken(w, reply.SessionID)
	}
	writeJSON(w, http.StatusOK, chatResponse{
		Reply:          reply.Text,
		SessionExpired: reply.SessionExpired,
		EngineUsed:     reply.EngineUsed,
		SessionWarning: reply.SessionWarning,
		TimeRemaining:  reply.TimeRemaining,
	})
}

func (s *Server) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	active, remaining := s.orch.SessionStatus(sessionToken(r))
	msg := "No active session"
	if active {
		msg = fmt.Sprintf("Session active, %d minute(s) remaining", remaining)
	}
	writeJSON(w, http.StatusOK, statusResponse{
		Active:        active,
		TimeRemaining: remaining,
		Message:       msg,
	})
}

func (s *Server) handleStartNewSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	fresh, welcome := s.orch.StartNewSession(sessionToken(r))
	setSessionToken(w, fresh.ID)
	writeJSON(w, http.StatusOK, actionResponse{
		Status:  "success",
		Message: "New session started",
		Reply:   welcome,
	})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.orch.ClearHistory(sessionToken(r))
	writeJSON(w, http.StatusOK, actionResponse{
		Status:  "success",
		Message: "Conversation history cleared",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// sessionToken reads the session id from the X-Session-Token header (for
// non-browser clients) or the session cookie.
func sessionToken(r *http.Request) string {
	fromCookie := ""
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		fromCookie = cookie.Value
	}
	return utils.FirstNonEmpty(r.Header.Get("X-Session-Token"), fromCookie)
}

func setSessionToken(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.WarnCF("gateway", "Failed to encode response", map[string]interface{}{"error": err.Error()})
	}
}
