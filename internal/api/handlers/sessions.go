package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"honeytrap-lab/internal/domain/models"
	"honeytrap-lab/internal/domain/services/session"
	"honeytrap-lab/internal/infrastructure/cache"
	"honeytrap-lab/pkg/logger"
)

// SessionsHandler handles session inspection endpoints
type SessionsHandler struct {
	sessions *session.Store
	cache    *cache.RedisCache
	logger   *logger.Logger
}

// NewSessionsHandler creates a new SessionsHandler
func NewSessionsHandler(sessions *session.Store, c *cache.RedisCache, log *logger.Logger) *SessionsHandler {
	return &SessionsHandler{
		sessions: sessions,
		cache:    c,
		logger:   log.WithComponent("sessions"),
	}
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "session id is required")
		return
	}

	state, ok := h.sessions.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}

	response := map[string]interface{}{
		"sessionId": id,
		"state":     state,
	}

	// Attach the archived callback report when one was delivered
	if h.cache != nil {
		var report models.CallbackPayload
		if err := h.cache.GetArchivedReport(r.Context(), id, &report); err == nil {
			response["report"] = report
		}
	}

	respondJSON(w, http.StatusOK, response)
}
