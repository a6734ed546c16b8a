package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/zinal-app/apiserver/internal/services"
)

// AnalysisHandler exposes the cooldown-gated analysis endpoint.
type AnalysisHandler struct {
	analysis *services.AnalysisService
	users    *services.UserService
}

func NewAnalysisHandler(analysis *services.AnalysisService, users *services.UserService) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysis, users: users}
}

// Start handles POST /api/start-analysis. Access expiry is re-checked
// against the user row on every call, not just at login.
func (h *AnalysisHandler) Start(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "not_authenticated")
		return
	}

	user, err := h.users.GetByID(r.Context(), sess.UserID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "not_authenticated")
		return
	}
	if !user.AccessValid(time.Now().UTC()) {
		writeError(w, http.StatusForbidden, "expired")
		return
	}

	result, err := h.analysis.Start(r.Context(), sess)
	if err != nil {
		var rateLimited *services.RateLimitedError
		if errors.As(err, &rateLimited) {
			writeJSON(w, http.StatusTooManyRequests, map[string]any{
				"error":         "blocked",
				"blocked_until": rateLimited.BlockedUntil,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to start analysis")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
