package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zinal-app/apiserver/internal/services"
)

// ClickHandler records button clicks for the logged-in user.
type ClickHandler struct {
	clicks *services.ClickService
}

func NewClickHandler(clicks *services.ClickService) *ClickHandler {
	return &ClickHandler{clicks: clicks}
}

// Register handles POST /api/registrar-clique.
func (h *ClickHandler) Register(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "not_authenticated")
		return
	}

	var req struct {
		ButtonName string `json:"button_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_button")
		return
	}

	if _, err := h.clicks.Register(r.Context(), sess.UserID, req.ButtonName); err != nil {
		if errors.Is(err, services.ErrInvalidButton) {
			writeError(w, http.StatusBadRequest, "invalid_button")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to register click")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
