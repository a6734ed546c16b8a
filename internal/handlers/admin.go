package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/zinal-app/apiserver/internal/services"
	"github.com/zinal-app/apiserver/internal/store"
)

const clickListLimit = 1000

// AdminHandler provides the admin-only user management and click reporting
// APIs. Every route is mounted behind RequireSession + RequireAdmin.
type AdminHandler struct {
	users  *services.UserService
	clicks *services.ClickService
	stats  *services.StatsService
}

func NewAdminHandler(users *services.UserService, clicks *services.ClickService, stats *services.StatsService) *AdminHandler {
	return &AdminHandler{users: users, clicks: clicks, stats: stats}
}

// AdminRouter registers the admin API routes.
func AdminRouter(r chi.Router, handler *AdminHandler) {
	r.Get("/users", handler.ListUsers)
	r.Post("/users", handler.CreateUser)
	r.Put("/users/{userID}", handler.UpdateUser)
	r.Delete("/users/{userID}", handler.DeleteUser)
	r.Get("/clicks/list", handler.ListClicks)
	r.Get("/clicks/stats", handler.ClickStats)
}

// ListUsers returns every user, newest first. The caller's own row carries
// their session's cooldown timestamp; other rows report null.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusForbidden, "unauthorized")
		return
	}

	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	out := make([]map[string]any, 0, len(users))
	for _, u := range users {
		var lastAnalysis *int64
		if u.ID == sess.UserID && sess.AnalysisStartedAt > 0 {
			started := sess.AnalysisStartedAt
			lastAnalysis = &started
		}
		createdAt := u.CreatedAt
		out = append(out, map[string]any{
			"id":                       u.ID,
			"email":                    u.Email,
			"username":                 u.Username,
			"is_admin":                 u.IsAdmin,
			"access_expires_at":        toMs(u.AccessExpiresAt),
			"created_at":               toMs(&createdAt),
			"last_analysis_started_at": lastAnalysis,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": out})
}

type createUserRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	IsAdmin         bool   `json:"is_admin"`
	AccessExpiresAt int64  `json:"access_expires_at"`
}

func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}

	var expiresAt *time.Time
	if req.AccessExpiresAt > 0 {
		at := fromMs(req.AccessExpiresAt)
		expiresAt = &at
	}

	user, err := h.users.Create(r.Context(), services.CreateParams{
		Email:           req.Email,
		Username:        req.Username,
		Password:        req.Password,
		IsAdmin:         req.IsAdmin,
		AccessExpiresAt: expiresAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			writeError(w, http.StatusBadRequest, "missing_fields")
		case errors.Is(err, store.ErrAlreadyExists):
			writeError(w, http.StatusBadRequest, "exists")
		default:
			writeError(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "id": user.ID})
}

type updateUserRequest struct {
	Email    *string `json:"email"`
	Username *string `json:"username"`
	Password *string `json:"password"`
	IsAdmin  *bool   `json:"is_admin"`
}

func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	var req updateUserRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	params := services.UpdateParams{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	}

	// access_expires_at distinguishes three shapes: absent (keep), explicit
	// null (clear), and a number (set). The struct decode above cannot see
	// the difference between absent and null, so inspect the raw body.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err == nil {
		if value, present := raw["access_expires_at"]; present {
			var ms *int64
			if err := json.Unmarshal(value, &ms); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request")
				return
			}
			if ms == nil {
				params.ClearAccessExpiry = true
			} else {
				at := fromMs(*ms)
				params.AccessExpiresAt = &at
			}
		}
	}

	if _, err := h.users.Update(r.Context(), id, params); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found")
		case errors.Is(err, store.ErrAlreadyExists):
			writeError(w, http.StatusBadRequest, "exists")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update user")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// ListClicks returns the newest click logs, capped at 1000.
func (h *AdminHandler) ListClicks(w http.ResponseWriter, r *http.Request) {
	logs, err := h.clicks.ListRecent(r.Context(), clickListLimit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list clicks")
		return
	}

	out := make([]map[string]any, 0, len(logs))
	for _, log := range logs {
		clickedAt := log.ClickedAt
		out = append(out, map[string]any{
			"id":          log.ID,
			"user_id":     log.UserID,
			"username":    log.Username,
			"button_name": log.ButtonName,
			"clicked_at":  toMs(&clickedAt),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"logs": out})
}

// ClickStats returns the bucketed time series for the requested period.
func (h *AdminHandler) ClickStats(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = services.PeriodDaily
	}

	stats, err := h.stats.ClickStats(r.Context(), period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func parseUserID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
}
