package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zinal-app/apiserver/internal/services"
	"github.com/zinal-app/apiserver/internal/session"
	"github.com/zinal-app/apiserver/types"
)

const sessionCookieName = "zinal_session"

// AuthHandler owns the login/logout flow and the session middleware.
//
// The cookie carries a signed JWT whose subject is the session ID; the
// session state itself (identity, admin flag, cooldown timestamp) stays
// server-side in the session store.
type AuthHandler struct {
	users    *services.UserService
	sessions session.Store
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthHandler(users *services.UserService, sessions session.Store, secret string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// RequireSession loads the session referenced by the cookie and injects it
// into the request context. API callers without one get 401.
func (h *AuthHandler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := h.sessionFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "not_authenticated")
			return
		}
		ctx := context.WithValue(r.Context(), contextSessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects non-admin sessions. Layered inside RequireSession.
func (h *AuthHandler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromContext(r.Context())
		if err != nil || !sess.IsAdmin {
			writeError(w, http.StatusForbidden, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionFromRequest resolves the current session for page handlers, which
// redirect instead of returning JSON errors.
func (h *AuthHandler) SessionFromRequest(r *http.Request) (types.Session, error) {
	return h.sessionFromRequest(r)
}

func (h *AuthHandler) sessionFromRequest(r *http.Request) (types.Session, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return types.Session{}, err
	}
	sessionID, err := parseSessionID(cookie.Value, h.secret)
	if err != nil {
		return types.Session{}, err
	}
	return h.sessions.Get(r.Context(), sessionID)
}

// EstablishSession creates the server-side session record and sets the
// cookie. Returns the redirect target for the page flow.
func (h *AuthHandler) EstablishSession(w http.ResponseWriter, r *http.Request, user types.User) (string, error) {
	sess, err := h.sessions.Create(r.Context(), user.ID, user.IsAdmin)
	if err != nil {
		return "", err
	}
	token, err := issueSessionToken(sess.ID, h.secret, h.tokenTTL)
	if err != nil {
		_ = h.sessions.Delete(r.Context(), sess.ID)
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if user.IsAdmin {
		return "/admin", nil
	}
	return "/dashboard", nil
}

// Logout clears the server-side session and the cookie unconditionally.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if sessionID, err := parseSessionID(cookie.Value, h.secret); err == nil {
			_ = h.sessions.Delete(r.Context(), sessionID)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

// Me reports the authenticated user plus the session's cooldown state.
// Unlike the other API routes it answers 401 with {"authenticated": false},
// so it resolves the session itself instead of using RequireSession.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionFromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"authenticated": false})
		return
	}

	user, err := h.users.GetByID(r.Context(), sess.UserID)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"authenticated": false})
		return
	}

	var blockedUntil *int64
	if sess.AnalysisStartedAt > 0 {
		until := sess.AnalysisStartedAt + services.BlockMs
		blockedUntil = &until
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"id":                user.ID,
			"username":          user.Username,
			"email":             user.Email,
			"is_admin":          user.IsAdmin,
			"access_expires_at": toMs(user.AccessExpiresAt),
			"blocked_until":     blockedUntil,
		},
	})
}

func issueSessionToken(sessionID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parseSessionID(tokenString string, secret []byte) (string, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", errors.New("missing subject")
	}
	return claims.Subject, nil
}
