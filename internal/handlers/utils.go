package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/zinal-app/apiserver/types"
)

type contextKey string

const contextSessionKey contextKey = "session"

// ErrorResponse is the JSON body of every API failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

func sessionFromContext(ctx context.Context) (types.Session, error) {
	sess, ok := ctx.Value(contextSessionKey).(types.Session)
	if !ok {
		return types.Session{}, errors.New("missing session")
	}
	return sess, nil
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// toMs converts a timestamp to epoch milliseconds, nil-preserving. All API
// responses carry epoch-ms UTC.
func toMs(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UTC().UnixMilli()
	return &ms
}

// fromMs converts request-supplied epoch milliseconds to a UTC timestamp.
func fromMs(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
