package services

import (
	"context"
	"math/rand"
	"time"

	"github.com/zinal-app/apiserver/internal/session"
	"github.com/zinal-app/apiserver/types"
)

// BlockMs is the cooldown window after a granted analysis, in milliseconds.
const BlockMs = 7 * 60 * 1000

const (
	analysisTitle      = "ANÁLISE CONCLUÍDA POR I.A."
	analysisExpiration = "1 Minuto"
)

var analysisAssets = []string{
	"Google (OTC)", "Apple (OTC)", "Tesla (OTC)", "Bitcoin (OTC)",
	"AUD-JPY (OTC)", "USD-JPY (OTC)", "USD-BRL (OTC)", "GBP-JPY (OTC)",
	"EUR-USD (OTC)", "AUD-CAD (OTC)", "GBP-USD (OTC)", "EUR-GBP (OTC)",
	"EUR-JPY (OTC)",
}

var analysisDirections = []string{"🟢 COMPRA", "🔴 VENDA"}

// AnalysisService gates analysis requests behind a per-session cooldown and
// generates the randomized signal payload.
//
// The gate is server-authoritative: the timestamp of the last granted call
// lives in the session store, never with the client. A burst of requests from
// the same session right after the window opens may all pass the check; that
// race is accepted.
type AnalysisService struct {
	sessions session.Store
	now      func() time.Time
	pick     func(n int) int
}

func NewAnalysisService(sessions session.Store) *AnalysisService {
	return &AnalysisService{
		sessions: sessions,
		now:      time.Now,
		pick:     rand.Intn,
	}
}

// Start grants at most one analysis per rolling cooldown window, measured
// from the last granted call. On success the session's gate timestamp is
// advanced and the result reports when the next call is allowed. While
// blocked it returns a *RateLimitedError carrying the same moment.
func (s *AnalysisService) Start(ctx context.Context, sess types.Session) (types.AnalysisResult, error) {
	now := s.now().UTC()
	nowMs := now.UnixMilli()

	if sess.AnalysisStartedAt > 0 && sess.AnalysisStartedAt+BlockMs > nowMs {
		return types.AnalysisResult{}, &RateLimitedError{BlockedUntil: sess.AnalysisStartedAt + BlockMs}
	}

	if err := s.sessions.SetAnalysisStartedAt(ctx, sess.ID, nowMs); err != nil {
		return types.AnalysisResult{}, err
	}

	result := s.generate(now)
	result.BlockedUntil = nowMs + BlockMs
	return result, nil
}

// generate builds the fake signal from the current time and randomness.
// Entry and protection times are clock labels a few minutes out, truncated
// to the minute.
func (s *AnalysisService) generate(now time.Time) types.AnalysisResult {
	base := now.Truncate(time.Minute)
	return types.AnalysisResult{
		Titulo:    analysisTitle,
		Moeda:     analysisAssets[s.pick(len(analysisAssets))],
		Expiracao: analysisExpiration,
		Direcao:   analysisDirections[s.pick(len(analysisDirections))],
		Entrada:   base.Add(3 * time.Minute).Format("15:04"),
		Protecao1: base.Add(4 * time.Minute).Format("15:04"),
		Protecao2: base.Add(5 * time.Minute).Format("15:04"),
	}
}
