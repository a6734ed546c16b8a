package types

// AnalysisResult is the randomized signal returned by a granted analysis
// request. Field names mirror the public API payload.
type AnalysisResult struct {
	Titulo       string `json:"titulo"`
	Moeda        string `json:"moeda"`
	Expiracao    string `json:"expiracao"`
	Entrada      string `json:"entrada"`
	Direcao      string `json:"direcao"`
	Protecao1    string `json:"protecao1"`
	Protecao2    string `json:"protecao2"`
	BlockedUntil int64  `json:"blocked_until"`
}

// ClickStats is the aggregator output: parallel arrays aligned by index,
// zero-filled for empty buckets.
type ClickStats struct {
	Labels   []string `json:"labels"`
	Telegram []int    `json:"telegram"`
	Compra   []int    `json:"compra"`
	Total    []int    `json:"total"`
}
