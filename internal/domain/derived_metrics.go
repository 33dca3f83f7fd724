package domain

import "time"

// DerivedMetrics é o resultado do delta engine entregue para a camada web
type DerivedMetrics struct {
	EntityID             string  `json:"entity_id"`
	FollowerCount        int64   `json:"follower_count"`
	EngagementRate       float64 `json:"engagement_rate"`
	AvgEngagementPercent float64 `json:"avg_engagement_percent"`
	FollowerGrowth       int64   `json:"follower_growth"`
	EngagementGrowth     float64 `json:"engagement_growth"`
	// Variação percentual da taxa de engajamento. Zero sem base ou com taxa anterior zerada.
	EngagementGrowthPercent float64   `json:"engagement_growth_percent"`
	AvgLikes                float64   `json:"avg_likes"`
	AvgComments             float64   `json:"avg_comments"`
	HasBaseline             bool      `json:"has_baseline"` // false = primeira coleta, crescimento indefinido
	Stale                   bool      `json:"stale"`        // true = servido do cache expirado após falha no upstream
	ComputedAt              time.Time `json:"computed_at"`
}

// CompareResult carrega o resultado individual de uma conta numa comparação de marcas
type CompareResult struct {
	Metrics *DerivedMetrics `json:"metrics,omitempty"`
	Err     error           `json:"-"`
}

// CompareResponse é a resposta do endpoint de comparação
type CompareResponse struct {
	Niche   string                  `json:"niche,omitempty"`
	Results map[string]CompareEntry `json:"results"`
	Ranking []RankingItem           `json:"ranking"`
}

// CompareEntry é a forma serializável de CompareResult
type CompareEntry struct {
	Metrics *DerivedMetrics `json:"metrics,omitempty"`
	Error   *EntryError     `json:"error,omitempty"`
}

// EntryError descreve a falha de uma conta sem abortar as demais
type EntryError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	RetryAfter int64  `json:"retry_after_seconds,omitempty"`
}

// RankingItem posiciona as contas comparadas pela taxa de engajamento
type RankingItem struct {
	Position         int     `json:"position"`
	EntityID         string  `json:"entity_id"`
	EngagementRate   float64 `json:"engagement_rate"`
	FollowerCount    int64   `json:"follower_count"`
	FollowerGrowth   int64   `json:"follower_growth"`
	EngagementGrowth float64 `json:"engagement_growth"`
	// Crescimento do engajamento em %, arredondado em 2 casas
	EngagementGrowthPercent float64 `json:"engagement_growth_percent"`
	AvgLikes                float64 `json:"avg_likes"`
	AvgComments             float64 `json:"avg_comments"`
	HasBaseline             bool    `json:"has_baseline"`
}
